package models

import (
	"time"
)

type Sentiment string

const (
	SentimentPro     Sentiment = "pro"
	SentimentCon     Sentiment = "con"
	SentimentNeutral Sentiment = "neutral"
)

// Comment is append-only: no edit, no delete, no moderation.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Cid       string    `gorm:"uniqueIndex;size:8;not null" json:"cid"`
	ToolID    uint      `gorm:"not null;index" json:"tool_id"`
	Tool      Tool      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tool"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Sentiment Sentiment `gorm:"type:varchar(10);not null;default:'neutral'" json:"sentiment"`
	CreatedAt time.Time `json:"created_at"`
}
