package models

import (
	"time"
)

// DevNote is quick audience feedback for the organizers: an emoji reaction,
// some free text, or both.
type DevNote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Vibe      string    `gorm:"size:40" json:"vibe"` // e.g. "Love it!", "Confused"
	Note      string    `gorm:"type:text" json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
