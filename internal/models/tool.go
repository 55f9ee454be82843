package models

import (
	"time"
)

type Tool struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Tid       string    `gorm:"uniqueIndex;size:8;not null" json:"tid"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	Tags      string    `gorm:"size:300" json:"tags"` // comma-joined, derived from section names
	Upvotes   int       `gorm:"default:0" json:"upvotes"`
	Downvotes int       `gorm:"default:0" json:"downvotes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sections []Section `gorm:"many2many:section_tools;constraint:OnDelete:CASCADE;" json:"sections"`

	// not a column, filled in at query time
	CommentCount int `gorm:"-" json:"comment_count"`
}

// Score is derived, never stored: upvotes minus downvotes.
func (t *Tool) Score() int {
	return t.Upvotes - t.Downvotes
}
