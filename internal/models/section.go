package models

import (
	"time"
)

type Section struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Sid       string    `gorm:"uniqueIndex;size:16;not null" json:"sid"` // stable public id, e.g. "section2"
	Name      string    `gorm:"not null;unique" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tools []Tool `gorm:"many2many:section_tools;" json:"tools"`
}
