package models

import (
	"time"
)

// Vote is the ledger entry: one row per (tool, voter), immutable once written.
// The composite unique index is the backstop against duplicate votes racing
// past the existence check (second tab, double submit).
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ToolID    uint      `gorm:"not null;index;uniqueIndex:idx_tool_voter" json:"tool_id"`
	Tool      Tool      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tool"`
	VoterID   string    `gorm:"size:36;not null;uniqueIndex:idx_tool_voter" json:"voter_id"`
	Value     int       `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt time.Time `json:"created_at"`
}
