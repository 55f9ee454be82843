package services

import (
	"errors"
	"strings"
	"toolvote/internal/db"
	"toolvote/internal/models"

	"gorm.io/gorm"
)

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

var (
	ErrNotFound     = errors.New("tool not found")
	ErrAlreadyVoted = errors.New("already voted")
)

// CastVote records at most one vote per (tool, voter) and bumps the tool's
// counter by exactly one. Both writes run in a single transaction, and the
// counter update is a relative SQL expression, so concurrent votes on the
// same tool never lose an increment. The presentation layer disables the
// buttons after a first vote, but the ledger rejects duplicates on its own:
// a second tab or a replayed form lands on the existence check, and a race
// past that lands on the (tool_id, voter_id) unique index.
//
// Returns the tool's refreshed counters, which include any seeded baseline.
func CastVote(toolID uint, voterID string, dir Direction) (up, down int, err error) {
	value := 1
	column := "upvotes"
	if dir == DirectionDown {
		value = -1
		column = "downvotes"
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var tool models.Tool
		if err := tx.First(&tool, toolID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var existing models.Vote
		err := tx.Where("tool_id = ? AND voter_id = ?", toolID, voterID).First(&existing).Error
		if err == nil {
			return ErrAlreadyVoted
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		vote := models.Vote{
			ToolID:  toolID,
			VoterID: voterID,
			Value:   value,
		}
		if err := tx.Create(&vote).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyVoted
			}
			return err
		}

		return tx.Model(&models.Tool{}).Where("id = ?", toolID).
			UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error
	})
	if err != nil {
		return 0, 0, err
	}

	var tool models.Tool
	if err := db.DB.First(&tool, toolID).Error; err != nil {
		return 0, 0, err
	}
	return tool.Upvotes, tool.Downvotes, nil
}

// HasVoted reports whether this voter already has a ledger entry for the tool
func HasVoted(toolID uint, voterID string) bool {
	var count int64
	db.DB.Model(&models.Vote{}).Where("tool_id = ? AND voter_id = ?", toolID, voterID).Count(&count)
	return count > 0
}

// VotedTools returns the set of tool ids this voter has voted on, keyed for
// the templates to disable buttons
func VotedTools(voterID string) map[uint]bool {
	var votes []models.Vote
	db.DB.Select("tool_id").Where("voter_id = ?", voterID).Find(&votes)

	voted := make(map[uint]bool, len(votes))
	for _, v := range votes {
		voted[v.ToolID] = true
	}
	return voted
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
