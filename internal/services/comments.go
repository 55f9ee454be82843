package services

import (
	"errors"
	"strings"
	"toolvote/internal/db"
	"toolvote/internal/models"
	"toolvote/internal/utils"

	"gorm.io/gorm"
)

var ErrEmptyComment = errors.New("comment must not be empty")

// AddComment appends one comment to a tool's thread. Comments are never
// edited or removed. Unknown sentiment values fall back to neutral, the same
// default the comment form preselects.
func AddComment(toolID uint, text string, sentiment models.Sentiment) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	var tool models.Tool
	if err := db.DB.First(&tool, toolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	switch sentiment {
	case models.SentimentPro, models.SentimentCon, models.SentimentNeutral:
	default:
		sentiment = models.SentimentNeutral
	}

	comment := models.Comment{
		Cid:       utils.RandStringBytesMaskImpr(8),
		ToolID:    toolID,
		Text:      text,
		Sentiment: sentiment,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments returns a tool's thread newest first. The id tie-break keeps
// the order deterministic when two comments land within the same timestamp.
func ListComments(toolID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.DB.Where("tool_id = ?", toolID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// FillCommentCounts batch-fills the transient CommentCount on tools
func FillCommentCounts(tools []models.Tool) {
	if len(tools) == 0 {
		return
	}

	toolIDs := make([]uint, len(tools))
	for i, t := range tools {
		toolIDs[i] = t.ID
	}

	type countResult struct {
		ToolID uint
		Count  int
	}
	var results []countResult
	db.DB.Model(&models.Comment{}).
		Select("tool_id, COUNT(*) as count").
		Where("tool_id IN ?", toolIDs).
		Group("tool_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.ToolID] = r.Count
	}

	for i := range tools {
		tools[i].CommentCount = countMap[tools[i].ID]
	}
}
