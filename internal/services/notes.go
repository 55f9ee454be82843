package services

import (
	"errors"
	"strings"
	"toolvote/internal/db"
	"toolvote/internal/models"
)

var ErrEmptyNote = errors.New("note needs a reaction or some text")

// AddDevNote stores one piece of audience feedback: a quick reaction, a free
// text note, or both.
func AddDevNote(vibe, note string) (*models.DevNote, error) {
	vibe = strings.TrimSpace(vibe)
	note = strings.TrimSpace(note)
	if vibe == "" && note == "" {
		return nil, ErrEmptyNote
	}

	n := models.DevNote{Vibe: vibe, Note: note}
	if err := db.DB.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// ListDevNotes returns feedback newest first, for the organizers' page
func ListDevNotes() ([]models.DevNote, error) {
	var notes []models.DevNote
	err := db.DB.Order("created_at DESC, id DESC").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}
