package handlers

import (
	"net/http"
	"toolvote/internal/services"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct{}

func NewNoteHandler() *NoteHandler {
	return &NoteHandler{}
}

// Create stores a quick reaction or a free-text note for the organizers
func (h *NoteHandler) Create(c *gin.Context) {
	vibe := c.PostForm("vibe")
	note := c.PostForm("note")

	if _, err := services.AddDevNote(vibe, note); err != nil {
		// A blank submission is not worth an error page
		c.Redirect(http.StatusFound, backTo(c))
		return
	}

	c.Redirect(http.StatusFound, backTo(c))
}

// List shows collected feedback, newest first
func (h *NoteHandler) List(c *gin.Context) {
	notes, err := services.ListDevNotes()
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Notes are unavailable right now.")
		return
	}

	Render(c, http.StatusOK, "note/list.html", gin.H{
		"Title":  "Audience Notes",
		"Active": "notes",
		"Notes":  notes,
	})
}

func backTo(c *gin.Context) string {
	if ref := c.GetHeader("Referer"); ref != "" {
		return ref
	}
	return "/"
}
