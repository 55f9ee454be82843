package handlers

import (
	"errors"
	"net/http"
	"toolvote/internal/models"
	"toolvote/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// Create appends a comment to a tool's thread and returns to the detail page
func (h *CommentHandler) Create(c *gin.Context) {
	tid := c.Param("tid")

	tool, err := services.GetToolByTid(tid)
	if err != nil {
		RenderError(c, http.StatusNotFound, "This tool does not exist.")
		return
	}

	text := c.PostForm("text")
	sentiment := models.Sentiment(c.PostForm("sentiment"))

	if _, err := services.AddComment(tool.ID, text, sentiment); err != nil {
		if errors.Is(err, services.ErrEmptyComment) {
			c.Redirect(http.StatusFound, "/t/"+tid+"?error=empty")
			return
		}
		RenderError(c, http.StatusInternalServerError, "Saving the comment failed, please try again.")
		return
	}

	c.Redirect(http.StatusFound, "/t/"+tid)
}
