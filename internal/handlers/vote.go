package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"toolvote/internal/middleware"
	"toolvote/internal/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

// Up handles an upvote
func (h *VoteHandler) Up(c *gin.Context) {
	h.vote(c, services.DirectionUp)
}

// Down handles a downvote
func (h *VoteHandler) Down(c *gin.Context) {
	h.vote(c, services.DirectionDown)
}

// vote casts the ballot and answers with the fresh counter as plain text for
// the fragment swap. AlreadyVoted is not an error to the page: the buttons
// are disabled after the first vote anyway, so a duplicate (second tab,
// replayed form) just gets the unchanged counter back.
func (h *VoteHandler) vote(c *gin.Context, dir services.Direction) {
	voterID := middleware.VoterID(c)
	tid := c.Param("tid")

	tool, err := services.GetToolByTid(tid)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	up, down, err := services.CastVote(tool.ID, voterID, dir)
	if errors.Is(err, services.ErrAlreadyVoted) {
		if tool, err = services.GetToolByTid(tid); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		up, down = tool.Upvotes, tool.Downvotes
	} else if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	count := up
	if dir == services.DirectionDown {
		count = down
	}
	c.String(http.StatusOK, fmt.Sprintf("%d", count))
}
