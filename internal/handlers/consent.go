package handlers

import (
	"net/http"
	"toolvote/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type ConsentHandler struct{}

func NewConsentHandler() *ConsentHandler {
	return &ConsentHandler{}
}

// Show renders the privacy notice. Everything else redirects here until the
// visitor agrees once per session.
func (h *ConsentHandler) Show(c *gin.Context) {
	if middleware.HasConsent(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	Render(c, http.StatusOK, "consent.html", gin.H{
		"Title": "Privacy Notice",
	})
}

// Agree records consent in the session and enters the dashboard
func (h *ConsentHandler) Agree(c *gin.Context) {
	session := sessions.Default(c)
	session.Set(middleware.ConsentKey, true)
	if err := session.Save(); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not record your consent, please try again.")
		return
	}
	c.Redirect(http.StatusFound, "/")
}
