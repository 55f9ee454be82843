package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

type ShareHandler struct{}

func NewShareHandler() *ShareHandler {
	return &ShareHandler{}
}

// QR serves a scannable link to the public dashboard so the audience can
// join from the projected slide
func (h *ShareHandler) QR(c *gin.Context) {
	png, err := qrcode.Encode(SiteURL(), qrcode.Medium, 256)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
