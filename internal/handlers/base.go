package handlers

import (
	"os"
	"toolvote/internal/middleware"
	"toolvote/internal/utils"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like the voter id and the
// auto-refresh interval every page needs
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	obj["VoterID"] = middleware.VoterID(c)
	obj["PollSeconds"] = PollSeconds()
	obj["CurrentPath"] = c.Request.URL.Path

	// The nav compares Active with eq, which errors on a missing key
	if _, ok := obj["Active"]; !ok {
		obj["Active"] = ""
	}

	c.HTML(code, name, obj)
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// PollSeconds returns the dashboard refresh interval, clamped to 1-600s.
// This is how "live" the leaderboards are for everyone.
func PollSeconds() int {
	v := utils.StringToInt(os.Getenv("POLL_INTERVAL_SECONDS"))
	if v == 0 {
		v = 60
	}
	return utils.ClampInt(v, 1, 600)
}

// SiteURL is the public base URL shared via the QR code
func SiteURL() string {
	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "http://localhost:8080"
	}
	return siteURL
}
