package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const ConsentKey = "consent_given"

// ConsentRequired gates every dashboard page behind the privacy notice.
// Browsing and voting both stay blocked until the visitor agrees once.
func ConsentRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if given, _ := session.Get(ConsentKey).(bool); !given {
			c.Redirect(http.StatusFound, "/consent")
			c.Abort()
			return
		}
		c.Next()
	}
}

// HasConsent reports whether this session already agreed
func HasConsent(c *gin.Context) bool {
	given, _ := sessions.Default(c).Get(ConsentKey).(bool)
	return given
}
