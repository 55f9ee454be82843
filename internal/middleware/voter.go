package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const VoterKey = "voter_id"

// LoadVoter attaches a stable anonymous voter id to every request. It is a
// convenience key for the one-vote-per-tool gate, not a credential: anyone
// clearing their cookies gets a fresh identity.
//
// Resolution order: a well-formed ?voter= query param (the URL mirror, so a
// shared or reloaded link keeps its identity even without the cookie), then
// the session cookie, then a freshly minted UUID. Whatever wins is written
// back to the session; if the cookie cannot be saved the id simply lives for
// this session only.
func LoadVoter() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		var voterID string
		if q := c.Query("voter"); q != "" {
			if _, err := uuid.Parse(q); err == nil {
				voterID = q
			}
		}
		if voterID == "" {
			if v, ok := session.Get(VoterKey).(string); ok && v != "" {
				voterID = v
			}
		}
		if voterID == "" {
			voterID = uuid.NewString()
		}

		if v, _ := session.Get(VoterKey).(string); v != voterID {
			session.Set(VoterKey, voterID)
			// Best effort: storage refusal degrades to per-session ids
			_ = session.Save()
		}

		c.Set(VoterKey, voterID)
		c.Next()
	}
}

// VoterID reads the request's voter id set by LoadVoter
func VoterID(c *gin.Context) string {
	v, _ := c.Get(VoterKey)
	id, _ := v.(string)
	return id
}
