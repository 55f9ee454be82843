package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func voterRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("tv_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(LoadVoter())
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, VoterID(c))
	})
	return r
}

func get(r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestLoadVoterMintsAndKeepsID(t *testing.T) {
	r := voterRouter()

	first := get(r, "/whoami", nil)
	id := first.Body.String()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("minted id %q is not a uuid: %v", id, err)
	}

	// The id round-trips through the session cookie.
	second := get(r, "/whoami", first.Result().Cookies())
	if got := second.Body.String(); got != id {
		t.Fatalf("second request id = %q, want %q", got, id)
	}
}

func TestLoadVoterQueryParamWins(t *testing.T) {
	r := voterRouter()
	want := uuid.NewString()

	w := get(r, "/whoami?voter="+want, nil)
	if got := w.Body.String(); got != want {
		t.Fatalf("id = %q, want the url-carried %q", got, want)
	}
}

func TestLoadVoterRejectsMalformedQueryParam(t *testing.T) {
	r := voterRouter()

	w := get(r, "/whoami?voter=not-a-uuid", nil)
	id := w.Body.String()
	if id == "not-a-uuid" {
		t.Fatal("malformed voter param was accepted")
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("fallback id %q is not a uuid: %v", id, err)
	}
}
