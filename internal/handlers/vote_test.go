package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"toolvote/internal/db"
	"toolvote/internal/middleware"
	"toolvote/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newHandlerDB stands up an in-memory database and points the package global
// at it for the duration of the test
func newHandlerDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := gdb.AutoMigrate(
		&models.Section{},
		&models.Tool{},
		&models.Vote{},
		&models.Comment{},
		&models.DevNote{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	db.DB = gdb
}

// voterFromHeader stands in for the session middleware: the voter id comes
// from the X-Voter header so tests can impersonate distinct voters
func voterFromHeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		voter := c.GetHeader("X-Voter")
		if voter == "" {
			voter = "default-voter"
		}
		c.Set(middleware.VoterKey, voter)
	}
}

func setupVoteRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	newHandlerDB(t)

	r := gin.New()
	r.Use(voterFromHeader())

	v := NewVoteHandler()
	r.POST("/vote/:tid/up", v.Up)
	r.POST("/vote/:tid/down", v.Down)
	return r
}

func postVote(t *testing.T, r *gin.Engine, path, voter string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if voter != "" {
		req.Header.Set("X-Voter", voter)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestVoteEndpoint(t *testing.T) {
	r := setupVoteRouter(t)

	tool := models.Tool{Tid: "alpha123", Name: "Alpha", Upvotes: 3, Downvotes: 1}
	if err := db.DB.Create(&tool).Error; err != nil {
		t.Fatalf("create tool: %v", err)
	}

	w := postVote(t, r, "/vote/alpha123/up", "v1")
	if w.Code != http.StatusOK || w.Body.String() != "4" {
		t.Fatalf("first up: %d %q, want 200 \"4\"", w.Code, w.Body.String())
	}

	// Duplicate from the same voter: still 200, counter unchanged.
	w = postVote(t, r, "/vote/alpha123/up", "v1")
	if w.Code != http.StatusOK || w.Body.String() != "4" {
		t.Fatalf("repeat up: %d %q, want 200 \"4\"", w.Code, w.Body.String())
	}

	// Same voter switching direction is still a duplicate.
	w = postVote(t, r, "/vote/alpha123/down", "v1")
	if w.Code != http.StatusOK || w.Body.String() != "1" {
		t.Fatalf("cross-direction repeat: %d %q, want 200 \"1\"", w.Code, w.Body.String())
	}

	// A different voter moves the counter.
	w = postVote(t, r, "/vote/alpha123/up", "v2")
	if w.Code != http.StatusOK || w.Body.String() != "5" {
		t.Fatalf("second voter: %d %q, want 200 \"5\"", w.Code, w.Body.String())
	}
}

func TestVoteEndpointUnknownTool(t *testing.T) {
	r := setupVoteRouter(t)

	w := postVote(t, r, "/vote/nope0000/up", "v1")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
