package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"toolvote/internal/db"
	"toolvote/internal/models"
	"toolvote/internal/utils"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
)

func setupDashboardRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	newHandlerDB(t)

	section := models.Section{Sid: "section1", Name: "Segmentation"}
	if err := db.DB.Create(&section).Error; err != nil {
		t.Fatalf("create section: %v", err)
	}
	tool := models.Tool{Tid: "alpha123", Name: "Alpha", Tags: "Segmentation", Upvotes: 3, Sections: []models.Section{section}}
	if err := db.DB.Create(&tool).Error; err != nil {
		t.Fatalf("create tool: %v", err)
	}

	// The cache is a process singleton; start from a clean slate each test.
	for _, key := range []string{"dashboard:index", "dashboard:leaderboard"} {
		utils.GetCache().Delete(key)
		key := key
		t.Cleanup(func() { utils.GetCache().Delete(key) })
	}

	// The templates only need to exist, not to look like anything.
	render := multitemplate.NewRenderer()
	render.AddFromString("dashboard/index.html", "index")
	render.AddFromString("dashboard/leaderboard.html", "leaderboard")
	render.AddFromString("error.html", "error")

	r := gin.New()
	r.HTMLRender = render
	r.Use(voterFromHeader())

	h := NewDashboardHandler()
	r.GET("/", h.Index)
	r.GET("/leaderboard", h.Leaderboard)
	return r
}

func getPage(r *gin.Engine, path, voter string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-Voter", voter)
	r.ServeHTTP(w, req)
	return w
}

// Concurrent viewers share one cached render map. Serving it must never write
// per-request data into it: that is both a map race and a leak of one
// voter's button state to another.
func TestDashboardCachedDataStaysShared(t *testing.T) {
	r := setupDashboardRouter(t)

	for _, page := range []struct {
		path, cacheKey string
	}{
		{"/", "dashboard:index"},
		{"/leaderboard", "dashboard:leaderboard"},
	} {
		// Prime the cache, then hammer the cache-hit path.
		if w := getPage(r, page.path, "primer"); w.Code != http.StatusOK {
			t.Fatalf("prime %s: status %d", page.path, w.Code)
		}

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if w := getPage(r, page.path, fmt.Sprintf("viewer-%d", i)); w.Code != http.StatusOK {
					t.Errorf("%s viewer %d: status %d", page.path, i, w.Code)
				}
			}(i)
		}
		wg.Wait()

		cached := utils.GetCache().Get(page.cacheKey)
		if cached == nil {
			t.Fatalf("%s: nothing cached under %s", page.path, page.cacheKey)
		}
		hData, ok := cached.(gin.H)
		if !ok {
			t.Fatalf("%s: cached %T, want gin.H", page.path, cached)
		}
		for _, key := range []string{"Voted", "VoterID", "PollSeconds", "CurrentPath"} {
			if _, leaked := hData[key]; leaked {
				t.Errorf("%s: per-request key %q written into the shared cache", page.path, key)
			}
		}
	}
}
