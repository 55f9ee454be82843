package handlers

import (
	"net/http"
	"time"
	"toolvote/internal/middleware"
	"toolvote/internal/models"
	"toolvote/internal/services"
	"toolvote/internal/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// SectionView pairs a section with its ranked tool rows for the templates
type SectionView struct {
	Section models.Section
	Rows    []services.ToolSummary
}

// cacheTTL ties the shared view cache to the poll interval: one recompute
// per refresh window, shared by every concurrent viewer.
func cacheTTL() time.Duration {
	return time.Duration(PollSeconds()) * time.Second
}

// Index is the live dashboard: every section with its chart and ranked tool
// list, plus the overall top 5 and the recently added sidebar.
func (h *DashboardHandler) Index(c *gin.Context) {
	cacheKey := "dashboard:index"
	if cachedData := utils.GetCache().Get(cacheKey); cachedData != nil {
		if hData, ok := cachedData.(gin.H); ok {
			Render(c, http.StatusOK, "dashboard/index.html", withVoted(hData, middleware.VoterID(c)))
			return
		}
	}

	tools, err := services.ListToolsWithSections()
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "The catalogue is unavailable right now, try again in a moment.")
		return
	}
	services.FillCommentCounts(tools)

	sections, err := services.ListSectionsWithTools()
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "The catalogue is unavailable right now, try again in a moment.")
		return
	}

	views := make([]SectionView, 0, len(sections))
	for i := range sections {
		views = append(views, SectionView{
			Section: sections[i],
			Rows:    services.SectionLeaderboard(&sections[i], tools, 0),
		})
	}

	leaderboard := services.ComputeLeaderboard(tools)
	top5 := leaderboard
	if len(top5) > 5 {
		top5 = top5[:5]
	}

	renderData := gin.H{
		"Title":       "Live Dashboard",
		"Active":      "dashboard",
		"AutoRefresh": true,
		"Sections":    views,
		"Top5":        top5,
		"Recent":      services.RecentTools(tools, 5),
		"RefreshedAt": time.Now().Format("2006-01-02 15:04:05"),
	}
	utils.GetCache().Set(cacheKey, renderData, cacheTTL())

	Render(c, http.StatusOK, "dashboard/index.html", withVoted(renderData, middleware.VoterID(c)))
}

// Leaderboard is the overall ranking across all sections
func (h *DashboardHandler) Leaderboard(c *gin.Context) {
	cacheKey := "dashboard:leaderboard"
	if cachedData := utils.GetCache().Get(cacheKey); cachedData != nil {
		if hData, ok := cachedData.(gin.H); ok {
			Render(c, http.StatusOK, "dashboard/leaderboard.html", withVoted(hData, middleware.VoterID(c)))
			return
		}
	}

	tools, err := services.ListToolsWithSections()
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "The catalogue is unavailable right now, try again in a moment.")
		return
	}
	services.FillCommentCounts(tools)

	rows := services.ComputeLeaderboard(tools)

	renderData := gin.H{
		"Title":       "Overall Leaderboard",
		"Active":      "leaderboard",
		"AutoRefresh": true,
		"Rows":        rows,
		"RefreshedAt": time.Now().Format("2006-01-02 15:04:05"),
	}
	utils.GetCache().Set(cacheKey, renderData, cacheTTL())

	Render(c, http.StatusOK, "dashboard/leaderboard.html", withVoted(renderData, middleware.VoterID(c)))
}

// withVoted copies the shared render data and adds this voter's button state.
// The copy is required: the cached map is served to every concurrent viewer,
// and Render writes per-request keys into whatever map it is handed. Writing
// Voted into the shared map would race and leak one voter's state to another.
func withVoted(shared gin.H, voterID string) gin.H {
	data := make(gin.H, len(shared)+5)
	for k, v := range shared {
		data[k] = v
	}
	data["Voted"] = services.VotedTools(voterID)
	return data
}

// Tags is the tag explorer: filter the catalogue down to tools carrying
// every selected tag. Tags mirror section names, so this doubles as a
// cross-section view.
func (h *DashboardHandler) Tags(c *gin.Context) {
	selected := c.QueryArray("tag")

	tools, err := services.ListToolsWithSections()
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "The catalogue is unavailable right now, try again in a moment.")
		return
	}

	filtered := services.FilterByTags(tools, selected)
	rows := services.ComputeLeaderboard(filtered)

	Render(c, http.StatusOK, "dashboard/tags.html", gin.H{
		"Title":    "Tag Explorer",
		"Active":   "tags",
		"AllTags":  services.AllTags(tools),
		"Selected": selected,
		"Rows":     rows,
		"Voted":    services.VotedTools(middleware.VoterID(c)),
	})
}
