package handlers

import (
	"net/http"
	"toolvote/internal/services"

	"github.com/gin-gonic/gin"
	chart "github.com/wcharczuk/go-chart/v2"
)

type ChartHandler struct{}

func NewChartHandler() *ChartHandler {
	return &ChartHandler{}
}

// Section renders the top-10 score bar chart for one section as PNG.
// Served as an image so the dashboard page can embed it with a plain <img>
// that re-fetches on every poll.
func (h *ChartHandler) Section(c *gin.Context) {
	sid := c.Param("sid")

	section, err := services.GetSectionBySid(sid)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	tools, err := services.ListToolsWithSections()
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	rows := services.SectionLeaderboard(section, tools, services.SectionTopN)
	renderBars(c, section.Name, rows)
}

// Leaderboard renders the overall top-25 chart as PNG
func (h *ChartHandler) Leaderboard(c *gin.Context) {
	tools, err := services.ListToolsWithSections()
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	rows := services.ComputeLeaderboard(tools)
	if len(rows) > 25 {
		rows = rows[:25]
	}
	renderBars(c, "Overall Leaderboard", rows)
}

func renderBars(c *gin.Context, title string, rows []services.ToolSummary) {
	if len(rows) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	bars := make([]chart.Value, 0, len(rows))
	for _, row := range rows {
		bars = append(bars, chart.Value{
			Label: row.Name,
			Value: float64(row.Score),
		})
	}

	graph := chart.BarChart{
		Title:    title,
		Height:   320,
		BarWidth: 36,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Bars: bars,
	}

	c.Header("Content-Type", "image/png")
	if err := graph.Render(chart.PNG, c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
