package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"toolvote/internal/middleware"
	"toolvote/internal/models"
	"toolvote/internal/services"
	"toolvote/internal/utils"

	"github.com/gin-gonic/gin"
)

type ToolHandler struct{}

func NewToolHandler() *ToolHandler {
	return &ToolHandler{}
}

// Detail shows one tool with its counters and comment thread
func (h *ToolHandler) Detail(c *gin.Context) {
	tid := c.Param("tid")

	tool, err := services.GetToolByTid(tid)
	if err != nil {
		RenderError(c, http.StatusNotFound, "This tool does not exist.")
		return
	}

	comments, err := services.ListComments(tool.ID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Comments are unavailable right now.")
		return
	}

	type renderedComment struct {
		models.Comment
		TextHTML template.HTML
	}
	rendered := make([]renderedComment, len(comments))
	for i, com := range comments {
		rendered[i] = renderedComment{
			Comment:  com,
			TextHTML: utils.RenderMarkdown(com.Text),
		}
	}

	summary := services.ComputeLeaderboard([]models.Tool{*tool})[0]

	data := gin.H{
		"Title":    tool.Name,
		"Tool":     tool,
		"Summary":  summary,
		"Comments": rendered,
		"HasVoted": services.HasVoted(tool.ID, middleware.VoterID(c)),
	}
	if c.Query("error") == "empty" {
		data["Error"] = "Comments cannot be empty."
	}
	Render(c, http.StatusOK, "tool/detail.html", data)
}

// ShowSuggest renders the suggestion form
func (h *ToolHandler) ShowSuggest(c *gin.Context) {
	sections, err := services.ListSectionsWithTools()
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "The catalogue is unavailable right now.")
		return
	}

	Render(c, http.StatusOK, "tool/suggest.html", gin.H{
		"Title":    "Suggest a Tool",
		"Active":   "suggest",
		"Sections": sections,
	})
}

// Suggest creates a new catalogue entry from the form. Tags are derived from
// the chosen sections, so the form has no tag input of its own.
func (h *ToolHandler) Suggest(c *gin.Context) {
	name := c.PostForm("name")
	sectionSids := c.PostFormArray("sections")

	tool, err := services.CreateTool(name, sectionSids)
	if err != nil {
		sections, _ := services.ListSectionsWithTools()
		Render(c, http.StatusBadRequest, "tool/suggest.html", gin.H{
			"Title":    "Suggest a Tool",
			"Active":   "suggest",
			"Sections": sections,
			"Error":    suggestErrorMessage(err),
			"Name":     name,
			"Selected": sectionSids,
		})
		return
	}

	// New entries change every leaderboard
	utils.GetCache().Delete("dashboard:index")
	utils.GetCache().Delete("dashboard:leaderboard")

	c.Redirect(http.StatusFound, "/t/"+tool.Tid)
}

// ShowManage renders the management form for the tool picked via ?tid=
func (h *ToolHandler) ShowManage(c *gin.Context) {
	sections, err := services.ListSectionsWithTools()
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "The catalogue is unavailable right now.")
		return
	}
	tools, err := services.ListToolsWithSections()
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "The catalogue is unavailable right now.")
		return
	}

	data := gin.H{
		"Title":    "Manage Tools",
		"Active":   "manage",
		"Sections": sections,
		"Tools":    tools,
	}

	if tid := c.Query("tid"); tid != "" {
		tool, err := services.GetToolByTid(tid)
		if err != nil {
			RenderError(c, http.StatusNotFound, "This tool does not exist.")
			return
		}
		data["Tool"] = tool
		data["Member"] = sectionMembership(tool)
	}

	Render(c, http.StatusOK, "tool/manage.html", data)
}

// Manage applies a metadata edit. Two people editing the same tool at once
// is last-write-wins; there is no version check.
func (h *ToolHandler) Manage(c *gin.Context) {
	tid := c.PostForm("tid")
	name := c.PostForm("name")
	sectionSids := c.PostFormArray("sections")

	tool, err := services.UpdateTool(tid, name, sectionSids)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "This tool does not exist.")
			return
		}
		sections, _ := services.ListSectionsWithTools()
		tools, _ := services.ListToolsWithSections()
		current, _ := services.GetToolByTid(tid)
		Render(c, http.StatusBadRequest, "tool/manage.html", gin.H{
			"Title":    "Manage Tools",
			"Active":   "manage",
			"Sections": sections,
			"Tools":    tools,
			"Tool":     current,
			"Member":   sectionMembership(current),
			"Error":    suggestErrorMessage(err),
		})
		return
	}

	utils.GetCache().Delete("dashboard:index")
	utils.GetCache().Delete("dashboard:leaderboard")

	c.Redirect(http.StatusFound, "/manage?tid="+tool.Tid)
}

func sectionMembership(tool *models.Tool) map[string]bool {
	member := make(map[string]bool)
	if tool == nil {
		return member
	}
	for _, s := range tool.Sections {
		member[s.Sid] = true
	}
	return member
}

func suggestErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrEmptyName):
		return "Enter a tool name."
	case errors.Is(err, services.ErrDuplicateName):
		return "This tool already exists. Pick a new name or edit it under Manage Tools."
	case errors.Is(err, services.ErrNoSections):
		return "Select at least one section."
	case errors.Is(err, services.ErrNotFound):
		return "One of the selected sections does not exist."
	default:
		return "Saving failed, please try again."
	}
}
