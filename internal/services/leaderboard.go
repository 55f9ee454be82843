package services

import (
	"errors"
	"sort"
	"strings"
	"time"
	"toolvote/internal/db"
	"toolvote/internal/models"

	"gorm.io/gorm"
)

// ToolSummary is one display row of the leaderboard. It is a pure projection
// of a Tool: nothing here is written back to the store.
type ToolSummary struct {
	ToolID       uint
	Tid          string
	Name         string
	Tags         string
	SectionNames string
	Upvotes      int
	Downvotes    int
	Score        int
	CreatedAt    time.Time
}

// SectionTopN is the chart truncation used by the per-section views
const SectionTopN = 10

// ComputeLeaderboard projects tools into display rows ordered by score desc,
// then upvotes desc. The sort is stable on purpose: tied tools keep their
// input order, so the board does not flicker between refreshes.
func ComputeLeaderboard(tools []models.Tool) []ToolSummary {
	rows := make([]ToolSummary, 0, len(tools))
	for i := range tools {
		t := &tools[i]
		names := make([]string, 0, len(t.Sections))
		for _, s := range t.Sections {
			names = append(names, s.Name)
		}
		rows = append(rows, ToolSummary{
			ToolID:       t.ID,
			Tid:          t.Tid,
			Name:         t.Name,
			Tags:         t.Tags,
			SectionNames: strings.Join(names, ", "),
			Upvotes:      t.Upvotes,
			Downvotes:    t.Downvotes,
			Score:        t.Score(),
			CreatedAt:    t.CreatedAt,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].Upvotes > rows[j].Upvotes
	})
	return rows
}

// SectionLeaderboard filters to the tools belonging to one section, applies
// the same ordering, and truncates to n rows (n <= 0 keeps all).
func SectionLeaderboard(section *models.Section, tools []models.Tool, n int) []ToolSummary {
	member := make(map[uint]bool, len(section.Tools))
	for _, t := range section.Tools {
		member[t.ID] = true
	}

	filtered := make([]models.Tool, 0, len(section.Tools))
	for _, t := range tools {
		if member[t.ID] {
			filtered = append(filtered, t)
		}
	}

	rows := ComputeLeaderboard(filtered)
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// RecentTools returns the n most recently created tools, newest first
func RecentTools(tools []models.Tool, n int) []ToolSummary {
	rows := ComputeLeaderboard(tools)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// ListToolsWithSections loads the full catalogue in stable id order, sections
// preloaded. Iteration order matters: it is the tie-break for the stable sort.
func ListToolsWithSections() ([]models.Tool, error) {
	var tools []models.Tool
	if err := db.DB.Preload("Sections").Order("id ASC").Find(&tools).Error; err != nil {
		return nil, err
	}
	return tools, nil
}

// ListSectionsWithTools loads all sections in seed order with membership
func ListSectionsWithTools() ([]models.Section, error) {
	var sections []models.Section
	if err := db.DB.Preload("Tools").Order("id ASC").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// GetSectionBySid resolves a public section id with its members preloaded
func GetSectionBySid(sid string) (*models.Section, error) {
	var section models.Section
	if err := db.DB.Preload("Tools").Where("sid = ?", sid).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &section, nil
}

// AllTags collects the distinct tag set across the catalogue, sorted
func AllTags(tools []models.Tool) []string {
	seen := make(map[string]bool)
	for _, t := range tools {
		for _, tag := range strings.Split(t.Tags, ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				seen[tag] = true
			}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// FilterByTags keeps tools carrying every selected tag
func FilterByTags(tools []models.Tool, selected []string) []models.Tool {
	if len(selected) == 0 {
		return tools
	}

	filtered := make([]models.Tool, 0, len(tools))
	for _, t := range tools {
		has := make(map[string]bool)
		for _, tag := range strings.Split(t.Tags, ",") {
			has[strings.TrimSpace(tag)] = true
		}
		keep := true
		for _, want := range selected {
			if !has[want] {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
