package services

import (
	"errors"
	"strings"
	"toolvote/internal/db"
	"toolvote/internal/models"
	"toolvote/internal/utils"

	"gorm.io/gorm"
)

var (
	ErrEmptyName     = errors.New("tool name must not be empty")
	ErrDuplicateName = errors.New("a tool with this name already exists")
	ErrNoSections    = errors.New("select at least one section")
)

// CreateTool adds a suggested tool to the catalogue. Tags are derived from
// the section names, never entered by hand. The name collision check is
// case-insensitive: "cellpose" and "Cellpose" are the same tool.
func CreateTool(name string, sectionSids []string) (*models.Tool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(sectionSids) == 0 {
		return nil, ErrNoSections
	}

	sections, err := sectionsBySids(sectionSids)
	if err != nil {
		return nil, err
	}

	var existing models.Tool
	err = db.DB.Where("LOWER(name) = LOWER(?)", name).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateName
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tool := models.Tool{
		Tid:      utils.RandStringBytesMaskImpr(8),
		Name:     name,
		Tags:     joinSectionNames(sections),
		Sections: sections,
	}
	if err := db.DB.Create(&tool).Error; err != nil {
		return nil, err
	}
	return &tool, nil
}

// UpdateTool edits a tool's name and section membership. Racing edits are
// last-write-wins, per design. The section_tools join rows are replaced
// wholesale so membership stays consistent from both sides.
func UpdateTool(tid, name string, sectionSids []string) (*models.Tool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(sectionSids) == 0 {
		return nil, ErrNoSections
	}

	tool, err := GetToolByTid(tid)
	if err != nil {
		return nil, err
	}

	sections, err := sectionsBySids(sectionSids)
	if err != nil {
		return nil, err
	}

	var existing models.Tool
	err = db.DB.Where("LOWER(name) = LOWER(?) AND id <> ?", name, tool.ID).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateName
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(tool).Updates(map[string]interface{}{
			"name": name,
			"tags": joinSectionNames(sections),
		}).Error; err != nil {
			return err
		}
		return tx.Model(tool).Association("Sections").Replace(sections)
	})
	if err != nil {
		return nil, err
	}

	return GetToolByTid(tid)
}

// GetToolByTid resolves a public tool id, sections preloaded
func GetToolByTid(tid string) (*models.Tool, error) {
	var tool models.Tool
	if err := db.DB.Preload("Sections").Where("tid = ?", tid).First(&tool).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tool, nil
}

func sectionsBySids(sids []string) ([]models.Section, error) {
	var sections []models.Section
	if err := db.DB.Where("sid IN ?", sids).Order("id ASC").Find(&sections).Error; err != nil {
		return nil, err
	}
	if len(sections) != len(sids) {
		return nil, ErrNotFound
	}
	return sections, nil
}

func joinSectionNames(sections []models.Section) string {
	names := make([]string, 0, len(sections))
	for _, s := range sections {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}
