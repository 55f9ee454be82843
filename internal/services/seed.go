package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"toolvote/internal/db"
	"toolvote/internal/models"
	"toolvote/internal/utils"
)

// initialVotes carries the pre-conference vote counts gathered before the
// dashboard went live. Applied once, at first seed only, and never
// reconciled against the ledger afterwards.
var initialVotes = map[string]int{
	"ADEPT":         6,
	"banksy":        127,
	"BASS":          30,
	"BayesSpace":    160,
	"Baysor":        1,
	"Bento":         84,
	"BoReMi":        4,
	"CellAgentChat": 33,
	"Cellcharter":   11,
	"Cellpose":      1976,
	"CellProfiler":  1066,
	"CellSymphony":  0,
	"COMMOT":        125,
	"DeepST":        86,
	"DR.SC":         6,
	"Giotto":        17,
	"GPSA":          32,
	"GraphST":       138,
	"GROVER":        1,
	"HEIST":         0,
	"InSituPy":      28,
	"iSCALE":        39,
	"KBC":           1,
	"LeGO-3D":       0,
	"LIANA":         224,
	"LLOT":          0,
	"MagNet":        11,
	"MISTy":         71,
	"MOFA":          361,
	"MOSAIK":        3,
	"MuSpAn":        17,
	"Niche-DE":      23,
	"Nicheformer":   123,
	"PASTE":         96,
	"PASTE2":        41,
	"PersiST":       16,
	"PHD-MS":        1,
	"PRECAST":       12,
	"scGPT":         114,
	"scVI":          1503,
	"Segger":        10,
	"SemST":         4,
	"SPAC":          9,
	"SPACEL":        60,
	"SpaGCN":        0,
	"SPIRAL":        16,
	"SpOOx":         10,
	"ST-Align":      91,
	"STAGATE":       138,
	"STAligner":     47,
	"stardist":      1130,
	"stLearn":       0,
	"STtools":       12,
	"Tangram":       337,
	"TensionMap":    8,
	"Thor":          24,
	"TopoVelo":      13,
	"VoxelEmbed":    0,
	"Cell2Spatial":  2,
}

// SeedFromCSV populates the catalogue from the conference CSV on first boot.
// Columns: "Tool name" plus one 0/1 flag column per section name. Rows with
// no section flag set are skipped. Tags are derived from the section names.
// A non-empty catalogue makes this a no-op, so restarts never reseed.
func SeedFromCSV(path string) (int, error) {
	var count int64
	if err := db.DB.Model(&models.Tool{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return seedFromReader(csv.NewReader(f))
}

func seedFromReader(r *csv.Reader) (int, error) {
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read seed header: %w", err)
	}

	nameIdx := -1
	for i, col := range header {
		if strings.TrimSpace(col) == "Tool name" {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return 0, fmt.Errorf("seed file is missing the \"Tool name\" column")
	}

	var sections []models.Section
	if err := db.DB.Order("id ASC").Find(&sections).Error; err != nil {
		return 0, err
	}
	sectionByName := make(map[string]models.Section, len(sections))
	for _, s := range sections {
		sectionByName[s.Name] = s
	}

	seeded := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return seeded, fmt.Errorf("read seed row: %w", err)
		}

		name := strings.TrimSpace(record[nameIdx])
		if name == "" {
			continue
		}

		var toolSections []models.Section
		for i, col := range header {
			if i == nameIdx || i >= len(record) {
				continue
			}
			section, ok := sectionByName[strings.TrimSpace(col)]
			if !ok {
				continue
			}
			if strings.TrimSpace(record[i]) == "1" {
				toolSections = append(toolSections, section)
			}
		}
		if len(toolSections) == 0 {
			continue // row carries no section flag
		}

		tool := models.Tool{
			Tid:      utils.RandStringBytesMaskImpr(8),
			Name:     name,
			Tags:     joinSectionNames(toolSections),
			Upvotes:  initialVotes[name],
			Sections: toolSections,
		}
		if err := db.DB.Create(&tool).Error; err != nil {
			return seeded, fmt.Errorf("seed tool %s: %w", name, err)
		}
		seeded++
	}
	return seeded, nil
}
