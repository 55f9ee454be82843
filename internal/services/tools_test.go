package services

import (
	"errors"
	"testing"
)

func TestCreateToolDerivesTags(t *testing.T) {
	newTestDB(t)
	seedTestSections(t)

	tool, err := CreateTool("  NewTool  ", []string{"section2", "section3"})
	if err != nil {
		t.Fatalf("CreateTool: %v", err)
	}
	if tool.Name != "NewTool" {
		t.Errorf("name = %q, want trimmed %q", tool.Name, "NewTool")
	}
	if tool.Tags != "Clustering, Visualization" {
		t.Errorf("tags = %q, want derived from section names", tool.Tags)
	}
	if len(tool.Tid) != 8 {
		t.Errorf("tid = %q, want 8 chars", tool.Tid)
	}
	if tool.Upvotes != 0 || tool.Downvotes != 0 {
		t.Errorf("new tool counters = %d/%d, want 0/0", tool.Upvotes, tool.Downvotes)
	}

	// Membership is visible from the section side too.
	section, err := GetSectionBySid("section2")
	if err != nil {
		t.Fatalf("GetSectionBySid: %v", err)
	}
	found := false
	for _, member := range section.Tools {
		if member.ID == tool.ID {
			found = true
		}
	}
	if !found {
		t.Error("tool missing from section2 membership")
	}
}

func TestCreateToolValidation(t *testing.T) {
	newTestDB(t)
	seedTestSections(t)

	if _, err := CreateTool("   ", []string{"section1"}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank name: got %v, want ErrEmptyName", err)
	}
	if _, err := CreateTool("NoHome", nil); !errors.Is(err, ErrNoSections) {
		t.Errorf("no sections: got %v, want ErrNoSections", err)
	}
	if _, err := CreateTool("BadSid", []string{"section99"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown sid: got %v, want ErrNotFound", err)
	}
}

func TestCreateToolDuplicateNameCaseInsensitive(t *testing.T) {
	newTestDB(t)
	seedTestSections(t)

	if _, err := CreateTool("Cellpose", []string{"section1"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := CreateTool("cellpose", []string{"section2"}); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("lowercase duplicate: got %v, want ErrDuplicateName", err)
	}
	if _, err := CreateTool("CELLPOSE", []string{"section2"}); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("uppercase duplicate: got %v, want ErrDuplicateName", err)
	}
}

func TestUpdateToolReplacesSections(t *testing.T) {
	newTestDB(t)
	seedTestSections(t)

	tool, err := CreateTool("Mover", []string{"section1"})
	if err != nil {
		t.Fatalf("CreateTool: %v", err)
	}

	updated, err := UpdateTool(tool.Tid, "Mover v2", []string{"section2", "section3"})
	if err != nil {
		t.Fatalf("UpdateTool: %v", err)
	}
	if updated.Name != "Mover v2" {
		t.Errorf("name = %q, want %q", updated.Name, "Mover v2")
	}
	if updated.Tags != "Clustering, Visualization" {
		t.Errorf("tags = %q, not re-derived", updated.Tags)
	}

	sids := make(map[string]bool)
	for _, s := range updated.Sections {
		sids[s.Sid] = true
	}
	if !sids["section2"] || !sids["section3"] || sids["section1"] {
		t.Errorf("sections = %v, want exactly section2+section3", sids)
	}

	// The old section must not keep a stale join row.
	old, err := GetSectionBySid("section1")
	if err != nil {
		t.Fatalf("GetSectionBySid: %v", err)
	}
	for _, member := range old.Tools {
		if member.ID == tool.ID {
			t.Error("tool still listed in section1 after the move")
		}
	}
}

func TestUpdateToolUnknownTid(t *testing.T) {
	newTestDB(t)
	seedTestSections(t)

	if _, err := UpdateTool("missing1", "X", []string{"section1"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
