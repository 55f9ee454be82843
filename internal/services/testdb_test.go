package services

import (
	"fmt"
	"testing"
	"toolvote/internal/db"
	"toolvote/internal/models"
	"toolvote/internal/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB stands up an isolated in-memory database and points the package
// global at it for the duration of the test. A single connection keeps the
// in-memory database alive and serializes writers the way a real server
// serializes on the store.
func newTestDB(t *testing.T) *gorm.DB {
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
	t.Cleanup(func() { sqlDB.Close() })
	return gdb
}

func seedTestSections(t *testing.T) {
	t.Helper()
	db.SeedSections()
}

func mustCreateTool(t *testing.T, name string, up, down int, sections ...models.Section) *models.Tool {
	t.Helper()
	tool := &models.Tool{
		Tid:       utils.RandStringBytesMaskImpr(8),
		Name:      name,
		Upvotes:   up,
		Downvotes: down,
		Sections:  sections,
	}
	if err := db.DB.Create(tool).Error; err != nil {
		t.Fatalf("create tool %s: %v", name, err)
	}
	return tool
}
