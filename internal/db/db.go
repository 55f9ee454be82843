package db

import (
	"log"
	"os"
	"toolvote/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=toolvote port=5432 sslmode=disable TimeZone=UTC"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		// No store, no dashboard. Nothing to do but halt.
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.Section{},
		&models.Tool{},
		&models.Vote{},
		&models.Comment{},
		&models.DevNote{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	// Seed initial sections
	SeedSections()
}

// The section set is fixed at seed time and mirrors the conference programme.
// Sids are stable public ids; tools reference sections through the
// section_tools join table.
var defaultSections = []models.Section{
	{Sid: "section1", Name: "Segmentation"},
	{Sid: "section2", Name: "Clustering"},
	{Sid: "section3", Name: "Visualization"},
	{Sid: "section4", Name: "Integration"},
	{Sid: "section5", Name: "Domain_detection"},
	{Sid: "section6", Name: "Upscaling"},
	{Sid: "section7", Name: "Annotation"},
}

func SeedSections() {
	var count int64
	DB.Model(&models.Section{}).Count(&count)
	if count > 0 {
		log.Println("Sections already seeded, skipping")
		return
	}

	for _, section := range defaultSections {
		if err := DB.Create(&section).Error; err != nil {
			log.Printf("Failed to create section %s: %v", section.Name, err)
		}
	}
	log.Println("Initial sections created successfully")
}
