package main

import (
	"log"
	"os"

	"academic-workflow-be/internal/model"
	"academic-workflow-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// Extensions AutoMigrate cannot create itself.
	log.Println("Step 1: Setting up extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	log.Println("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.Mission{},
		&model.MissionBox{},
		&model.MissionArtifact{},
		&model.Document{},
		&model.ExtractedText{},
		&model.TextChunk{},
		&model.PracticeSession{},
		&model.PracticeItem{},
		&model.SearchAlias{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	// Full-text search runs against content directly; index the
	// expression so ranked queries stay off sequential scans.
	log.Println("Step 3: Creating search indexes...")
	indexSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_text_chunks_content_fts ON text_chunks USING gin (to_tsvector('english', content));`,
		`CREATE INDEX IF NOT EXISTS idx_text_chunks_document_id ON text_chunks (document_id);`,
		`CREATE INDEX IF NOT EXISTS idx_mission_artifacts_mission_id ON mission_artifacts (mission_id);`,
		`CREATE INDEX IF NOT EXISTS idx_mission_boxes_mission_id ON mission_boxes (mission_id);`,
	}
	for _, sql := range indexSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to create index: %v. Continuing...", err)
		}
	}

	log.Println("Migration completed successfully")
}
