package main

import (
	"context"
	"log"
	"os"

	"pdf-summarizer-be/internal/config"
	"pdf-summarizer-be/internal/model"
	"pdf-summarizer-be/internal/pkg/logger"
	"pdf-summarizer-be/internal/repository/memory"
	"pdf-summarizer-be/internal/repository/unitofwork"
	"pdf-summarizer-be/internal/service"
	"pdf-summarizer-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if err := config.ApplyFlags(cfg, os.Args[1:]); err != nil {
		os.Exit(2)
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.Options{Debug: cfg.App.Debug})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Printf("Running AutoMigrate for %d tables...", len(model.All()))
	if err := database.Migrate(db, model.All()...); err != nil {
		color.Red("Migration failed: %v", err)
		os.Exit(1)
	}

	// 3. Seed the built-in prompt template
	prompts := service.NewPromptService(unitofwork.NewRepositoryFactory(db), memory.NewPromptTemplateCache(0), logger.NewNopLogger())
	created, err := prompts.SeedDefault(context.Background())
	if err != nil {
		color.Red("Seeding default prompt template failed: %v", err)
		os.Exit(1)
	}
	if created {
		color.Green("Default prompt template created")
	}

	color.Green("Migration completed successfully")
}
