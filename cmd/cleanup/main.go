package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"pdf-summarizer-be/internal/config"
	"pdf-summarizer-be/internal/model"
	"pdf-summarizer-be/internal/pkg/logger"
	"pdf-summarizer-be/internal/repository/unitofwork"
	"pdf-summarizer-be/internal/service"
	"pdf-summarizer-be/pkg/database"
	"pdf-summarizer-be/pkg/storage"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()
	if err := config.ApplyFlags(cfg, os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if cfg.Cleanup.RetentionDays < 1 {
		color.Red("RETENTION_DAYS must be at least 1")
		os.Exit(1)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("Unable to prepare directories: %v", err)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.Options{Debug: cfg.App.Debug})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if err := database.Migrate(db, model.All()...); err != nil {
		log.Fatal("Error: Failed to migrate database:", err)
	}

	sysLog := logger.NewZapLogger(logger.LogOptions{
		Dir:        cfg.Log.Dir,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxBytes / (1024 * 1024),
		MaxBackups: cfg.Log.BackupCount,
		IsProd:     cfg.IsProduction(),
	})
	defer sysLog.Sync()

	cleanup := service.NewCleanupService(
		unitofwork.NewRepositoryFactory(db),
		storage.NewLocalStorage(cfg.Storage.UploadFolder),
		service.NopEventPublisher{},
		sysLog,
	)

	color.Cyan("Removing uploads older than %d days...", cfg.Cleanup.RetentionDays)
	res, err := cleanup.RunCleanup(context.Background(), time.Now(), cfg.Cleanup.RetentionDays)
	if err != nil {
		color.Red("Cleanup failed: %v", err)
		os.Exit(1)
	}

	color.Green("Cleanup completed")
	fmt.Printf("  Deleted uploads: %d\n", res.DeletedCount)
	fmt.Printf("  Freed space:     %.2f MB\n", float64(res.FreedBytes)/(1024*1024))
}
