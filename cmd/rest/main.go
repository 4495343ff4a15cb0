package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdf-summarizer-be/internal/bootstrap"
	"pdf-summarizer-be/internal/config"
	"pdf-summarizer-be/internal/model"
	"pdf-summarizer-be/internal/server"
	"pdf-summarizer-be/internal/tracer"
	"pdf-summarizer-be/pkg/database"
	"pdf-summarizer-be/pkg/llm/factory"

	"github.com/fatih/color"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if err := config.ApplyFlags(cfg, os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		red := color.New(color.FgRed, color.Bold)
		red.Fprintln(os.Stderr, "Configuration errors:")
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  - %s\n", e)
		}
		os.Exit(1)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("Unable to prepare directories: %v", err)
	}

	ctx := context.Background()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.Options{Debug: cfg.App.Debug})
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := database.Migrate(gormDB, model.All()...); err != nil {
		log.Panicf("Unable to migrate database: %v", err)
	}

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(ctx, factory.ProviderConfig{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.Model,
		APIKey:        cfg.Ai.AnthropicAPIKey,
		BaseURL:       cfg.Ai.AnthropicBaseURL,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		MaxTokens:     cfg.Ai.MaxTokens,
	})
	if err != nil {
		log.Fatalf("Failed to initialize LLM provider: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg, bootstrap.Deps{DB: gormDB, LLM: llmProvider})
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}
	defer container.Close()
	sysLog := container.Logger

	shutdownTracer := tracer.InitTracer(ctx, cfg.Tracing, sysLog)
	defer shutdownTracer(context.Background())

	if cfg.IsDevelopment() || cfg.Ai.SkipModelValidation {
		sysLog.Info("STARTUP", "Skipping model validation", map[string]interface{}{"model": cfg.Ai.Model})
	} else {
		vctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err := factory.Validate(vctx, llmProvider)
		cancel()
		if err != nil {
			sysLog.Error("STARTUP", "Model validation failed", map[string]interface{}{"model": cfg.Ai.Model, "error": err.Error()})
			color.New(color.FgRed).Fprintf(os.Stderr, "Model %s is not reachable: %v\n", cfg.Ai.Model, err)
			os.Exit(1)
		}
		sysLog.Info("STARTUP", "Model validated", map[string]interface{}{"model": cfg.Ai.Model})
	}

	if _, err := container.PromptService.SeedDefault(ctx); err != nil {
		sysLog.Error("STARTUP", "Failed to seed default prompt template", map[string]interface{}{"error": err.Error()})
	}

	// 5. Start Background Services
	bgCtx, stopBackground := context.WithCancel(ctx)
	defer stopBackground()
	if err := container.EventConsumer.Consume(bgCtx); err != nil {
		sysLog.Error("STARTUP", "Event consumer failed to subscribe", map[string]interface{}{"error": err.Error()})
	}
	container.CleanupScheduler.Start(bgCtx)

	// 6. Initialize Server
	srv := server.New(cfg, container)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		sysLog.Info("SERVER", "Shutdown signal received", map[string]interface{}{"signal": sig.String()})
	case err := <-errCh:
		if err != nil {
			sysLog.Error("SERVER", "Server stopped", map[string]interface{}{"error": err.Error()})
		}
	}

	// The scheduler goes first so no cleanup starts while requests drain.
	container.CleanupScheduler.Stop()
	stopBackground()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sysLog.Error("SERVER", "Graceful shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	sysLog.Info("SERVER", "Server stopped", nil)
}
