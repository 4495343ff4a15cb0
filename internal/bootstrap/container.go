package bootstrap

import (
	"fmt"
	"path/filepath"
	"time"

	"pdf-summarizer-be/internal/config"
	"pdf-summarizer-be/internal/controller"
	"pdf-summarizer-be/internal/pkg/logger"
	"pdf-summarizer-be/internal/pkg/ratelimit"
	"pdf-summarizer-be/internal/pkg/session"
	"pdf-summarizer-be/internal/repository/memory"
	"pdf-summarizer-be/internal/repository/unitofwork"
	"pdf-summarizer-be/internal/scheduler"
	"pdf-summarizer-be/internal/service"
	"pdf-summarizer-be/pkg/llm"
	"pdf-summarizer-be/pkg/pdf"
	"pdf-summarizer-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const activeTemplatesTTL = 5 * time.Minute

// Deps are the pieces built outside the container. Extractor and the loggers default to
// the production implementations when nil.
type Deps struct {
	DB        *gorm.DB
	LLM       llm.LLMProvider
	Extractor pdf.Extractor
	Logger    logger.ILogger
}

type Container struct {
	// Controllers
	UploadController  controller.IUploadController
	SummaryController controller.ISummaryController
	PromptController  controller.IPromptController

	// Middleware
	Sessions *session.Manager
	Limiters *ratelimit.Limiters

	// Services used by the entrypoints
	PromptService  service.IPromptService
	CleanupService service.ICleanupService

	// Background
	EventConsumer    service.IEventConsumer
	CleanupScheduler *scheduler.CleanupScheduler

	Logger       logger.ILogger
	APILogger    logger.ILogger
	EventsLogger logger.ILogger

	pubSub *gochannel.GoChannel
}

func NewContainer(cfg *config.Config, deps Deps) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(deps.DB)

	logOpts := logger.LogOptions{
		Dir:        cfg.Log.Dir,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxBytes / (1024 * 1024),
		MaxBackups: cfg.Log.BackupCount,
		IsProd:     cfg.IsProduction(),
		Console:    true,
	}
	sysLogger := deps.Logger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(logOpts)
	}
	apiLogger := logger.NewIsolatedLogger(filepath.Join(cfg.Log.Dir, "api.log"), logOpts)
	eventsLogger := logger.NewIsolatedLogger(filepath.Join(cfg.Log.Dir, "events.log"), logOpts)

	extractor := deps.Extractor
	if extractor == nil {
		extractor = pdf.NewExtractor()
	}
	store := storage.NewLocalStorage(cfg.Storage.UploadFolder)

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	publisher := service.NewEventPublisher(pubSub, sysLogger)
	consumer := service.NewEventConsumer(pubSub, eventsLogger, sysLogger)

	// 3. Services
	promptCache := memory.NewPromptTemplateCache(activeTemplatesTTL)
	promptService := service.NewPromptService(uowFactory, promptCache, sysLogger)
	summaryService := service.NewSummaryService(uowFactory, sysLogger)
	cleanupService := service.NewCleanupService(uowFactory, store, publisher, sysLogger)
	ingestionService := service.NewIngestionService(
		uowFactory,
		store,
		extractor,
		deps.LLM,
		service.NewCacheLookup(),
		publisher,
		sysLogger,
		apiLogger,
		service.IngestionConfig{
			MaxFileSize:   cfg.MaxFileSizeBytes(),
			MaxTextLength: cfg.Ai.MaxTextLength,
			MaxTokens:     cfg.Ai.MaxTokens,
		},
	)

	// 4. Middleware
	limiters, err := ratelimit.New(cfg.RateLimit, sysLogger)
	if err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	sessions := session.NewManager(cfg.App.SecretKey, cfg.SessionLifetime(), cfg.IsProduction(), sysLogger)

	return &Container{
		UploadController:  controller.NewUploadController(ingestionService, promptService, summaryService, cfg.Storage.MaxFileSizeMB),
		SummaryController: controller.NewSummaryController(summaryService),
		PromptController:  controller.NewPromptController(promptService),

		Sessions: sessions,
		Limiters: limiters,

		PromptService:  promptService,
		CleanupService: cleanupService,

		EventConsumer:    consumer,
		CleanupScheduler: scheduler.NewCleanupScheduler(cleanupService, cfg.Cleanup.Hour, cfg.Cleanup.Minute, cfg.Cleanup.RetentionDays, sysLogger),

		Logger:       sysLogger,
		APILogger:    apiLogger,
		EventsLogger: eventsLogger,

		pubSub: pubSub,
	}, nil
}

// Close releases the event bus, limiter storage and flushes the loggers.
func (c *Container) Close() error {
	var firstErr error
	if err := c.pubSub.Close(); err != nil {
		firstErr = err
	}
	if err := c.Limiters.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	for _, l := range []logger.ILogger{c.APILogger, c.EventsLogger, c.Logger} {
		_ = l.Sync()
	}
	return firstErr
}
