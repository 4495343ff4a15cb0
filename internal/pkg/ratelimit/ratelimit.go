package ratelimit

import (
	"fmt"
	"strings"

	"pdf-summarizer-be/internal/config"
	"pdf-summarizer-be/internal/pkg/apperror"
	"pdf-summarizer-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Limiters holds the per-route handlers built from RATE_LIMIT_*. A disabled config yields
// pass-through handlers.
type Limiters struct {
	Default fiber.Handler
	Upload  fiber.Handler
	storage fiber.Storage
}

// NewStorage returns nil for memory:// (fiber's built-in store) and a redis store for redis:// URIs.
func NewStorage(uri string) (fiber.Storage, error) {
	switch {
	case uri == "", strings.HasPrefix(uri, "memory://"):
		return nil, nil
	case strings.HasPrefix(uri, "redis://"), strings.HasPrefix(uri, "rediss://"):
		store, err := NewRedisStorage(uri)
		if err != nil {
			return nil, fmt.Errorf("parse rate limit storage uri: %w", err)
		}
		if err := store.Ping(); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("connect rate limit storage: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported rate limit storage uri %q", uri)
	}
}

func New(cfg config.RateLimitConfig, log logger.ILogger) (*Limiters, error) {
	if !cfg.Enabled {
		return &Limiters{Default: passThrough, Upload: passThrough}, nil
	}

	storage, err := NewStorage(cfg.StorageURI)
	if err != nil {
		return nil, err
	}

	def, err := newHandler("default", cfg.Default, storage, log)
	if err != nil {
		return nil, err
	}
	upload, err := newHandler("upload", cfg.Upload, storage, log)
	if err != nil {
		return nil, err
	}

	return &Limiters{Default: def, Upload: upload, storage: storage}, nil
}

func (l *Limiters) Close() error {
	if l.storage == nil {
		return nil
	}
	return l.storage.Close()
}

func newHandler(name, expr string, storage fiber.Storage, log logger.ILogger) (fiber.Handler, error) {
	max, window, err := config.ParseRate(expr)
	if err != nil {
		return nil, err
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return fmt.Sprintf("%s:%s", name, c.IP())
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Warn("RATE_LIMIT", "Rate limit exceeded", map[string]interface{}{
				"ip":    c.IP(),
				"path":  c.Path(),
				"limit": expr,
			})
			return apperror.RateLimit("Rate limit exceeded. Please try again later.")
		},
	}), nil
}

func passThrough(c *fiber.Ctx) error {
	return c.Next()
}
