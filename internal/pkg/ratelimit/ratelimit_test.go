package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pdf-summarizer-be/internal/config"
	"pdf-summarizer-be/internal/pkg/logger"
	"pdf-summarizer-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, cfg config.RateLimitConfig) *fiber.App {
	t.Helper()
	log := logger.NewNopLogger()
	limiters, err := New(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = limiters.Close() })

	app := fiber.New(fiber.Config{ErrorHandler: serverutils.FiberErrorHandler(log)})
	app.Use(limiters.Default)
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Post("/", limiters.Upload, func(c *fiber.Ctx) error { return c.SendString("uploaded") })
	return app
}

func statuses(t *testing.T, app *fiber.App, method string, n int) []int {
	t.Helper()
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		resp, err := app.Test(httptest.NewRequest(method, "/", nil))
		require.NoError(t, err)
		out = append(out, resp.StatusCode)
	}
	return out
}

func TestUploadLimit(t *testing.T) {
	app := newApp(t, config.RateLimitConfig{
		Enabled:    true,
		StorageURI: "memory://",
		Upload:     "2 per hour",
		Default:    "100 per day",
	})

	assert.Equal(t, []int{200, 200, 429}, statuses(t, app, http.MethodPost, 3))
	// the upload bucket is separate from the default one
	assert.Equal(t, []int{200}, statuses(t, app, http.MethodGet, 1))
}

func TestDefaultLimit(t *testing.T) {
	app := newApp(t, config.RateLimitConfig{
		Enabled: true,
		Upload:  "10 per hour",
		Default: "3/minute",
	})

	assert.Equal(t, []int{200, 200, 200, 429}, statuses(t, app, http.MethodGet, 4))
}

func TestDisabled(t *testing.T) {
	app := newApp(t, config.RateLimitConfig{Enabled: false, Upload: "1 per hour", Default: "1 per hour"})
	assert.Equal(t, []int{200, 200, 200}, statuses(t, app, http.MethodPost, 3))
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(config.RateLimitConfig{Enabled: true, Upload: "lots", Default: "1 per hour"}, logger.NewNopLogger())
	assert.Error(t, err)

	_, err = New(config.RateLimitConfig{Enabled: true, StorageURI: "memcached://x", Upload: "1 per hour", Default: "1 per hour"}, logger.NewNopLogger())
	assert.Error(t, err)
}

func TestNewStorage(t *testing.T) {
	store, err := NewStorage("memory://")
	require.NoError(t, err)
	assert.Nil(t, store)

	_, err = NewRedisStorage("not a url")
	assert.Error(t, err)
}
