package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_CONNECTION_STRING", "")
	os.Unsetenv("DB_CONNECTION_STRING")
	t.Setenv("DATABASE_URL", "postgres://user:pw@localhost/db")

	cfg := Load()

	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, "postgres://user:pw@localhost/db", cfg.Database.Connection)
	assert.Equal(t, 10, cfg.Storage.MaxFileSizeMB)
	assert.Equal(t, 30, cfg.Cleanup.RetentionDays)
	assert.Equal(t, 3, cfg.Cleanup.Hour)
	assert.Equal(t, "10 per hour", cfg.RateLimit.Upload)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSizeBytes())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   []string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
			want:   nil,
		},
		{
			name:   "missing api key",
			mutate: func(c *Config) { c.Ai.AnthropicAPIKey = "" },
			want:   []string{"ANTHROPIC_API_KEY is required"},
		},
		{
			name:   "ollama needs no api key",
			mutate: func(c *Config) { c.Ai.AnthropicAPIKey = ""; c.Ai.LLMProvider = "ollama" },
			want:   nil,
		},
		{
			name:   "insecure secret in production",
			mutate: func(c *Config) { c.App.SecretKey = InsecureSecretKey },
			want:   []string{"SECRET_KEY must be set to a secure value in production"},
		},
		{
			name: "insecure secret allowed in development",
			mutate: func(c *Config) {
				c.App.SecretKey = InsecureSecretKey
				c.App.Environment = "development"
			},
			want: nil,
		},
		{
			name: "both errors reported",
			mutate: func(c *Config) {
				c.Ai.AnthropicAPIKey = ""
				c.App.SecretKey = InsecureSecretKey
			},
			want: []string{
				"ANTHROPIC_API_KEY is required",
				"SECRET_KEY must be set to a secure value in production",
			},
		},
		{
			name:   "bad cleanup hour",
			mutate: func(c *Config) { c.Cleanup.Hour = 24 },
			want:   []string{"CLEANUP_HOUR must be between 0 and 23"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Equal(t, tt.want, cfg.Validate())
		})
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := validConfig()

	err := ApplyFlags(cfg, []string{"-p", "9090", "--host", "0.0.0.0", "-d", "--retention-days", "7", "--log-level", "debug"})
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "0.0.0.0", cfg.App.Host)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, 7, cfg.Cleanup.RetentionDays)
	assert.Equal(t, "DEBUG", cfg.Log.Level)
	// untouched values survive
	assert.Equal(t, "sk-test", cfg.Ai.AnthropicAPIKey)
	assert.Equal(t, "uploads", cfg.Storage.UploadFolder)
}

func TestApplyFlagsRejectsUnknownFlag(t *testing.T) {
	cfg := validConfig()
	assert.Error(t, ApplyFlags(cfg, []string{"--nope"}))
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		expr    string
		count   int
		period  time.Duration
		wantErr bool
	}{
		{expr: "10 per hour", count: 10, period: time.Hour},
		{expr: "200 per day", count: 200, period: 24 * time.Hour},
		{expr: "5/minute", count: 5, period: time.Minute},
		{expr: "3 per 30 seconds", count: 3, period: 30 * time.Second},
		{expr: "1 PER DAYS", count: 1, period: 24 * time.Hour},
		{expr: "ten per hour", wantErr: true},
		{expr: "10 per fortnight", wantErr: true},
		{expr: "10", wantErr: true},
		{expr: "0 per hour", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			count, period, err := ParseRate(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.count, count)
			assert.Equal(t, tt.period, period)
		})
	}
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := validConfig()
	cfg.Storage.UploadFolder = filepath.Join(root, "a", "uploads")
	cfg.Log.Dir = filepath.Join(root, "b", "logs")

	require.NoError(t, cfg.EnsureDirectories())
	assert.DirExists(t, cfg.Storage.UploadFolder)
	assert.DirExists(t, cfg.Log.Dir)
}

func validConfig() *Config {
	return &Config{
		App:      AppConfig{Host: "127.0.0.1", Port: "8000", Environment: "production", SecretKey: "s3cret", SessionLifetimeDays: 30},
		Database: DatabaseConfig{Connection: "sqlite:///test.db"},
		Storage:  StorageConfig{UploadFolder: "uploads", MaxFileSizeMB: 10},
		Ai:       AIConfig{LLMProvider: "claude", AnthropicAPIKey: "sk-test", MaxTokens: 1024, MaxTextLength: 100000},
		Log:      LogConfig{Level: "INFO", Dir: "logs"},
		Cleanup:  CleanupConfig{RetentionDays: 30, Hour: 3},
		RateLimit: RateLimitConfig{
			Enabled: true,
			Upload:  "10 per hour",
			Default: "200 per day",
		},
	}
}
