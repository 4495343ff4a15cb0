package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const InsecureSecretKey = "dev-secret-key-change-in-production"

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Storage   StorageConfig
	Ai        AIConfig
	Log       LogConfig
	Cleanup   CleanupConfig
	RateLimit RateLimitConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Host                string
	Port                string
	Debug               bool
	Environment         string
	SecretKey           string
	SessionLifetimeDays int
	CorsAllowedOrigins  string
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	UploadFolder  string
	MaxFileSizeMB int
}

type AIConfig struct {
	LLMProvider         string // "claude" or "ollama"
	AnthropicAPIKey     string
	AnthropicBaseURL    string
	Model               string
	OllamaBaseURL       string
	MaxTokens           int
	MaxTextLength       int
	SkipModelValidation bool
}

type LogConfig struct {
	Level       string
	Dir         string
	MaxBytes    int
	BackupCount int
}

type CleanupConfig struct {
	RetentionDays int
	Hour          int
	Minute        int
}

type RateLimitConfig struct {
	Enabled    bool
	StorageURI string
	Upload     string
	Default    string
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Host:                getEnv("APP_HOST", defaultHost()),
			Port:                getEnv("APP_PORT", "8000"),
			Debug:               getEnvAsBool("APP_DEBUG", false),
			Environment:         getEnv("GO_ENV", "production"),
			SecretKey:           getEnv("SECRET_KEY", InsecureSecretKey),
			SessionLifetimeDays: getEnvAsInt("SESSION_LIFETIME_DAYS", 30),
			CorsAllowedOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", getEnv("DATABASE_URL", "sqlite:///pdf_summaries.db")),
		},
		Storage: StorageConfig{
			UploadFolder:  getEnv("UPLOAD_FOLDER", "uploads"),
			MaxFileSizeMB: getEnvAsInt("MAX_FILE_SIZE_MB", 10),
		},
		Ai: AIConfig{
			LLMProvider:         getEnv("LLM_PROVIDER", "claude"),
			AnthropicAPIKey:     getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicBaseURL:    getEnv("ANTHROPIC_BASE_URL", ""),
			Model:               getEnv("CLAUDE_MODEL", "claude-sonnet-4-5-20250929"),
			OllamaBaseURL:       getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			MaxTokens:           getEnvAsInt("MAX_TOKENS", 1024),
			MaxTextLength:       getEnvAsInt("MAX_TEXT_LENGTH", 100000),
			SkipModelValidation: getEnvAsBool("SKIP_CLAUDE_VALIDATION", false),
		},
		Log: LogConfig{
			Level:       strings.ToUpper(getEnv("LOG_LEVEL", "INFO")),
			Dir:         getEnv("LOG_DIR", "logs"),
			MaxBytes:    getEnvAsInt("LOG_MAX_BYTES", 10*1024*1024),
			BackupCount: getEnvAsInt("LOG_BACKUP_COUNT", 5),
		},
		Cleanup: CleanupConfig{
			RetentionDays: getEnvAsInt("RETENTION_DAYS", 30),
			Hour:          getEnvAsInt("CLEANUP_HOUR", 3),
			Minute:        getEnvAsInt("CLEANUP_MINUTE", 0),
		},
		RateLimit: RateLimitConfig{
			Enabled:    getEnvAsBool("RATE_LIMIT_ENABLED", true),
			StorageURI: getEnv("RATE_LIMIT_STORAGE_URI", "memory://"),
			Upload:     getEnv("RATE_LIMIT_UPLOAD", "10 per hour"),
			Default:    getEnv("RATE_LIMIT_DEFAULT", "200 per day"),
		},
		Tracing: TracingConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

// ApplyFlags overrides loaded values with command line flags. Only flags that were
// actually passed take effect.
func ApplyFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet("pdf-summarizer", pflag.ContinueOnError)

	host := fs.String("host", cfg.App.Host, "Host to bind to")
	port := fs.StringP("port", "p", cfg.App.Port, "Port to bind to")
	debug := fs.BoolP("debug", "d", cfg.App.Debug, "Enable debug mode")
	apiKey := fs.String("api-key", cfg.Ai.AnthropicAPIKey, "Anthropic API key")
	database := fs.String("database", cfg.Database.Connection, "Database connection string")
	uploadFolder := fs.String("upload-folder", cfg.Storage.UploadFolder, "Directory for uploaded files")
	logLevel := fs.String("log-level", cfg.Log.Level, "Log level (DEBUG, INFO, WARNING, ERROR, CRITICAL)")
	retention := fs.Int("retention-days", cfg.Cleanup.RetentionDays, "Days to keep uploads before cleanup")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.App.Host = *host
	cfg.App.Port = *port
	cfg.App.Debug = *debug
	cfg.Ai.AnthropicAPIKey = *apiKey
	cfg.Database.Connection = *database
	cfg.Storage.UploadFolder = *uploadFolder
	cfg.Log.Level = strings.ToUpper(*logLevel)
	cfg.Cleanup.RetentionDays = *retention
	return nil
}

// Validate returns every problem found; an empty slice means the config is usable.
func (c *Config) Validate() []string {
	var errs []string

	if c.UsesClaude() && c.Ai.AnthropicAPIKey == "" {
		errs = append(errs, "ANTHROPIC_API_KEY is required")
	}
	if c.IsProduction() && c.App.SecretKey == InsecureSecretKey {
		errs = append(errs, "SECRET_KEY must be set to a secure value in production")
	}
	if c.Storage.MaxFileSizeMB <= 0 {
		errs = append(errs, "MAX_FILE_SIZE_MB must be positive")
	}
	if c.Cleanup.RetentionDays < 1 {
		errs = append(errs, "RETENTION_DAYS must be at least 1")
	}
	if c.Cleanup.Hour < 0 || c.Cleanup.Hour > 23 {
		errs = append(errs, "CLEANUP_HOUR must be between 0 and 23")
	}
	if c.Cleanup.Minute < 0 || c.Cleanup.Minute > 59 {
		errs = append(errs, "CLEANUP_MINUTE must be between 0 and 59")
	}
	if c.RateLimit.Enabled {
		if _, _, err := ParseRate(c.RateLimit.Upload); err != nil {
			errs = append(errs, fmt.Sprintf("RATE_LIMIT_UPLOAD: %v", err))
		}
		if _, _, err := ParseRate(c.RateLimit.Default); err != nil {
			errs = append(errs, fmt.Sprintf("RATE_LIMIT_DEFAULT: %v", err))
		}
	}

	return errs
}

// EnsureDirectories creates the upload and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Storage.UploadFolder, c.Log.Dir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.App.Environment, "development")
}

func (c *Config) UsesClaude() bool {
	switch strings.ToLower(c.Ai.LLMProvider) {
	case "", "claude", "anthropic":
		return true
	}
	return false
}

func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.Storage.MaxFileSizeMB) * 1024 * 1024
}

func (c *Config) SessionLifetime() time.Duration {
	return time.Duration(c.App.SessionLifetimeDays) * 24 * time.Hour
}

func (c *Config) ListenAddr() string {
	return c.App.Host + ":" + c.App.Port
}

// ParseRate parses limiter expressions such as "10 per hour", "200/day" or "5 per 30 minutes".
func ParseRate(expr string) (int, time.Duration, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	var countPart, periodPart string
	if i := strings.Index(s, " per "); i >= 0 {
		countPart, periodPart = s[:i], s[i+len(" per "):]
	} else if i := strings.Index(s, "/"); i >= 0 {
		countPart, periodPart = s[:i], s[i+1:]
	} else {
		return 0, 0, fmt.Errorf("invalid rate %q", expr)
	}

	count, err := strconv.Atoi(strings.TrimSpace(countPart))
	if err != nil || count <= 0 {
		return 0, 0, fmt.Errorf("invalid rate count in %q", expr)
	}

	fields := strings.Fields(periodPart)
	multiplier := 1
	switch len(fields) {
	case 1:
	case 2:
		multiplier, err = strconv.Atoi(fields[0])
		if err != nil || multiplier <= 0 {
			return 0, 0, fmt.Errorf("invalid rate period in %q", expr)
		}
		fields = fields[1:]
	default:
		return 0, 0, fmt.Errorf("invalid rate period in %q", expr)
	}

	var unit time.Duration
	switch strings.TrimSuffix(fields[0], "s") {
	case "second":
		unit = time.Second
	case "minute":
		unit = time.Minute
	case "hour":
		unit = time.Hour
	case "day":
		unit = 24 * time.Hour
	default:
		return 0, 0, fmt.Errorf("unknown rate unit in %q", expr)
	}

	return count, time.Duration(multiplier) * unit, nil
}

func defaultHost() string {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return "0.0.0.0"
	}
	return "127.0.0.1"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
