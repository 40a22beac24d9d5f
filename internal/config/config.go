package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Version is the build version, overridable at link time.
var Version = "dev"

// Global singleton kept for the crontab env-reload job
var globalConfig *Config

// Config holds all environment backed configuration for the chat service.
type Config struct {
	// HTTP Server
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`

	// OpenAI
	OpenAIAPIKey  string `env:"OPENAI_API_KEY,notEmpty"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	ChatModel     string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	TitleModel    string `env:"OPENAI_TITLE_MODEL" envDefault:"gpt-4o-mini"`
	IntentModel   string `env:"OPENAI_INTENT_MODEL" envDefault:"gpt-4o-mini"`
	SummaryModel  string `env:"OPENAI_SUMMARY_MODEL" envDefault:"gpt-4o-mini"`

	// Book catalog retrieval service
	BookStoreURL     string        `env:"BOOKSTORE_URL" envDefault:"http://bookstore:8184"`
	BookStoreTimeout time.Duration `env:"BOOKSTORE_TIMEOUT" envDefault:"10s"`

	// Context management
	ContextCacheTTL           time.Duration `env:"CONTEXT_CACHE_TTL" envDefault:"60s"`
	ContextMessageCap         int           `env:"CONTEXT_MESSAGE_CAP" envDefault:"50"`
	ContextCascadeThreshold   int           `env:"CONTEXT_CASCADE_THRESHOLD" envDefault:"2000"`
	UserSummaryThreshold      int           `env:"USER_SUMMARY_THRESHOLD" envDefault:"400"`
	AssistantSummaryThreshold int           `env:"ASSISTANT_SUMMARY_THRESHOLD" envDefault:"600"`
	SummaryMaxWords           int           `env:"SUMMARY_MAX_WORDS" envDefault:"80"`
	CacheSweepIntervalMinutes int           `env:"CACHE_SWEEP_INTERVAL_MINUTES" envDefault:"5"`

	// Observability / Logging
	OTLPEndpoint     string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string `env:"SERVICE_NAME" envDefault:"chat-api"`
	ServiceNamespace string `env:"SERVICE_NAMESPACE" envDefault:"chatai"`
	Environment      string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.ContextMessageCap <= 0 {
		return nil, fmt.Errorf("CONTEXT_MESSAGE_CAP must be positive, got %d", cfg.ContextMessageCap)
	}
	if cfg.ContextCacheTTL <= 0 {
		return nil, fmt.Errorf("CONTEXT_CACHE_TTL must be positive, got %s", cfg.ContextCacheTTL)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	globalConfig = cfg

	return cfg, nil
}

// GetGlobal returns the global config instance for backwards compatibility.
// Deprecated: Use dependency injection with Load() instead.
func GetGlobal() *Config {
	return globalConfig
}

// GetEnvReloadedAt returns when the environment was last (re)loaded.
func GetEnvReloadedAt() time.Time {
	if globalConfig == nil {
		return time.Time{}
	}
	return globalConfig.EnvReloadedAt
}
