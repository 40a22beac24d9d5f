package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"resty.dev/v3"

	"github.com/B3N14M1N/ChatAI/internal/config"
	"github.com/B3N14M1N/ChatAI/internal/domain/books"
	"github.com/B3N14M1N/ChatAI/internal/domain/chat"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure/bookstore"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure/crontab"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure/database"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure/database/repository/chatrepo"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure/logger"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure/openaigw"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideLogger provides the process logger configured from the environment
func ProvideLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.LogFormat)
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Run migrations if AUTO_MIGRATE is enabled
	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.Migrate(db); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideRestyClient provides the shared HTTP client for the model gateway
func ProvideRestyClient() *resty.Client {
	return resty.New()
}

// ProvideModelGateway wires the OpenAI-compatible gateway
func ProvideModelGateway(cfg *config.Config, client *resty.Client) chat.ModelGateway {
	return openaigw.NewGateway(client, cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, openaigw.ModelConfig{
		Chat:    cfg.ChatModel,
		Title:   cfg.TitleModel,
		Intent:  cfg.IntentModel,
		Summary: cfg.SummaryModel,
	})
}

// ProvideBookStore wires the bookstore catalog client
func ProvideBookStore(cfg *config.Config) books.Store {
	return bookstore.NewClient(cfg.BookStoreURL, cfg.BookStoreTimeout)
}

// ProvideContextCache provides the in-memory conversation context cache
func ProvideContextCache(cfg *config.Config) *chat.ContextCache {
	return chat.NewContextCache(cfg.ContextCacheTTL)
}

// ProvideContextAssembler wires the assembler with its history cap
func ProvideContextAssembler(repo chat.Repository, cache *chat.ContextCache, cfg *config.Config) *chat.ContextAssembler {
	return chat.NewContextAssembler(repo, cache, cfg.ContextMessageCap)
}

// ProvideSummarizer wires the summarizer with its thresholds
func ProvideSummarizer(gateway chat.ModelGateway, cfg *config.Config) *chat.Summarizer {
	return chat.NewSummarizer(gateway, chat.SummarizerConfig{
		UserThreshold:      cfg.UserSummaryThreshold,
		AssistantThreshold: cfg.AssistantSummaryThreshold,
		CascadeThreshold:   cfg.ContextCascadeThreshold,
		MaxWords:           cfg.SummaryMaxWords,
	})
}

// Infrastructure holds the infrastructure dependencies shared with the HTTP
// server
type Infrastructure struct {
	DB     *gorm.DB
	Logger zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(db *gorm.DB, logger zerolog.Logger) *Infrastructure {
	return &Infrastructure{
		DB:     db,
		Logger: logger,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Logger
	ProvideLogger,

	// Database
	ProvideDatabase,
	chatrepo.NewChatGormRepository,

	// External services
	ProvideRestyClient,
	ProvideModelGateway,
	ProvideBookStore,

	// Context management
	ProvideContextCache,
	ProvideContextAssembler,
	ProvideSummarizer,

	// Crontab for cache sweeps and env reload
	crontab.NewCrontab,

	// Infrastructure struct
	NewInfrastructure,
)
