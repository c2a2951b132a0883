package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/translation-service/config"
	"github.com/guttosm/translation-service/internal/circuitbreaker"
	"github.com/guttosm/translation-service/internal/metrics"
	"github.com/guttosm/translation-service/internal/repository"
	"github.com/guttosm/translation-service/internal/service"
	"github.com/guttosm/translation-service/internal/storage"
)

// DatabaseComponents holds the relational store and the repositories built on it.
type DatabaseComponents struct {
	DB           *storage.DB
	Transactor   repository.Transactor
	Locales      repository.LocaleRepositoryInterface
	Translations repository.TranslationRepositoryInterface
	Revisions    repository.RevisionRepositoryInterface
	Users        repository.UserRepositoryInterface
	Tokens       repository.TokenRepositoryInterface
}

// InitializeDatabase opens the configured SQL database, applies migrations when AutoMigrate is
// set, and builds the repositories.
func InitializeDatabase(ctx context.Context, cfg config.DatabaseConfig) (*DatabaseComponents, error) {
	db, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	return NewDatabaseComponents(db), nil
}

// OpenDatabase opens the configured SQL database without migrating it.
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig) (*storage.DB, error) {
	db, err := storage.Open(ctx, storage.Config{
		Driver:                 cfg.Driver,
		DSN:                    cfg.DSN,
		MaxOpenConns:           cfg.MaxOpenConns,
		MaxIdleConns:           cfg.MaxIdleConns,
		ConnMaxLifetime:        cfg.ConnMaxLifetime,
		DisableFullText:        cfg.DisableFullText,
		DisableJSONAggregation: cfg.DisableJSONAggregation,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// NewDatabaseComponents builds the repositories of db.
func NewDatabaseComponents(db *storage.DB) *DatabaseComponents {
	caps := db.Capabilities()
	return &DatabaseComponents{
		DB:           db,
		Transactor:   repository.NewTransactor(db),
		Locales:      repository.NewLocaleRepository(db, caps),
		Translations: repository.NewTranslationRepository(db, caps),
		Revisions:    repository.NewRevisionRepository(db, caps),
		Users:        repository.NewUserRepository(db, caps),
		Tokens:       repository.NewTokenRepository(db, caps),
	}
}

// Close closes the connection pool.
func (d *DatabaseComponents) Close() error {
	return d.DB.Close()
}

// LogStoreComponents holds the MongoDB log store.
type LogStoreComponents struct {
	Mongo          *repository.MongoDB
	LoggingService service.LoggingService
	CircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeLogStore connects to MongoDB for request and audit logs.
// Returns nil if the log store is disabled or the connection fails.
func InitializeLogStore(ctx context.Context, cfg config.LogsConfig) *LogStoreComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without log store")
		return nil
	}
	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	if cfg.TTL > 0 {
		if err := db.SetLogsTTL(ctx, cfg.TTL); err != nil {
			log.Warn().Err(err).Msg("Failed to set logs TTL index")
		}
	}

	cb := newLogStoreBreaker(cfg)
	return &LogStoreComponents{
		Mongo:          db,
		LoggingService: service.NewLoggingService(repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), cb)),
		CircuitBreaker: cb,
	}
}

func newLogStoreBreaker(cfg config.LogsConfig) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		Name:             "mongodb_logs",
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
			log.Warn().Str("breaker", name).Stringer("from", from).Stringer("to", to).Msg("Circuit breaker state changed")
		},
	})
}

// Close disconnects from MongoDB.
func (l *LogStoreComponents) Close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := l.Mongo.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to disconnect from MongoDB")
	}
}
