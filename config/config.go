// Package config provides configuration management for the translation service.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Logs     LogsConfig
	Log      LogConfig
	Seed     SeedConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string        `env:"SERVER_PORT" envDefault:"8080"`
	RateLimit      int           `env:"RATE_LIMIT" envDefault:"100"`
	RateWindow     time.Duration `env:"RATE_WINDOW" envDefault:"1m"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	CORSOrigins    []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
	SwaggerEnabled bool          `env:"SWAGGER_ENABLED" envDefault:"true"`
	SwaggerUser    string        `env:"SWAGGER_USER"`
	SwaggerPass    string        `env:"SWAGGER_PASS"`
}

// CacheConfig holds the export cache configuration.
type CacheConfig struct {
	Enabled bool          `env:"EXPORT_CACHE_ENABLED" envDefault:"true"`
	Size    int           `env:"EXPORT_CACHE_SIZE" envDefault:"64"`
	Shards  int           `env:"EXPORT_CACHE_SHARDS" envDefault:"4"`
	TTL     time.Duration `env:"EXPORT_CACHE_TTL" envDefault:"5m"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKeys          []string      `env:"API_KEYS" envSeparator:","`
	JWTSecretKey     string        `env:"JWT_SECRET_KEY" envDefault:"change-me-access-secret"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET_KEY" envDefault:"change-me-refresh-secret"`
	AccessTokenTTL   time.Duration `env:"JWT_ACCESS_TOKEN_TTL" envDefault:"1h"`
	RefreshTokenTTL  time.Duration `env:"JWT_REFRESH_TOKEN_TTL" envDefault:"168h"`
}

// APIKeySet returns the configured API keys as a set.
func (a AuthConfig) APIKeySet() map[string]bool {
	set := make(map[string]bool, len(a.APIKeys))
	for _, k := range a.APIKeys {
		if k = strings.TrimSpace(k); k != "" {
			set[k] = true
		}
	}
	return set
}

// DatabaseConfig holds the relational store configuration.
type DatabaseConfig struct {
	Driver                 string        `env:"DB_DRIVER" envDefault:"sqlite"`
	DSN                    string        `env:"DB_DSN" envDefault:"file:translations.db"`
	MaxOpenConns           int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns           int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime        time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	DisableFullText        bool          `env:"DB_DISABLE_FULLTEXT"`
	DisableJSONAggregation bool          `env:"DB_DISABLE_JSON_AGGREGATION"`
	AutoMigrate            bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`
}

// LogsConfig holds the MongoDB log store configuration.
type LogsConfig struct {
	Enabled      bool          `env:"MONGO_ENABLED" envDefault:"false"`
	URI          string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	DatabaseName string        `env:"MONGO_DATABASE" envDefault:"translation_service"`
	TTL          time.Duration `env:"MONGO_LOGS_TTL" envDefault:"720h"`

	CircuitBreakerFailureThreshold int           `env:"CIRCUIT_BREAKER_FAILURE_THRESHOLD" envDefault:"5"`
	CircuitBreakerSuccessThreshold int           `env:"CIRCUIT_BREAKER_SUCCESS_THRESHOLD" envDefault:"2"`
	CircuitBreakerTimeout          time.Duration `env:"CIRCUIT_BREAKER_TIMEOUT" envDefault:"30s"`
}

// LogConfig holds application logger configuration.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

// SeedConfig holds the bootstrap admin account created by the seed command.
type SeedConfig struct {
	AdminEmail    string `env:"SEED_ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD" envDefault:"password"`
	AdminName     string `env:"SEED_ADMIN_NAME" envDefault:"Admin"`
}

// Load creates a Config from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
