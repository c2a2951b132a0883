//go:build !integration

package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/guttosm/translation-service/config"
)

// testConfig is a complete configuration on a fresh SQLite file without a log store.
func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 5 * time.Second,
		},
		Cache: config.CacheConfig{Enabled: true, Size: 16, Shards: 2, TTL: time.Minute},
		Auth: config.AuthConfig{
			APIKeys:          []string{"cli-key", " "},
			JWTSecretKey:     "test-access-secret",
			JWTRefreshSecret: "test-refresh-secret",
			AccessTokenTTL:   time.Hour,
			RefreshTokenTTL:  24 * time.Hour,
		},
		Database: config.DatabaseConfig{
			Driver:      "sqlite",
			DSN:         "file:" + filepath.Join(t.TempDir(), "translations.db"),
			AutoMigrate: true,
		},
		Log: config.LogConfig{Level: "error"},
		Seed: config.SeedConfig{
			AdminEmail:    "admin@example.com",
			AdminPassword: "password",
			AdminName:     "Admin",
		},
	}
}

// testComponents opens the database of cfg and builds the services on it.
func testComponents(t *testing.T, cfg config.Config) (*DatabaseComponents, *ServiceComponents) {
	t.Helper()
	db, err := InitializeDatabase(context.Background(), cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	services := InitializeServices(db, cfg)
	t.Cleanup(services.Close)
	return db, services
}

func countRows(t *testing.T, db *DatabaseComponents, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.DB.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
