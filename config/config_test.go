package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.Server.CORSOrigins)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "file:translations.db", cfg.Database.DSN)
		assert.True(t, cfg.Database.AutoMigrate)
		assert.True(t, cfg.Cache.Enabled)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.False(t, cfg.Logs.Enabled)
		assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL)
		assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL)
		assert.Empty(t, cfg.Auth.APIKeySet())
	})

	t.Run("loads values from environment", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("RATE_LIMIT", "50")
		t.Setenv("RATE_WINDOW", "30s")
		t.Setenv("DB_DRIVER", "mysql")
		t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/translations")
		t.Setenv("DB_DISABLE_FULLTEXT", "true")
		t.Setenv("EXPORT_CACHE_SIZE", "500")
		t.Setenv("MONGO_ENABLED", "true")
		t.Setenv("API_KEYS", "key1, key2")
		t.Setenv("CORS_ORIGINS", "https://app.example.com")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Equal(t, "mysql", cfg.Database.Driver)
		assert.True(t, cfg.Database.DisableFullText)
		assert.Equal(t, 500, cfg.Cache.Size)
		assert.True(t, cfg.Logs.Enabled)
		assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSOrigins)
		keys := cfg.Auth.APIKeySet()
		assert.True(t, keys["key1"])
		assert.True(t, keys["key2"])
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		t.Setenv("RATE_LIMIT", "invalid")

		_, err := Load()
		assert.Error(t, err)
	})
}
