// Package testutil provides test helpers: an in-memory SQLite store for unit tests and
// testcontainers setup for integration tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/storage"
)

// NewSQLiteDB opens a migrated in-memory SQLite database that is closed when t ends.
func NewSQLiteDB(t testing.TB) *storage.DB {
	t.Helper()
	return NewSQLiteDBWithConfig(t, storage.Config{})
}

// NewSQLiteDBWithConfig is NewSQLiteDB with capability overrides from cfg.
func NewSQLiteDBWithConfig(t testing.TB, cfg storage.Config) *storage.DB {
	t.Helper()
	cfg.Driver = string(storage.DialectSQLite)
	cfg.DSN = ":memory:"

	ctx := context.Background()
	db, err := storage.Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(ctx))
	return db
}

// InsertLocale stores a locale directly and returns it.
func InsertLocale(t testing.TB, db *storage.DB, code, name string) model.Locale {
	t.Helper()
	res, err := db.ExecContext(context.Background(),
		"INSERT INTO locales (code, name, created_at, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)",
		code, name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return model.Locale{ID: id, Code: code, Name: name}
}

// InsertUser stores an active user with an unusable password hash and returns it.
func InsertUser(t testing.TB, db *storage.DB, name, email string) model.User {
	t.Helper()
	res, err := db.ExecContext(context.Background(),
		"INSERT INTO users (name, email, password, active, created_at, updated_at) VALUES (?, ?, 'x', 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)",
		name, email)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return model.User{ID: id, Name: name, Email: email, Active: true}
}
