//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/translation-service/internal/circuitbreaker"
)

func TestLogsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	t.Cleanup(func() { require.NoError(t, db.Close(ctx)) })
	require.NoError(t, db.SetLogsTTL(ctx, 30*24*time.Hour))

	repo := NewLogsRepository(db)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []*LogEntryDocument{
		{Timestamp: base, Level: "info", Message: "HTTP request", RequestID: "r1", Method: "GET", Path: "/api/translations/export", StatusCode: 200},
		{Timestamp: base.Add(time.Minute), Level: "info", Message: "translation stored", RequestID: "r2", Method: "POST", Path: "/api/translations",
			ActionType: "translation.store", Resource: "translation", ResourceID: "10", UserID: "7", Fields: map[string]interface{}{"locale": "fr_FR"}},
		{Timestamp: base.Add(2 * time.Minute), Level: "info", Message: "translation updated", RequestID: "r3", Method: "PUT", Path: "/api/translations/10",
			ActionType: "translation.update", Resource: "translation", ResourceID: "10", UserID: "7"},
		{Timestamp: base.Add(3 * time.Minute), Level: "error", Message: "locale delete failed", RequestID: "r4", Method: "DELETE", Path: "/api/locales/3",
			ActionType: "locale.delete", Resource: "locale", ResourceID: "3", UserID: "api_key", Error: "storage"},
	}
	require.NoError(t, repo.CreateMany(ctx, entries))
	for _, e := range entries {
		assert.False(t, e.ID.IsZero())
	}

	t.Run("create stamps id and time", func(t *testing.T) {
		entry := &LogEntryDocument{Level: "info", Message: "login", ActionType: "login", RequestID: "r5"}
		require.NoError(t, repo.Create(ctx, entry))
		assert.False(t, entry.ID.IsZero())
		assert.False(t, entry.Timestamp.IsZero())
	})

	start, end := base.Add(30*time.Second), base.Add(150*time.Second)
	tests := []struct {
		name      string
		opts      LogQueryOptions
		wantIDs   []string
		wantCount int64
	}{
		{name: "audit trail of one translation, newest first", opts: LogQueryOptions{Resource: "translation", ResourceID: "10"}, wantIDs: []string{"r3", "r2"}, wantCount: 2},
		{name: "by action", opts: LogQueryOptions{ActionType: "locale.delete"}, wantIDs: []string{"r4"}, wantCount: 1},
		{name: "by user", opts: LogQueryOptions{UserID: "api_key"}, wantIDs: []string{"r4"}, wantCount: 1},
		{name: "by level", opts: LogQueryOptions{Level: "error"}, wantIDs: []string{"r4"}, wantCount: 1},
		{name: "path is a case-insensitive pattern", opts: LogQueryOptions{Path: "/API/TRANSLATIONS"}, wantIDs: []string{"r3", "r2", "r1"}, wantCount: 3},
		{name: "time window", opts: LogQueryOptions{StartTime: &start, EndTime: &end}, wantIDs: []string{"r3", "r2"}, wantCount: 2},
		{name: "method after a time", opts: LogQueryOptions{Method: "PUT", StartTime: &start}, wantIDs: []string{"r3"}, wantCount: 1},
		{name: "skip and limit", opts: LogQueryOptions{UserID: "7", Skip: 1, Limit: 1}, wantIDs: []string{"r2"}, wantCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Query(ctx, tt.opts)
			require.NoError(t, err)
			ids := make([]string, len(got))
			for i, e := range got {
				ids[i] = e.RequestID
			}
			assert.Equal(t, tt.wantIDs, ids)

			count, err := repo.Count(ctx, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)
		})
	}

	t.Run("fields round trip", func(t *testing.T) {
		got, err := repo.Query(ctx, LogQueryOptions{RequestID: "r2"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "fr_FR", got[0].Fields["locale"])
		assert.Equal(t, base.Add(time.Minute), got[0].Timestamp.UTC())
	})
}

func TestLogsRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	t.Cleanup(func() { require.NoError(t, db.Close(ctx)) })

	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	repo := NewLogsRepositoryWithCircuitBreaker(NewLogsRepository(db), cb)

	require.NoError(t, repo.Create(ctx, &LogEntryDocument{Level: "info", Message: "locale created", ActionType: "locale.create"}))

	count, err := repo.Count(ctx, LogQueryOptions{ActionType: "locale.create"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stats := repo.GetCircuitBreaker().GetStats()
	assert.Equal(t, "closed", stats.State)
	assert.True(t, stats.IsHealthy)
}
