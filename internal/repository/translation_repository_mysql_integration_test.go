//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/storage"
	"github.com/guttosm/translation-service/internal/testutil"
)

func TestTranslationRepository_MySQL(t *testing.T) {
	ctx := context.Background()
	f := newFixtureOn(testutil.NewMySQLDB(t, storage.Config{}))
	require.True(t, f.db.Capabilities().SupportsFullTextSearch)
	require.True(t, f.db.Capabilities().SupportsJSONAggregation)

	en := f.locale(t, "en_US")
	f.locale(t, "fr_FR")
	f.value(t, "welcome.msg", en, "Welcome to the application", "ui")
	f.value(t, "bye.msg", en, "Goodbye and thanks", "ui")
	f.value(t, "discount.50%", en, "Half price", "promo")

	t.Run("full text content search", func(t *testing.T) {
		rows, total, err := f.translations.Search(ctx, model.TranslationFilters{Tag: "ui", Content: "application"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, []string{"welcome.msg"}, rowKeys(rows))
	})

	t.Run("short word content search", func(t *testing.T) {
		hi := f.value(t, "greeting.msg", f.locale(t, "en_GB"), "Hi", "ui")
		rows, total, err := f.translations.Search(ctx, model.TranslationFilters{Tag: "ui", Content: "Hi"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, hi.ID, rows[0].ID)
	})

	t.Run("partial word content search", func(t *testing.T) {
		rows, _, err := f.translations.Search(ctx, model.TranslationFilters{Content: "Welc"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"welcome.msg"}, rowKeys(rows))

		rows, _, err = f.translations.Search(ctx, model.TranslationFilters{Content: "ppli"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"welcome.msg"}, rowKeys(rows))
	})

	t.Run("words in any order", func(t *testing.T) {
		rows, _, err := f.translations.Search(ctx, model.TranslationFilters{Content: "thanks Goodbye"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"bye.msg"}, rowKeys(rows))
	})

	t.Run("escaped key search", func(t *testing.T) {
		rows, _, err := f.translations.Search(ctx, model.TranslationFilters{Key: "50%"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"discount.50%"}, rowKeys(rows))
	})

	t.Run("aggregated export", func(t *testing.T) {
		data, err := f.translations.ExportByLocale(ctx, "en")
		require.NoError(t, err)
		assert.Len(t, data, 3)
		assert.Equal(t, "Half price", data["discount.50%"])

		data, err = f.translations.ExportByLocale(ctx, "fr_FR")
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := f.translations.GetExportStats(ctx, "en_US")
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.TotalTranslations)
		assert.Equal(t, int64(3), stats.UniqueKeys)
	})

	t.Run("unique violation is detected", func(t *testing.T) {
		err := f.locales.Create(ctx, &model.Locale{Code: "en_US", Name: "again"})
		require.Error(t, err)
		assert.True(t, storage.IsUniqueViolation(err))
	})
}

func TestTranslationRepository_MySQLChunkedExportMatchesAggregated(t *testing.T) {
	ctx := context.Background()

	seed := func(f *fixture) {
		en := f.locale(t, "en_US")
		for i := 0; i < 25; i++ {
			f.value(t, fmt.Sprintf("key.%02d", i), en, fmt.Sprintf("valor %d ✓", i))
		}
	}

	agg := newFixtureOn(testutil.NewMySQLDB(t, storage.Config{}))
	seed(agg)
	chunked := newFixtureOn(testutil.NewMySQLDB(t, storage.Config{DisableJSONAggregation: true}))
	seed(chunked)

	aggregated, err := agg.translations.ExportByLocale(ctx, "en_US")
	require.NoError(t, err)
	require.Len(t, aggregated, 25)

	chunkedData, err := chunked.translations.WithChunkSize(7).ExportByLocale(ctx, "en_US")
	require.NoError(t, err)
	assert.Equal(t, aggregated, chunkedData)
}

func TestTranslationRepository_MySQLKeysAndTagsAreCaseSensitive(t *testing.T) {
	ctx := context.Background()
	f := newFixtureOn(testutil.NewMySQLDB(t, storage.Config{}))
	en := f.locale(t, "en_US")

	lower := f.value(t, "welcome", en, "Hi", "ui")

	key, err := f.keys.FirstByKey(ctx, "Welcome")
	require.NoError(t, err)
	assert.Nil(t, key)

	tags, err := f.tags.FindByNames(ctx, []string{"UI"})
	require.NoError(t, err)
	assert.Empty(t, tags)

	upper := f.value(t, "Welcome", en, "Hello", "UI")
	assert.NotEqual(t, lower.TranslationKeyID, upper.TranslationKeyID)

	data, err := f.translations.ExportByLocale(ctx, "en_US")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"welcome": "Hi", "Welcome": "Hello"}, data)

	rows, _, err := f.translations.Search(ctx, model.TranslationFilters{Tag: "UI"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Welcome"}, rowKeys(rows))
}
