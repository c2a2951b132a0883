package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/repository"
	"github.com/guttosm/translation-service/internal/service"
	"github.com/guttosm/translation-service/internal/service/cache"
	"github.com/guttosm/translation-service/internal/storage"
	"github.com/guttosm/translation-service/internal/testutil"
)

type env struct {
	db           *storage.DB
	cache        *cache.ShardedCache[service.ExportSnapshot]
	translations *service.TranslationServiceImpl
	locales      *service.LocaleServiceImpl
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	return newEnvWithTransactor(t, db, repository.NewTransactor(db))
}

func newEnvWithTransactor(t *testing.T, db *storage.DB, tx repository.Transactor) *env {
	t.Helper()
	caps := db.Capabilities()
	exports := cache.NewShardedCache[service.ExportSnapshot](cache.Options{Name: "exports", Capacity: 16, Shards: 2})
	t.Cleanup(exports.Stop)

	localeRepo := repository.NewLocaleRepository(db, caps)
	return &env{
		db:    db,
		cache: exports,
		translations: service.NewTranslationService(
			tx,
			repository.NewTranslationRepository(db, caps),
			localeRepo,
			repository.NewRevisionRepository(db, caps),
			exports,
		),
		locales: service.NewLocaleService(localeRepo, exports),
	}
}

func (e *env) locale(t *testing.T, code string) *model.Locale {
	t.Helper()
	l, err := e.locales.Create(context.Background(), &dto.StoreLocaleRequest{Code: code, Name: code})
	require.NoError(t, err)
	return l
}

func (e *env) store(t *testing.T, key, locale, value string, tags ...string) *model.TranslationValue {
	t.Helper()
	v, err := e.translations.Store(context.Background(), &dto.StoreTranslationRequest{Key: key, Locale: locale, Value: value, Tags: tags})
	require.NoError(t, err)
	return v
}

// flakyTransactor fails the first n transactions with err before delegating.
type flakyTransactor struct {
	repository.Transactor
	failures int
	err      error
	calls    int
}

func (f *flakyTransactor) WithinTransaction(ctx context.Context, fn func(repository.UnitOfWork) error) error {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return f.err
	}
	return f.Transactor.WithinTransaction(ctx, fn)
}

var errUniqueViolation = errors.New("UNIQUE constraint failed: translation_values.translation_key_id, translation_values.locale_id")

func tagNames(tags []model.TranslationTag) []string {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return names
}
