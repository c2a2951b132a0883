package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/storage"
	"github.com/guttosm/translation-service/internal/testutil"
)

type fixture struct {
	db           *storage.DB
	keys         *TranslationKeyRepository
	tags         *TranslationTagRepository
	locales      *LocaleRepository
	translations *TranslationRepository
	revisions    *RevisionRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithConfig(t, storage.Config{})
}

func newFixtureWithConfig(t *testing.T, cfg storage.Config) *fixture {
	t.Helper()
	return newFixtureOn(testutil.NewSQLiteDBWithConfig(t, cfg))
}

func newFixtureOn(db *storage.DB) *fixture {
	caps := db.Capabilities()
	return &fixture{
		db:           db,
		keys:         NewTranslationKeyRepository(db, caps),
		tags:         NewTranslationTagRepository(db, caps),
		locales:      NewLocaleRepository(db, caps),
		translations: NewTranslationRepository(db, caps),
		revisions:    NewRevisionRepository(db, caps),
	}
}

func (f *fixture) locale(t *testing.T, code string) model.Locale {
	t.Helper()
	l := &model.Locale{Code: code, Name: code}
	require.NoError(t, f.locales.Create(context.Background(), l))
	return *l
}

// value stores key (reusing an existing key with the same string) in locale with tags.
func (f *fixture) value(t *testing.T, key string, locale model.Locale, text string, tags ...string) model.TranslationValue {
	t.Helper()
	ctx := context.Background()

	k, err := f.keys.FirstByKey(ctx, key)
	require.NoError(t, err)
	if k == nil {
		k = &model.TranslationKey{Key: key}
		require.NoError(t, f.keys.Create(ctx, k))
	}

	if len(tags) > 0 {
		existing, err := f.tags.FindByNames(ctx, tags)
		require.NoError(t, err)
		byName := make(map[string]int64, len(existing))
		for _, tag := range existing {
			byName[tag.Name] = tag.ID
		}
		ids := make([]int64, 0, len(tags))
		for _, name := range tags {
			id, ok := byName[name]
			if !ok {
				tag := &model.TranslationTag{Name: name}
				require.NoError(t, f.tags.Create(ctx, tag))
				id = tag.ID
			}
			ids = append(ids, id)
		}
		require.NoError(t, f.keys.AttachTags(ctx, k.ID, ids))
	}

	v := &model.TranslationValue{TranslationKeyID: k.ID, LocaleID: locale.ID, Value: text}
	require.NoError(t, f.translations.Create(ctx, v))
	return *v
}

func rowKeys(rows []model.TranslationRow) []string {
	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = r.Key
	}
	return keys
}
