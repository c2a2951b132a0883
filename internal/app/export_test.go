//go:build !integration

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/service"
	"github.com/guttosm/translation-service/internal/testutil"
)

func TestWriteExport(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	db, services := testComponents(t, cfg)
	require.NoError(t, Seed(ctx, db, services.Auth, cfg.Seed, SeedOptions{}))
	_, err := services.Translations.Store(ctx, &dto.StoreTranslationRequest{
		Key: "checkout.pay", Locale: "fr_FR", Value: "Payer <maintenant>",
	})
	require.NoError(t, err)

	want := map[string]string{"checkout.pay": "Payer <maintenant>"}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		code, err := WriteExport(ctx, services.Translations, "fr_FR", ExportFormatJSON, &buf)
		require.NoError(t, err)
		assert.Equal(t, "fr_FR", code)
		assert.Contains(t, buf.String(), "<maintenant>")

		var got map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, want, got)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := WriteExport(ctx, services.Translations, "fr_FR", ExportFormatYAML, &buf)
		require.NoError(t, err)

		var got map[string]string
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, want, got)
	})

	t.Run("first locale by default", func(t *testing.T) {
		var buf bytes.Buffer
		code, err := WriteExport(ctx, services.Translations, "", ExportFormatJSON, &buf)
		require.NoError(t, err)
		assert.Equal(t, "en_US", code)
		assert.JSONEq(t, `{}`, buf.String())
	})

	t.Run("locale without values", func(t *testing.T) {
		testutil.InsertLocale(t, db.DB, "de_DE", "German (Germany)")

		var buf bytes.Buffer
		code, err := WriteExport(ctx, services.Translations, "de_DE", ExportFormatYAML, &buf)
		require.NoError(t, err)
		assert.Equal(t, "de_DE", code)

		var got map[string]string
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Empty(t, got)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := WriteExport(ctx, services.Translations, "fr_FR", "xml", &bytes.Buffer{})
		assert.ErrorContains(t, err, "unsupported export format")
	})
}

func TestWriteExport_NoLocales(t *testing.T) {
	_, services := testComponents(t, testConfig(t))

	_, err := WriteExport(context.Background(), services.Translations, "", ExportFormatJSON, &bytes.Buffer{})

	assert.ErrorIs(t, err, service.ErrNoLocales)
}
