package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/guttosm/translation-service/internal/service"
)

// Export formats supported by WriteExport.
const (
	ExportFormatJSON = "json"
	ExportFormatYAML = "yaml"
)

// WriteExport writes the key/value map of localeCode to w. An empty localeCode exports the
// first locale. It returns the code of the exported locale.
func WriteExport(ctx context.Context, translations service.TranslationService, localeCode, format string, w io.Writer) (string, error) {
	if format != ExportFormatJSON && format != ExportFormatYAML {
		return "", fmt.Errorf("unsupported export format %q", format)
	}

	export, err := translations.ExportTranslations(ctx, localeCode, "")
	if err != nil {
		return "", err
	}

	switch format {
	case ExportFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(export.Data); err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(export.Data); err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
	}
	return export.CurrentLocale, nil
}
