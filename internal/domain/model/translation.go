// Package model defines the domain entities of the translation service.
package model

import "time"

// Locale is a language/region a translation can be written for, e.g. "en_US".
type Locale struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TranslationKey identifies a translatable string. Key is not unique at the data layer.
type TranslationKey struct {
	ID          int64     `json:"id"`
	Key         string    `json:"key"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TranslationTag groups keys for organization.
type TranslationTag struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TranslationValue is the text of one key in one locale.
// There is at most one value per (TranslationKeyID, LocaleID).
type TranslationValue struct {
	ID               int64     `json:"id"`
	TranslationKeyID int64     `json:"translation_key_id"`
	LocaleID         int64     `json:"locale_id"`
	Value            string    `json:"value"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relations are only populated when explicitly loaded.
	Key    *TranslationKey  `json:"key,omitempty"`
	Locale *Locale          `json:"locale,omitempty"`
	Tags   []TranslationTag `json:"tags,omitempty"`
}

// TranslationRevision is an immutable record of one edit to a TranslationValue.
type TranslationRevision struct {
	ID                 int64     `json:"id"`
	TranslationValueID int64     `json:"translation_value_id"`
	Old                *string   `json:"old"`
	New                string    `json:"new"`
	UserID             int64     `json:"user_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TranslationRow is a flattened search result: a value joined with its key and locale.
type TranslationRow struct {
	ID               int64     `json:"id"`
	TranslationKeyID int64     `json:"translation_key_id"`
	LocaleID         int64     `json:"locale_id"`
	Value            string    `json:"value"`
	Key              string    `json:"key"`
	KeyDescription   *string   `json:"key_description"`
	LocaleCode       string    `json:"locale_code"`
	LocaleName       string    `json:"locale_name"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TranslationFilters narrows a search. Empty fields are ignored; the rest are ANDed.
type TranslationFilters struct {
	Tag     string
	Key     string
	Content string
	Locale  string
}

// ExportStats summarizes the values stored for one locale.
type ExportStats struct {
	TotalTranslations int64   `json:"total_translations"`
	UniqueKeys        int64   `json:"unique_keys"`
	AvgValueLength    float64 `json:"avg_value_length"`
}

// Export is the assembled payload of a locale export.
type Export struct {
	Data          map[string]string `json:"data"`
	CurrentLocale string            `json:"current_locale"`
	OtherLocales  map[string]string `json:"other_locales"`
}
