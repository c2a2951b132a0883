// Package dto defines the request and response bodies of the HTTP API.
package dto

import (
	"sort"
	"strings"
)

// ValidationError represents a single field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns "field: message".
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects one message per invalid field.
type ValidationErrors map[string]string

// Add records msg for field unless the field already has a message.
func (v ValidationErrors) Add(field, msg string) {
	if _, ok := v[field]; !ok {
		v[field] = msg
	}
}

// OrNil returns v as an error, or nil when no field failed.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Error joins the field errors in field order.
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + v[f]
	}
	return strings.Join(parts, "; ")
}

// StoreTranslationRequest creates or overwrites the value of a key in a locale.
//
// @Description Create or update a translation value
type StoreTranslationRequest struct {
	Key         string   `json:"key" example:"welcome.title"`
	Locale      string   `json:"locale" example:"en_US"`
	Value       string   `json:"value" example:"Welcome!"`
	Tags        []string `json:"tags,omitempty" example:"web,mobile"`
	Description *string  `json:"description,omitempty" example:"Title on the landing page"`
} // @name StoreTranslationRequest

// Validate checks required fields. Whether the locale exists is checked by the service.
func (r *StoreTranslationRequest) Validate() error {
	errs := ValidationErrors{}
	r.Key = strings.TrimSpace(r.Key)
	r.Locale = strings.TrimSpace(r.Locale)
	if r.Key == "" {
		errs.Add("key", "The key field is required.")
	} else if len(r.Key) > 255 {
		errs.Add("key", "The key may not be greater than 255 characters.")
	}
	if r.Locale == "" {
		errs.Add("locale", "The locale field is required.")
	}
	if r.Value == "" {
		errs.Add("value", "The value field is required.")
	}
	for _, tag := range r.Tags {
		if strings.TrimSpace(tag) == "" {
			errs.Add("tags", "The tags must be non-empty strings.")
			break
		}
	}
	return errs.OrNil()
}

// UpdateTranslationRequest replaces a translation value's text.
//
// @Description Update a translation value
type UpdateTranslationRequest struct {
	Value string `json:"value" example:"Welcome back!"`
} // @name UpdateTranslationRequest

// Validate checks that value is present.
func (r *UpdateTranslationRequest) Validate() error {
	if r.Value == "" {
		return ValidationErrors{"value": "The value field is required."}
	}
	return nil
}

// TranslationSearchQuery holds the search filters and paging parameters.
type TranslationSearchQuery struct {
	Tag     string `form:"tag"`
	Key     string `form:"key"`
	Content string `form:"content"`
	Locale  string `form:"locale"`
	PageQuery
}

// PageQuery holds paging parameters.
type PageQuery struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

const (
	// DefaultPerPage is the page size when per_page is absent.
	DefaultPerPage = 20
	// MaxPerPage caps per_page.
	MaxPerPage = 100
)

// Normalize applies defaults and bounds.
func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
}

// StoreLocaleRequest creates a locale.
//
// @Description Create a locale
type StoreLocaleRequest struct {
	Code string `json:"code" example:"en_US"`
	Name string `json:"name" example:"English (United States)"`
} // @name StoreLocaleRequest

// Validate checks required fields.
func (r *StoreLocaleRequest) Validate() error {
	errs := ValidationErrors{}
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
	if r.Code == "" {
		errs.Add("code", "The code field is required.")
	} else if len(r.Code) > 32 {
		errs.Add("code", "The code may not be greater than 32 characters.")
	}
	if r.Name == "" {
		errs.Add("name", "The name field is required.")
	}
	return errs.OrNil()
}

// UpdateLocaleRequest changes a locale. Absent fields are left unchanged.
//
// @Description Update a locale
type UpdateLocaleRequest struct {
	Code *string `json:"code,omitempty" example:"en_GB"`
	Name *string `json:"name,omitempty" example:"English (United Kingdom)"`
} // @name UpdateLocaleRequest

// Validate checks the fields that are present.
func (r *UpdateLocaleRequest) Validate() error {
	errs := ValidationErrors{}
	if r.Code != nil {
		code := strings.TrimSpace(*r.Code)
		r.Code = &code
		if code == "" {
			errs.Add("code", "The code field must not be empty.")
		} else if len(code) > 32 {
			errs.Add("code", "The code may not be greater than 32 characters.")
		}
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
		if name == "" {
			errs.Add("name", "The name field must not be empty.")
		}
	}
	return errs.OrNil()
}
