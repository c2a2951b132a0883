package http

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/translation-service/internal/circuitbreaker"
	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/service"
)

func TestResponseBuilder_HandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantDetails map[string]string
	}{
		{
			name:        "field validation",
			err:         dto.ValidationErrors{"key": "The key field is required."},
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    dto.ErrCodeValidation,
			wantDetails: map[string]string{"key": "The key field is required."},
		},
		{
			name:        "service validation",
			err:         service.NewValidationError("code", "The code must be a valid locale code."),
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    dto.ErrCodeValidation,
			wantDetails: map[string]string{"code": "The code must be a valid locale code."},
		},
		{
			name:        "translation not found",
			err:         fmt.Errorf("find: %w", service.ErrTranslationNotFound),
			wantStatus:  http.StatusNotFound,
			wantCode:    dto.ErrCodeNotFound,
			wantMessage: "Translation not found",
		},
		{
			name:        "no locales",
			err:         service.ErrNoLocales,
			wantStatus:  http.StatusNotFound,
			wantCode:    dto.ErrCodeNotFound,
			wantMessage: "No locales found.",
		},
		{
			name:        "conflict",
			err:         &service.ConflictError{Resource: "locale", Field: "code", Value: "en_US"},
			wantStatus:  http.StatusConflict,
			wantDetails: map[string]string{"code": "The code has already been taken."},
		},
		{
			name:        "bad credentials",
			err:         service.ErrInvalidCredentials,
			wantStatus:  http.StatusUnauthorized,
			wantCode:    dto.ErrCodeUnauthorized,
			wantMessage: "Invalid credentials",
		},
		{
			name:       "blacklisted token",
			err:        service.ErrTokenBlacklisted,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "deadline",
			err:        fmt.Errorf("search: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "circuit open",
			err:        circuitbreaker.ErrCircuitOpen,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   dto.ErrCodeUnavailable,
		},
		{
			name:       "storage",
			err:        &service.StorageError{Op: "store translation", Err: errors.New("disk full")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			NewResponseBuilder(c).HandleError(tt.err)

			require.Equal(t, tt.wantStatus, w.Code)
			assert.True(t, c.IsAborted())
			require.Len(t, c.Errors, 1)
			assert.Equal(t, tt.err, c.Errors[0].Err)

			env := decode(t, w)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, env.Error)
			}
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, env.Message)
			}
			assert.Equal(t, tt.wantDetails, env.Details)
		})
	}
}

func TestPaginated_Links(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		configure func(*http.Request)
		page      *service.Page[string]
		wantMeta  dto.PageMeta
		wantPrev  string
		wantNext  string
		wantFirst string
	}{
		{
			name:   "middle page keeps filters",
			target: "/api/translations?locale=en_US&page=2&per_page=2",
			page:   &service.Page[string]{Items: []string{"c", "d"}, Total: 5, Page: 2, PerPage: 2},
			wantMeta: dto.PageMeta{
				CurrentPage: 2, LastPage: 3, PerPage: 2, Total: 5,
				From: intPtr(3), To: intPtr(4),
			},
			wantFirst: "http://example.com/api/translations?locale=en_US&page=1&per_page=2",
			wantPrev:  "http://example.com/api/translations?locale=en_US&page=1&per_page=2",
			wantNext:  "http://example.com/api/translations?locale=en_US&page=3&per_page=2",
		},
		{
			name:   "forwarded https",
			target: "/api/locales",
			configure: func(r *http.Request) {
				r.Header.Set("X-Forwarded-Proto", "https")
			},
			page:      &service.Page[string]{Items: []string{"a"}, Total: 1, Page: 1, PerPage: 20},
			wantMeta:  dto.PageMeta{CurrentPage: 1, LastPage: 1, PerPage: 20, Total: 1, From: intPtr(1), To: intPtr(1)},
			wantFirst: "https://example.com/api/locales?page=1",
		},
		{
			name:   "tls",
			target: "/api/locales",
			configure: func(r *http.Request) {
				r.TLS = &tls.ConnectionState{}
			},
			page:      &service.Page[string]{Total: 0, Page: 1, PerPage: 20},
			wantMeta:  dto.PageMeta{CurrentPage: 1, LastPage: 1, PerPage: 20},
			wantFirst: "https://example.com/api/locales?page=1",
		},
		{
			name:      "past the end",
			target:    "/api/users?page=9",
			page:      &service.Page[string]{Total: 3, Page: 9, PerPage: 2},
			wantMeta:  dto.PageMeta{CurrentPage: 9, LastPage: 2, PerPage: 2, Total: 3},
			wantFirst: "http://example.com/api/users?page=1",
			wantPrev:  "http://example.com/api/users?page=2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.configure != nil {
				tt.configure(c.Request)
			}

			Paginated(NewResponseBuilder(c), tt.page)

			require.Equal(t, http.StatusOK, w.Code)
			env := decode(t, w)
			var items []string
			decodeInto(t, env.Data, &items)
			require.NotNil(t, items, "empty pages encode as []")
			assert.Len(t, items, len(tt.page.Items))

			var meta dto.PageMeta
			decodeInto(t, env.Meta, &meta)
			assert.Equal(t, tt.wantMeta, meta)

			require.NotNil(t, env.Links)
			assert.Equal(t, tt.wantFirst, env.Links.First)
			assertLink(t, tt.wantPrev, env.Links.Prev)
			assertLink(t, tt.wantNext, env.Links.Next)
		})
	}
}

func assertLink(t *testing.T, want string, got *string) {
	t.Helper()
	if want == "" {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func intPtr(v int) *int { return &v }

func TestRequestURL(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/translations/export?locale=fr_FR", nil)
	r.Host = "translations.example.org"

	assert.Equal(t, "http://translations.example.org/api/translations/export", requestURL(r))

	r.Header.Set("X-Forwarded-Proto", "gopher")
	assert.Equal(t, "http://translations.example.org/api/translations/export", requestURL(r))
}
