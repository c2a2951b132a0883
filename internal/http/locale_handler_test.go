package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/service"
)

func TestLocaleHandler_List(t *testing.T) {
	api := newTestAPI(t)
	locales := []model.Locale{{ID: 1, Code: "en_US", Name: "English"}, {ID: 2, Code: "fr_FR", Name: "French"}}
	api.locales.On("List", mock.Anything, 1, dto.DefaultPerPage).
		Return(&service.Page[model.Locale]{Items: locales, Total: 2, Page: 1, PerPage: dto.DefaultPerPage}, nil).Once()

	w := api.do(t, http.MethodGet, "/api/locales", "")

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	var got []model.Locale
	decodeInto(t, env.Data, &got)
	assert.Equal(t, locales, got)
	var meta dto.PageMeta
	decodeInto(t, env.Meta, &meta)
	assert.Equal(t, int64(2), meta.Total)
	assert.Equal(t, 1, meta.LastPage)
}

func TestLocaleHandler_Show(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setup      func(*testAPI)
		wantStatus int
	}{
		{
			name: "found",
			path: "/api/locales/1",
			setup: func(a *testAPI) {
				a.locales.On("Get", mock.Anything, int64(1)).Return(&model.Locale{ID: 1, Code: "en_US"}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "missing",
			path: "/api/locales/9",
			setup: func(a *testAPI) {
				a.locales.On("Get", mock.Anything, int64(9)).
					Return(nil, &service.NotFoundError{Resource: "locale", Key: "9"}).Once()
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid id",
			path:       "/api/locales/0",
			wantStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			if tt.setup != nil {
				tt.setup(api)
			}

			w := api.do(t, http.MethodGet, tt.path, "")

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusNotFound {
				assert.Equal(t, "Locale not found", decode(t, w).Message)
			}
		})
	}
}

func TestLocaleHandler_Store(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		setup       func(*testAPI)
		wantStatus  int
		wantDetails map[string]string
	}{
		{
			name: "created",
			body: `{"code":" de_DE ","name":"German"}`,
			setup: func(a *testAPI) {
				a.locales.On("Create", mock.Anything, &dto.StoreLocaleRequest{Code: "de_DE", Name: "German"}).
					Return(&model.Locale{ID: 4, Code: "de_DE", Name: "German"}, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:        "missing name",
			body:        `{"code":"de_DE"}`,
			wantStatus:  http.StatusUnprocessableEntity,
			wantDetails: map[string]string{"name": "The name field is required."},
		},
		{
			name: "invalid code",
			body: `{"code":"not a code","name":"Broken"}`,
			setup: func(a *testAPI) {
				a.locales.On("Create", mock.Anything, mock.Anything).
					Return(nil, service.NewValidationError("code", "The code must be a valid locale code.")).Once()
			},
			wantStatus:  http.StatusUnprocessableEntity,
			wantDetails: map[string]string{"code": "The code must be a valid locale code."},
		},
		{
			name: "duplicate code",
			body: `{"code":"en_US","name":"English"}`,
			setup: func(a *testAPI) {
				a.locales.On("Create", mock.Anything, mock.Anything).
					Return(nil, &service.ConflictError{Resource: "locale", Field: "code", Value: "en_US"}).Once()
			},
			wantStatus:  http.StatusConflict,
			wantDetails: map[string]string{"code": "The code has already been taken."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			if tt.setup != nil {
				tt.setup(api)
			}

			w := api.do(t, http.MethodPost, "/api/locales", tt.body)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			env := decode(t, w)
			assert.Equal(t, tt.wantDetails, env.Details)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, "/api/locales/4", w.Header().Get("Location"))
				var locale model.Locale
				decodeInto(t, env.Data, &locale)
				assert.Equal(t, "de_DE", locale.Code)
			}
		})
	}
}

func TestLocaleHandler_Update(t *testing.T) {
	api := newTestAPI(t)
	api.locales.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(r *dto.UpdateLocaleRequest) bool {
		return r.Code == nil && r.Name != nil && *r.Name == "English (US)"
	})).Return(&model.Locale{ID: 1, Code: "en_US", Name: "English (US)"}, nil).Once()

	w := api.do(t, http.MethodPut, "/api/locales/1", `{"name":"English (US)"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var locale model.Locale
	decodeInto(t, decode(t, w).Data, &locale)
	assert.Equal(t, "English (US)", locale.Name)

	w = api.do(t, http.MethodPut, "/api/locales/1", `{"name":"  "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLocaleHandler_Destroy(t *testing.T) {
	api := newTestAPI(t)
	api.locales.On("Delete", mock.Anything, int64(2)).Return(nil).Once()
	api.locales.On("Delete", mock.Anything, int64(3)).
		Return(&service.NotFoundError{Resource: "locale", Key: "3"}).Once()

	w := api.do(t, http.MethodDelete, "/api/locales/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Locale deleted successfully", decode(t, w).Message)

	w = api.do(t, http.MethodDelete, "/api/locales/3", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
