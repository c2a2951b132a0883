//go:build !integration

package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestInitializeRouter(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.SwaggerEnabled = true
	cfg.Server.SwaggerUser = "docs"
	cfg.Server.SwaggerPass = "secret"
	cfg.Server.CORSOrigins = []string{"https://app.example.com"}
	db, services := testComponents(t, cfg)

	components := InitializeRouter(db, services, nil, cfg)

	require.NotNil(t, components.HealthHandler)
	assert.NotNil(t, components.Handlers.Translations)
	assert.NotNil(t, components.Handlers.Locales)
	assert.NotNil(t, components.Handlers.Users)
	assert.Nil(t, components.Handlers.Logs, "no log store configured")

	rc := components.Config
	assert.Equal(t, 100, rc.RateLimit)
	assert.Equal(t, time.Minute, rc.RateWindow)
	assert.Equal(t, 5*time.Second, rc.RequestTimeout)
	assert.Equal(t, map[string]bool{"cli-key": true}, rc.APIKeys)
	assert.Equal(t, []string{"https://app.example.com"}, rc.CORSOrigins)
	assert.True(t, rc.EnableIdempotency)
	assert.True(t, rc.SwaggerEnabled)
	assert.Equal(t, "docs", rc.SwaggerUser)
	assert.Nil(t, rc.LoggingService)
	assert.NotNil(t, rc.AuthService)
	assert.NotNil(t, rc.CacheRecorder)
}

func TestRouterComponents_Build(t *testing.T) {
	cfg := testConfig(t)
	db, services := testComponents(t, cfg)
	router := InitializeRouter(db, services, nil, cfg).Build()
	t.Cleanup(router.Close)

	tests := []struct {
		name       string
		path       string
		header     []string
		wantStatus int
	}{
		{name: "ready", path: "/readyz", wantStatus: http.StatusOK},
		{name: "api key", path: "/api/locales", header: []string{"X-API-Key", "cli-key"}, wantStatus: http.StatusOK},
		{name: "no credentials", path: "/api/locales", wantStatus: http.StatusUnauthorized},
		{name: "no log store", path: "/api/logs", header: []string{"X-API-Key", "cli-key"}, wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if len(tt.header) == 2 {
				req.Header.Set(tt.header[0], tt.header[1])
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}
