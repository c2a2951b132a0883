package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompression(t *testing.T) {
	payload := strings.Repeat(`{"welcome":"Welcome!"}`, 200)

	router := gin.New()
	router.Use(Compression())
	router.GET("/api/translations/export", func(c *gin.Context) { c.String(http.StatusOK, payload) })
	router.GET("/metrics", func(c *gin.Context) { c.String(http.StatusOK, payload) })

	tests := []struct {
		name         string
		path         string
		acceptGzip   bool
		wantEncoding string
	}{
		{name: "gzip accepted", path: "/api/translations/export", acceptGzip: true, wantEncoding: "gzip"},
		{name: "gzip not accepted", path: "/api/translations/export"},
		{name: "metrics excluded", path: "/metrics", acceptGzip: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.acceptGzip {
				req.Header.Set("Accept-Encoding", "gzip")
			}
			w := serve(t, router, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantEncoding, w.Header().Get("Content-Encoding"))

			body := w.Body.Bytes()
			if tt.wantEncoding == "gzip" {
				zr, err := gzip.NewReader(w.Body)
				require.NoError(t, err)
				body, err = io.ReadAll(zr)
				require.NoError(t, err)
			}
			assert.Equal(t, payload, string(body))
		})
	}
}
