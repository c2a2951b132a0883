package metrics

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.GET("/translations/:id", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/error", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "error")
	})

	tests := []struct {
		name           string
		path           string
		route          string
		expectedStatus int
	}{
		{
			name:           "labels by route template",
			path:           "/translations/42",
			route:          "/translations/:id",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "records error status",
			path:           "/error",
			route:          "/error",
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "unmatched paths share one label",
			path:           "/nope/123",
			route:          "unmatched",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodGet, tt.route, strconv.Itoa(tt.expectedStatus)))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			after := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodGet, tt.route, strconv.Itoa(tt.expectedStatus)))
			assert.Equal(t, before+1, after)
		})
	}
}

func TestRecordExport(t *testing.T) {
	before := testutil.ToFloat64(ExportsTotal.WithLabelValues("success", "storage"))
	RecordExport(20*time.Millisecond, 150, "success", "storage")
	RecordExport(time.Millisecond, 0, "error", "storage")

	assert.Equal(t, before+1, testutil.ToFloat64(ExportsTotal.WithLabelValues("success", "storage")))
}

func TestRecordStoreRetry(t *testing.T) {
	before := testutil.ToFloat64(StoreRetriesTotal)
	RecordStoreRetry()
	assert.Equal(t, before+1, testutil.ToFloat64(StoreRetriesTotal))
}

func TestRecordCacheOperation(t *testing.T) {
	before := testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("export", "get", "hit"))
	RecordCacheOperation("export", "get", "hit")
	RecordCacheOperation("export", "get", "miss")

	assert.Equal(t, before+1, testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("export", "get", "hit")))
}

func TestUpdateCacheMetrics(t *testing.T) {
	UpdateCacheMetrics("export", 50, 100)
	assert.Equal(t, float64(50), testutil.ToFloat64(CacheSize.WithLabelValues("export")))
	assert.Equal(t, float64(100), testutil.ToFloat64(CacheCapacity.WithLabelValues("export")))
}

func TestSetCircuitBreakerState(t *testing.T) {
	SetCircuitBreakerState("mongodb", 1)
	assert.Equal(t, float64(1), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("mongodb")))
}
