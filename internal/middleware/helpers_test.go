package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/translation-service/internal/domain/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// recordingLogs is a LoggingService that keeps what it is given.
type recordingLogs struct {
	mu      sync.Mutex
	entries []*model.LogEntry
	batches int
	err     error
}

func (r *recordingLogs) CreateLog(_ context.Context, entry *model.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *recordingLogs) CreateLogs(_ context.Context, entries []*model.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.batches++
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *recordingLogs) QueryLogs(context.Context, model.LogQueryOptions) ([]model.LogEntry, error) {
	return nil, nil
}

func (r *recordingLogs) CountLogs(context.Context, model.LogQueryOptions) (int64, error) {
	return 0, nil
}

func (r *recordingLogs) snapshot() []*model.LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.LogEntry(nil), r.entries...)
}

func (r *recordingLogs) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func serve(t *testing.T, router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
