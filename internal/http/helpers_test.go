package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testAPIKey    = "test-key"
	testUserToken = "user-token"
	testUserID    = int64(7)
)

// testAPI is the full router wired to service mocks.
type testAPI struct {
	translations *mocks.MockTranslationService
	locales      *mocks.MockLocaleService
	users        *mocks.MockUserService
	auth         *mocks.MockAuthService
	logs         *mocks.MockLoggingService
	router       *Router
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	api := &testAPI{
		translations: new(mocks.MockTranslationService),
		locales:      new(mocks.MockLocaleService),
		users:        new(mocks.MockUserService),
		auth:         new(mocks.MockAuthService),
		logs:         new(mocks.MockLoggingService),
	}
	api.auth.On("ValidateToken", mock.Anything, testUserToken).
		Return(&dto.Claims{UserID: testUserID, Email: "jane@example.com", Name: "Jane"}, nil).Maybe()

	api.router = NewRouter(Handlers{
		Translations: NewTranslationHandler(api.translations),
		Locales:      NewLocaleHandler(api.locales),
		Users:        NewUserHandler(api.users),
		Logs:         NewLogHandler(api.logs),
	}, NewHealthHandler(), RouterConfig{
		APIKeys:     map[string]bool{testAPIKey: true},
		AuthService: api.auth,
	})

	t.Cleanup(func() {
		api.router.Close()
		api.translations.AssertExpectations(t)
		api.locales.AssertExpectations(t)
		api.users.AssertExpectations(t)
		api.auth.AssertExpectations(t)
		api.logs.AssertExpectations(t)
	})
	return api
}

// do sends a request authenticated with the API key.
func (a *testAPI) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	return a.send(t, method, path, body, append([]string{"X-API-Key", testAPIKey}, headers...)...)
}

// doAsUser sends a request carrying the bearer token of testUserID.
func (a *testAPI) doAsUser(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	return a.send(t, method, path, body, append([]string{"Authorization", "Bearer " + testUserToken}, headers...)...)
}

// send takes headers as name/value pairs.
func (a *testAPI) send(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	require.Zero(t, len(headers)%2, "headers come in pairs")

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// envelope decodes both success and error bodies.
type envelope struct {
	Data      json.RawMessage   `json:"data"`
	Message   string            `json:"message"`
	Meta      json.RawMessage   `json:"meta"`
	Links     *dto.PageLinks    `json:"links"`
	Error     string            `json:"error"`
	Details   map[string]string `json:"details"`
	RequestID string            `json:"request_id"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeInto(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), string(raw))
}

func int64Ptr(v int64) *int64 { return &v }

var _ http.Handler = (*Router)(nil)
