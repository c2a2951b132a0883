package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/service"
)

func testTokenPair() *dto.TokenPair {
	return &dto.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 3600}
}

func testUser() *model.User {
	return &model.User{ID: testUserID, Name: "Jane", Email: "jane@example.com", Password: "$2a$10$hash", Active: true}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(*testAPI)
		wantStatus int
	}{
		{
			name: "success",
			body: `{"email":"jane@example.com","password":"secret123"}`,
			setup: func(a *testAPI) {
				a.auth.On("Login", mock.Anything, "jane@example.com", "secret123").
					Return(testTokenPair(), testUser(), nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			body: `{"email":"jane@example.com","password":"wrong-pass"}`,
			setup: func(a *testAPI) {
				a.auth.On("Login", mock.Anything, "jane@example.com", "wrong-pass").
					Return(nil, nil, service.ErrInvalidCredentials).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid email",
			body:       `{"email":"not-an-email","password":"secret123"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "storage failure",
			body: `{"email":"jane@example.com","password":"secret123"}`,
			setup: func(a *testAPI) {
				a.auth.On("Login", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, nil, errors.New("db down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			if tt.setup != nil {
				tt.setup(api)
			}

			// No credentials: login is public.
			w := api.send(t, http.MethodPost, "/api/auth/login", tt.body)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.NotContains(t, w.Body.String(), "$2a$10$hash")
			var resp dto.LoginResponse
			decodeInto(t, decode(t, w).Data, &resp)
			assert.Equal(t, "access", resp.Token)
			assert.Equal(t, "refresh", resp.RefreshToken)
			assert.Equal(t, int64(3600), resp.ExpiresIn)
			assert.Equal(t, "jane@example.com", resp.User.Email)
		})
	}
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		api := newTestAPI(t)
		api.auth.On("Register", mock.Anything, &dto.RegisterRequest{
			Email: "jane@example.com", Password: "secret123", Name: "Jane",
		}).Return(testTokenPair(), testUser(), nil).Once()

		w := api.send(t, http.MethodPost, "/api/auth/register",
			`{"email":"jane@example.com","password":"secret123","name":"Jane"}`)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var resp dto.LoginResponse
		decodeInto(t, decode(t, w).Data, &resp)
		assert.Equal(t, testUserID, resp.User.ID)
	})

	t.Run("email taken", func(t *testing.T) {
		api := newTestAPI(t)
		api.auth.On("Register", mock.Anything, mock.Anything).
			Return(nil, nil, service.ErrUserExists).Once()

		w := api.send(t, http.MethodPost, "/api/auth/register",
			`{"email":"jane@example.com","password":"secret123","name":"Jane"}`)

		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, map[string]string{"email": "The email has already been taken."}, decode(t, w).Details)
	})

	t.Run("short password", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.send(t, http.MethodPost, "/api/auth/register",
			`{"email":"jane@example.com","password":"123","name":"Jane"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	tests := []struct {
		name       string
		headers    []string
		setup      func(*testAPI)
		wantStatus int
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:    "rotated",
			headers: []string{RefreshTokenHeader, "refresh"},
			setup: func(a *testAPI) {
				a.auth.On("RefreshToken", mock.Anything, "refresh").Return(testTokenPair(), testUser(), nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "revoked",
			headers: []string{RefreshTokenHeader, "stale"},
			setup: func(a *testAPI) {
				a.auth.On("RefreshToken", mock.Anything, "stale").Return(nil, nil, service.ErrInvalidToken).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "user gone",
			headers: []string{RefreshTokenHeader, "orphan"},
			setup: func(a *testAPI) {
				a.auth.On("RefreshToken", mock.Anything, "orphan").Return(nil, nil, service.ErrInvalidCredentials).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			if tt.setup != nil {
				tt.setup(api)
			}

			w := api.send(t, http.MethodPost, "/api/auth/refresh", "", tt.headers...)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Invalid or expired token", decode(t, w).Message)
			}
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("bearer session", func(t *testing.T) {
		api := newTestAPI(t)
		api.auth.On("Logout", mock.Anything, testUserToken, "refresh").Return(nil).Once()

		w := api.doAsUser(t, http.MethodPost, "/api/auth/logout", "", RefreshTokenHeader, "refresh")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Logged out successfully.", decode(t, w).Message)
	})

	t.Run("without refresh token", func(t *testing.T) {
		api := newTestAPI(t)
		api.auth.On("Logout", mock.Anything, testUserToken, "").Return(nil).Once()

		w := api.doAsUser(t, http.MethodPost, "/api/auth/logout", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("api key has no session", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do(t, http.MethodPost, "/api/auth/logout", "")

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Authentication token is required", decode(t, w).Message)
	})
}

func TestAuthHandler_CurrentUser(t *testing.T) {
	t.Run("bearer", func(t *testing.T) {
		api := newTestAPI(t)
		api.auth.On("GetUserByID", mock.Anything, testUserID).Return(testUser(), nil).Once()

		w := api.doAsUser(t, http.MethodGet, "/api/auth/user", "")

		require.Equal(t, http.StatusOK, w.Code)
		var user dto.UserResponse
		decodeInto(t, decode(t, w).Data, &user)
		assert.Equal(t, "Jane", user.Name)
	})

	t.Run("deleted user", func(t *testing.T) {
		api := newTestAPI(t)
		api.auth.On("GetUserByID", mock.Anything, testUserID).Return(nil, service.ErrInvalidCredentials).Once()

		w := api.doAsUser(t, http.MethodGet, "/api/auth/user", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("api key", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do(t, http.MethodGet, "/api/auth/user", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
