//go:build integration

package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/translation-service/internal/domain/dto"
)

func TestIntegration_AuthFlow(t *testing.T) {
	s := newIntegrationStack(t)
	registered := s.register(t, "Flow@Example.com")
	assert.Equal(t, "flow@example.com", registered.User.Email)

	t.Run("duplicate registration", func(t *testing.T) {
		w := s.request(t, http.MethodPost, "/api/auth/register",
			`{"email":"flow@example.com","password":"secret123","name":"Again"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := s.request(t, http.MethodPost, "/api/auth/login", `{"email":"flow@example.com","password":"not-it"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	w := s.request(t, http.MethodPost, "/api/auth/login", `{"email":"flow@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login dto.LoginResponse
	decodeInto(t, decode(t, w).Data, &login)

	w = s.request(t, http.MethodGet, "/api/auth/user", "", bearer(login.Token)...)
	require.Equal(t, http.StatusOK, w.Code)
	var me dto.UserResponse
	decodeInto(t, decode(t, w).Data, &me)
	assert.Equal(t, registered.User.ID, me.ID)

	// Refreshing rotates the refresh token: the old one is spent.
	w = s.request(t, http.MethodPost, "/api/auth/refresh", "", RefreshTokenHeader, login.RefreshToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var refreshed dto.LoginResponse
	decodeInto(t, decode(t, w).Data, &refreshed)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	w = s.request(t, http.MethodPost, "/api/auth/refresh", "", RefreshTokenHeader, login.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Logout revokes the access token and the refresh token sent with it.
	w = s.request(t, http.MethodPost, "/api/auth/logout", "",
		append(bearer(refreshed.Token), RefreshTokenHeader, refreshed.RefreshToken)...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.request(t, http.MethodGet, "/api/translations", "", bearer(refreshed.Token)...)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.request(t, http.MethodPost, "/api/auth/refresh", "", RefreshTokenHeader, refreshed.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Other sessions are untouched.
	w = s.request(t, http.MethodGet, "/api/translations", "", bearer(registered.Token)...)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIntegration_LogoutEverywhere(t *testing.T) {
	s := newIntegrationStack(t)
	first := s.register(t, "everywhere@example.com")

	w := s.request(t, http.MethodPost, "/api/auth/login", `{"email":"everywhere@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var second dto.LoginResponse
	decodeInto(t, decode(t, w).Data, &second)

	// Without a refresh token every refresh token of the user is dropped.
	w = s.request(t, http.MethodPost, "/api/auth/logout", "", bearer(second.Token)...)
	require.Equal(t, http.StatusOK, w.Code)

	for _, token := range []string{first.RefreshToken, second.RefreshToken} {
		w = s.request(t, http.MethodPost, "/api/auth/refresh", "", RefreshTokenHeader, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}
