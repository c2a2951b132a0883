package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"

	// Context keys set by JWTAuth.
	UserIDKey     = "user_id"
	UserEmailKey  = "user_email"
	UserNameKey   = "user_name"
	UserClaimsKey = "user_claims"
	AuthMethodKey = "auth_method"

	AuthMethodBearer = "bearer"
	AuthMethodAPIKey = "api_key"
)

// CurrentUserID returns the authenticated user's id, or nil for API key callers and
// unauthenticated requests.
func CurrentUserID(c *gin.Context) *int64 {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return nil
	}
	id, ok := v.(int64)
	if !ok || id == 0 {
		return nil
	}
	return &id
}

// CurrentUserEmail returns the authenticated user's email, or "".
func CurrentUserEmail(c *gin.Context) string {
	return c.GetString(UserEmailKey)
}

// matchAPIKey reports whether key is one of validKeys, comparing in constant time.
func matchAPIKey(validKeys map[string]bool, key string) bool {
	if key == "" {
		return false
	}
	matched := false
	for k := range validKeys {
		if subtle.ConstantTimeCompare([]byte(k), []byte(key)) == 1 {
			matched = true
		}
	}
	return matched
}

func abortUnauthorized(c *gin.Context, messageKey string) {
	errorResp := dto.NewError(dto.ErrCodeUnauthorized, i18n.T(c, messageKey)).
		WithRequestID(GetRequestID(c))
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
}
