package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/translation-service/internal/i18n"
	"github.com/guttosm/translation-service/internal/service"
)

// JWTAuth authenticates requests with a bearer access token. When apiKeys is non-empty a
// valid X-API-Key header is accepted instead; such callers act as a service account with no
// user identity.
func JWTAuth(authService service.AuthService, apiKeys map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader(APIKeyHeader); key != "" && len(apiKeys) > 0 {
			if !matchAPIKey(apiKeys, key) {
				abortUnauthorized(c, i18n.ErrKeyInvalidAPIKey)
				return
			}
			c.Set(AuthMethodKey, AuthMethodAPIKey)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}
		if tokenString = strings.TrimSpace(tokenString); tokenString == "" {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserNameKey, claims.Name)
		c.Set(UserClaimsKey, claims)
		c.Set(AuthMethodKey, AuthMethodBearer)
		c.Next()
	}
}

// BearerToken returns the token of an "Authorization: Bearer" header, or "".
func BearerToken(c *gin.Context) string {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
