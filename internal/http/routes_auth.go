package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/translation-service/internal/service"
)

// AuthRoutes handles authentication route registration.
type AuthRoutes struct {
	handler *AuthHandler
}

// NewAuthRoutes creates a new AuthRoutes instance.
func NewAuthRoutes(authService service.AuthService) *AuthRoutes {
	return &AuthRoutes{handler: NewAuthHandler(authService)}
}

// RegisterPublicRoutes registers login, register and refresh.
func (r *AuthRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", r.handler.Login)
		auth.POST("/register", r.handler.Register)
		auth.POST("/refresh", r.handler.RefreshToken)
	}
}

// RegisterProtectedRoutes registers logout and the current user.
func (r *AuthRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/logout", r.handler.Logout)
		auth.GET("/user", r.handler.CurrentUser)
	}
}
