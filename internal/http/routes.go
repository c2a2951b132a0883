package http

import (
	"github.com/gin-gonic/gin"
)

// PublicRouteGroup defines routes that don't require authentication.
type PublicRouteGroup interface {
	// RegisterPublicRoutes registers public routes to the given router group.
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// ProtectedRouteGroup defines routes that require authentication.
type ProtectedRouteGroup interface {
	// RegisterProtectedRoutes registers protected routes on a group that already
	// authenticates its requests.
	RegisterProtectedRoutes(rg *gin.RouterGroup)
}

// TranslationRoutes registers the translation endpoints.
type TranslationRoutes struct {
	handler *TranslationHandler
}

// NewTranslationRoutes creates a new TranslationRoutes instance.
func NewTranslationRoutes(handler *TranslationHandler) *TranslationRoutes {
	return &TranslationRoutes{handler: handler}
}

// RegisterProtectedRoutes implements ProtectedRouteGroup.
func (r *TranslationRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	translations := rg.Group("/translations")
	{
		translations.GET("", r.handler.Search)
		translations.POST("", r.handler.Store)
		// Registered before /:id so "export" is never taken for an id.
		translations.GET("/export", r.handler.Export)
		translations.GET("/:id", r.handler.Find)
		translations.PUT("/:id", r.handler.Update)
		translations.DELETE("/:id", r.handler.Destroy)
		translations.GET("/:id/revisions", r.handler.Revisions)
	}
}

// LocaleRoutes registers the locale endpoints.
type LocaleRoutes struct {
	handler *LocaleHandler
}

// NewLocaleRoutes creates a new LocaleRoutes instance.
func NewLocaleRoutes(handler *LocaleHandler) *LocaleRoutes {
	return &LocaleRoutes{handler: handler}
}

// RegisterProtectedRoutes implements ProtectedRouteGroup.
func (r *LocaleRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	locales := rg.Group("/locales")
	{
		locales.GET("", r.handler.List)
		locales.POST("", r.handler.Store)
		locales.GET("/:id", r.handler.Show)
		locales.PUT("/:id", r.handler.Update)
		locales.DELETE("/:id", r.handler.Destroy)
	}
}

// UserRoutes registers the user endpoints.
type UserRoutes struct {
	handler *UserHandler
}

// NewUserRoutes creates a new UserRoutes instance.
func NewUserRoutes(handler *UserHandler) *UserRoutes {
	return &UserRoutes{handler: handler}
}

// RegisterProtectedRoutes implements ProtectedRouteGroup.
func (r *UserRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", r.handler.List)
}

// LogRoutes registers the audit log endpoint.
type LogRoutes struct {
	handler *LogHandler
}

// NewLogRoutes creates a new LogRoutes instance.
func NewLogRoutes(handler *LogHandler) *LogRoutes {
	return &LogRoutes{handler: handler}
}

// RegisterProtectedRoutes implements ProtectedRouteGroup.
func (r *LogRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/logs", r.handler.List)
}
