package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/translation-service/internal/metrics"
	"github.com/guttosm/translation-service/internal/middleware"
	"github.com/guttosm/translation-service/internal/service"
	"github.com/guttosm/translation-service/internal/service/cache"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit         int
	RateWindow        time.Duration
	RequestTimeout    time.Duration
	APIKeys           map[string]bool
	EnableIdempotency bool
	IdempotencyTTL    time.Duration
	CORSOrigins       []string
	SwaggerEnabled    bool
	SwaggerUser       string
	SwaggerPass       string
	LoggingService    service.LoggingService
	AuthService       service.AuthService
	// CacheRecorder receives idempotency cache hits and misses. May be nil.
	CacheRecorder cache.Recorder
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:         100,
		RateWindow:        time.Minute,
		RequestTimeout:    30 * time.Second,
		EnableIdempotency: true,
		SwaggerEnabled:    true,
	}
}

// Handlers groups the API handlers. Logs may be nil when no log store is configured.
type Handlers struct {
	Translations *TranslationHandler
	Locales      *LocaleHandler
	Users        *UserHandler
	Logs         *LogHandler
}

// Router is the gin engine of the API plus the background resources its middleware owns.
type Router struct {
	*gin.Engine
	limiters []*middleware.ShardedRateLimiter
}

// Close stops the rate limiters' cleanup goroutines.
func (r *Router) Close() {
	for _, l := range r.limiters {
		l.Stop()
	}
}

// NewRouter creates and configures the Gin router of the translation service.
// Everything under /api except login, register and refresh requires a bearer token or,
// when APIKeys is set, an X-API-Key.
func NewRouter(handlers Handlers, healthHandler *HealthHandler, cfg RouterConfig) *Router {
	r := &Router{Engine: gin.New()}

	r.configureGlobalMiddleware(&cfg)
	registerInfrastructureRoutes(r.Engine, healthHandler, &cfg)

	api := r.Group("/api")
	authRoutes := NewAuthRoutes(cfg.AuthService)
	authRoutes.RegisterPublicRoutes(api)

	protected := r.protectedGroup(api, &cfg)
	groups := []ProtectedRouteGroup{
		authRoutes,
		NewTranslationRoutes(handlers.Translations),
		NewLocaleRoutes(handlers.Locales),
		NewUserRoutes(handlers.Users),
	}
	if handlers.Logs != nil {
		groups = append(groups, NewLogRoutes(handlers.Logs))
	}
	for _, g := range groups {
		g.RegisterProtectedRoutes(protected)
	}

	return r
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func (r *Router) configureGlobalMiddleware(cfg *RouterConfig) {
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	)

	if cfg.LoggingService != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.LoggingServiceKey, cfg.LoggingService)
			c.Next()
		})
	}

	r.Use(middleware.Timeout(cfg.RequestTimeout))

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		r.limiters = append(r.limiters, limiter)
		r.Use(limiter.RateLimit())
	}
}

// protectedGroup returns the authenticated part of the API: JWT or API key auth, then a
// per-user rate limit, then idempotency keyed on the caller.
func (r *Router) protectedGroup(api *gin.RouterGroup, cfg *RouterConfig) *gin.RouterGroup {
	protected := api.Group("")
	protected.Use(middleware.JWTAuth(cfg.AuthService, cfg.APIKeys))

	if cfg.RateLimit > 0 {
		userLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		r.limiters = append(r.limiters, userLimiter)
		protected.Use(userLimiter.UserRateLimit())
	}

	if cfg.EnableIdempotency {
		protected.Use(middleware.Idempotency(middleware.NewIdempotencyConfig(cfg.IdempotencyTTL, cfg.CacheRecorder)))
	}
	return protected
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if !cfg.SwaggerEnabled {
		return
	}
	// Swagger with optional basic auth
	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
