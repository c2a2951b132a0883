package app

import (
	"github.com/guttosm/translation-service/config"
	"github.com/guttosm/translation-service/internal/http"
	"github.com/guttosm/translation-service/internal/metrics"
	"github.com/guttosm/translation-service/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handlers      http.Handlers
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the handlers, the health checks and the router configuration.
// logs may be nil when no log store is configured.
func InitializeRouter(db *DatabaseComponents, services *ServiceComponents, logs *LogStoreComponents, cfg config.Config) *RouterComponents {
	handlers := http.Handlers{
		Translations: http.NewTranslationHandler(services.Translations),
		Locales:      http.NewLocaleHandler(services.Locales),
		Users:        http.NewUserHandler(services.Users),
	}

	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterChecker("database", db.DB)

	var loggingService service.LoggingService
	if logs != nil {
		loggingService = logs.LoggingService
		handlers.Logs = http.NewLogHandler(logs.LoggingService)
		healthHandler.RegisterCircuitBreaker("mongodb_logs", logs.CircuitBreaker)
	}

	routerCfg := http.DefaultRouterConfig()
	routerCfg.RateLimit = cfg.Server.RateLimit
	routerCfg.RateWindow = cfg.Server.RateWindow
	routerCfg.RequestTimeout = cfg.Server.RequestTimeout
	routerCfg.APIKeys = cfg.Auth.APIKeySet()
	routerCfg.CORSOrigins = cfg.Server.CORSOrigins
	routerCfg.SwaggerEnabled = cfg.Server.SwaggerEnabled
	routerCfg.SwaggerUser = cfg.Server.SwaggerUser
	routerCfg.SwaggerPass = cfg.Server.SwaggerPass
	routerCfg.LoggingService = loggingService
	routerCfg.AuthService = services.Auth
	routerCfg.CacheRecorder = metrics.RecordCacheOperation

	return &RouterComponents{
		Handlers:      handlers,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}

// Build creates the router.
func (rc *RouterComponents) Build() *http.Router {
	return http.NewRouter(rc.Handlers, rc.HealthHandler, rc.Config)
}
