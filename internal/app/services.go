package app

import (
	"github.com/guttosm/translation-service/config"
	"github.com/guttosm/translation-service/internal/metrics"
	"github.com/guttosm/translation-service/internal/service"
	"github.com/guttosm/translation-service/internal/service/cache"
)

const exportCacheName = "exports"

// ServiceComponents holds the business services.
type ServiceComponents struct {
	Translations service.TranslationService
	Locales      service.LocaleService
	Users        service.UserService
	Auth         service.AuthService
	// ExportCache is nil when the export cache is disabled.
	ExportCache *cache.ShardedCache[service.ExportSnapshot]
}

// InitializeServices builds the services on the repositories of db.
func InitializeServices(db *DatabaseComponents, cfg config.Config) *ServiceComponents {
	components := &ServiceComponents{}

	var exports service.ExportCache
	if cfg.Cache.Enabled && cfg.Cache.Size > 0 {
		components.ExportCache = cache.NewShardedCache[service.ExportSnapshot](cache.Options{
			Name:     exportCacheName,
			Capacity: cfg.Cache.Size,
			TTL:      cfg.Cache.TTL,
			Shards:   cfg.Cache.Shards,
			Recorder: metrics.RecordCacheOperation,
		})
		exports = components.ExportCache
	}

	components.Translations = service.NewTranslationService(db.Transactor, db.Translations, db.Locales, db.Revisions, exports)
	components.Locales = service.NewLocaleService(db.Locales, exports)
	components.Users = service.NewUserService(db.Users)
	components.Auth = service.NewAuthService(db.Users, db.Tokens, cfg.Auth)
	return components
}

// ReportCacheMetrics publishes the export cache size to Prometheus.
func (s *ServiceComponents) ReportCacheMetrics() {
	if s.ExportCache == nil {
		return
	}
	m := s.ExportCache.Metrics()
	metrics.UpdateCacheMetrics(exportCacheName, m.Size, m.Capacity)
}

// Close stops the export cache's janitor.
func (s *ServiceComponents) Close() {
	if s.ExportCache != nil {
		s.ExportCache.Stop()
	}
}
