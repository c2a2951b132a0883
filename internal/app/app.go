// Package app wires configuration, storage, services and the HTTP router into a runnable
// service, and provides the maintenance tasks used by the CLI.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/translation-service/config"
	"github.com/guttosm/translation-service/internal/http"
	"github.com/guttosm/translation-service/internal/middleware"
)

const (
	tokenCleanupInterval  = time.Hour
	cacheMetricsInterval  = 15 * time.Second
	backgroundTaskTimeout = 30 * time.Second
)

// App is the assembled translation service.
type App struct {
	cfg      config.Config
	db       *DatabaseComponents
	logs     *LogStoreComponents
	services *ServiceComponents
	router   *http.Router

	stop     context.CancelFunc
	wg       sync.WaitGroup
	closeOne sync.Once
}

// New creates and wires all application dependencies. The SQL database is required; the
// MongoDB log store is optional.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := InitializeDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	logs := InitializeLogStore(ctx, cfg.Logs)
	if logs != nil {
		middleware.InitAsyncLogger(logs.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	services := InitializeServices(db, cfg)
	router := InitializeRouter(db, services, logs, cfg).Build()

	bgCtx, stop := context.WithCancel(context.Background())
	a := &App{
		cfg:      cfg,
		db:       db,
		logs:     logs,
		services: services,
		router:   router,
		stop:     stop,
	}
	a.every(bgCtx, tokenCleanupInterval, a.cleanupTokens)
	a.every(bgCtx, cacheMetricsInterval, func(context.Context) { a.services.ReportCacheMetrics() })

	return a, nil
}

// Router returns the HTTP handler of the service.
func (a *App) Router() *http.Router {
	return a.router
}

// Services returns the business services.
func (a *App) Services() *ServiceComponents {
	return a.services
}

// Run serves HTTP until ctx is done, then shuts down and releases every resource.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	server := NewServer(a.router, a.cfg.Server.Port, a.cfg.Server.RequestTimeout)
	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Close stops background work, flushes queued log entries and closes the stores.
// It is safe to call more than once.
func (a *App) Close() {
	a.closeOne.Do(func() {
		a.stop()
		a.wg.Wait()

		a.router.Close()
		middleware.StopAsyncLogger()
		a.services.Close()
		if a.logs != nil {
			a.logs.Close(context.Background())
		}
		if err := a.db.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	})
}

// every runs task each interval until ctx is done.
func (a *App) every(ctx context.Context, interval time.Duration, task func(context.Context)) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				taskCtx, cancel := context.WithTimeout(ctx, backgroundTaskTimeout)
				task(taskCtx)
				cancel()
			}
		}
	}()
}

func (a *App) cleanupTokens(ctx context.Context) {
	removed, err := a.db.Tokens.CleanupExpired(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to clean up expired tokens")
		return
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Msg("Expired tokens cleaned up")
	}
}
