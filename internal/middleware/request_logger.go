package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/service"
)

// RequestLogger logs every request to the console logger and, when loggingService is set, to
// the log store through the async logger.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		var event *zerolog.Event
		l := log.Ctx(c.Request.Context())
		switch {
		case status >= 500:
			event = l.Error()
		case status >= 400:
			event = l.Warn()
		default:
			event = l.Info()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Request.URL.RawQuery).
			Int("status_code", status).
			Int64("duration_ms", latency.Milliseconds()).
			Int("bytes", c.Writer.Size()).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Msg("HTTP request")

		if loggingService == nil {
			return
		}
		entry := &model.LogEntry{
			Timestamp:  start.UTC(),
			Level:      getLogLevel(status),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: status,
			Duration:   latency.Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			entry.WithField("query", q)
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.Last().Error()
		}
		setUser(c, entry)
		persist(loggingService, entry)
	}
}

func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}
