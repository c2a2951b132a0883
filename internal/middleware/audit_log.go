package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/service"
)

// LoggingServiceKey is the gin context key under which the router stores the LoggingService.
const LoggingServiceKey = "logging_service"

// AuditEvent describes one audited action, e.g. a translation update.
type AuditEvent struct {
	Action     string // "translation.update", "locale.delete", "login"
	Resource   string
	ResourceID string
	Message    string
	Fields     map[string]interface{}
}

// LoggingServiceFrom returns the LoggingService stored on c, or nil.
func LoggingServiceFrom(c *gin.Context) service.LoggingService {
	v, ok := c.Get(LoggingServiceKey)
	if !ok {
		return nil
	}
	ls, _ := v.(service.LoggingService)
	return ls
}

// AuditLog records ev for the current request without blocking it.
func AuditLog(c *gin.Context, ev AuditEvent) {
	audit(c, "info", ev, nil)
}

// AuditLogError records a failed action.
func AuditLogError(c *gin.Context, ev AuditEvent, err error) {
	audit(c, "error", ev, err)
}

func audit(c *gin.Context, level string, ev AuditEvent, err error) {
	ls := LoggingServiceFrom(c)
	if ls == nil {
		return
	}

	entry := &model.LogEntry{
		Timestamp:  time.Now().UTC(),
		Level:      level,
		Message:    ev.Message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		ActionType: ev.Action,
		Resource:   ev.Resource,
		ResourceID: ev.ResourceID,
	}
	if len(ev.Fields) > 0 {
		entry.WithFields(ev.Fields)
	}
	if err != nil {
		entry.Error = err.Error()
	}
	setUser(c, entry)
	persist(ls, entry)
}

func setUser(c *gin.Context, entry *model.LogEntry) {
	if id := CurrentUserID(c); id != nil {
		entry.UserID = strconv.FormatInt(*id, 10)
	}
	entry.UserEmail = CurrentUserEmail(c)
	if entry.UserID == "" && c.GetString(AuthMethodKey) == AuthMethodAPIKey {
		entry.UserID = AuthMethodAPIKey
	}
}
