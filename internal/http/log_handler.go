package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/i18n"
	"github.com/guttosm/translation-service/internal/service"
)

// LogQuery holds the filters of GET /api/logs.
type LogQuery struct {
	RequestID  string    `form:"request_id"`
	UserID     string    `form:"user_id"`
	Action     string    `form:"action"`
	Resource   string    `form:"resource"`
	ResourceID string    `form:"resource_id"`
	Level      string    `form:"level"`
	From       time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To         time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	dto.PageQuery
}

// LogHandler serves the persisted request and audit log.
type LogHandler struct {
	logs service.LoggingService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logs service.LoggingService) *LogHandler {
	return &LogHandler{logs: logs}
}

// List handles GET /api/logs.
//
// @Summary      Browse the audit log
// @Description  Lists request and audit log entries, newest first. Answers 503 while the log store is unreachable.
// @Tags         Logs
// @Produce      json
// @Security     BearerAuth
// @Param        request_id  query string false "Request id"
// @Param        user_id     query string false "User id, or api_key"
// @Param        action      query string false "Action, e.g. translation.update"
// @Param        resource    query string false "Resource, e.g. translation"
// @Param        resource_id query string false "Resource id"
// @Param        level       query string false "Level"
// @Param        from        query string false "RFC 3339 lower bound"
// @Param        to          query string false "RFC 3339 upper bound"
// @Param        page        query int    false "Page number" default(1)
// @Param        per_page    query int    false "Page size (max 100)" default(20)
// @Success      200 {object} dto.SuccessResponse{data=[]model.LogEntry,meta=dto.PageMeta}
// @Failure      401 {object} dto.ErrorResponse
// @Failure      503 {object} dto.ErrorResponse
// @Router       /api/logs [get]
func (h *LogHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var query LogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}
	query.Normalize()

	opts := model.LogQueryOptions{
		RequestID:  query.RequestID,
		UserID:     query.UserID,
		ActionType: query.Action,
		Resource:   query.Resource,
		ResourceID: query.ResourceID,
		Level:      query.Level,
		Limit:      query.PerPage,
		Skip:       (query.Page - 1) * query.PerPage,
	}
	if !query.From.IsZero() {
		opts.StartTime = &query.From
	}
	if !query.To.IsZero() {
		opts.EndTime = &query.To
	}

	ctx := c.Request.Context()
	total, err := h.logs.CountLogs(ctx, opts)
	if err != nil {
		builder.HandleError(err)
		return
	}
	entries, err := h.logs.QueryLogs(ctx, opts)
	if err != nil {
		builder.HandleError(err)
		return
	}

	Paginated(builder, &service.Page[model.LogEntry]{
		Items:   entries,
		Total:   total,
		Page:    query.Page,
		PerPage: query.PerPage,
	})
}
