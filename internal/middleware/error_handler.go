package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/i18n"
)

// ErrorHandler logs the errors handlers attached with c.Error. If a handler failed without
// writing a response, a 500 is written.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		event := log.Ctx(c.Request.Context()).Error()
		if c.Writer.Status() < http.StatusInternalServerError && c.Writer.Written() {
			event = log.Ctx(c.Request.Context()).Warn()
		}
		event.
			Err(c.Errors.Last().Err).
			Strs("errors", c.Errors.Errors()).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Int("status", c.Writer.Status()).
			Msg("request error")

		if !c.Writer.Written() {
			errorResp := dto.NewError(dto.ErrCodeInternal, i18n.T(c, i18n.ErrKeyInternalError)).
				WithRequestID(GetRequestID(c))
			c.JSON(http.StatusInternalServerError, errorResp)
		}
	}
}
