package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/i18n"
	"github.com/guttosm/translation-service/internal/middleware"
	"github.com/guttosm/translation-service/internal/service"
)

// TranslationHandler provides HTTP handlers for translation routes.
type TranslationHandler struct {
	translations service.TranslationService
}

// NewTranslationHandler creates a new TranslationHandler.
func NewTranslationHandler(translations service.TranslationService) *TranslationHandler {
	return &TranslationHandler{translations: translations}
}

// Search handles GET /api/translations.
//
// @Summary      Search translations
// @Description  Lists translation values joined with their key and locale. Filters are optional and combined with AND: tag (exact tag name), key (substring), content (substring or full-text), locale (exact code).
// @Tags         Translations
// @Produce      json
// @Security     BearerAuth
// @Param        tag      query string false "Tag name"
// @Param        key      query string false "Key substring"
// @Param        content  query string false "Value text"
// @Param        locale   query string false "Locale code"
// @Param        page     query int    false "Page number" default(1)
// @Param        per_page query int    false "Page size (max 100)" default(20)
// @Success      200 {object} dto.SuccessResponse{data=[]model.TranslationRow,meta=dto.PageMeta}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/translations [get]
func (h *TranslationHandler) Search(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var query dto.TranslationSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}
	query.Normalize()

	filters := model.TranslationFilters{
		Tag:     query.Tag,
		Key:     query.Key,
		Content: query.Content,
		Locale:  query.Locale,
	}
	page, err := h.translations.Search(c.Request.Context(), filters, query.Page, query.PerPage)
	if err != nil {
		builder.HandleError(err)
		return
	}
	Paginated(builder, page)
}

// Store handles POST /api/translations.
//
// @Summary      Store a translation
// @Description  Creates or overwrites the value of a key in a locale. The key and any missing tags are created; tags are added to the key, never removed. Supports idempotency via Idempotency-Key header.
// @Tags         Translations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.StoreTranslationRequest true "Translation"
// @Success      201 {object} dto.SuccessResponse{data=model.TranslationValue}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse "Missing field or unknown locale"
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/translations [post]
func (h *TranslationHandler) Store(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := BindAndValidate[dto.StoreTranslationRequest](c)
	if !ok {
		return
	}

	value, err := h.translations.Store(c.Request.Context(), req)
	if err != nil {
		// An unknown locale is a problem with the submitted field.
		if errors.Is(err, service.ErrLocaleNotFound) {
			builder.ErrorWithDetails(http.StatusUnprocessableEntity, i18n.ErrKeyValidationFailed,
				map[string]string{"locale": "The selected locale is invalid."}, err)
			return
		}
		middleware.AuditLogError(c, middleware.AuditEvent{
			Action:   "translation.store",
			Resource: "translation",
			Message:  "Failed to store translation",
			Fields:   map[string]interface{}{"key": req.Key, "locale": req.Locale},
		}, err)
		builder.HandleError(err)
		return
	}

	middleware.AuditLog(c, middleware.AuditEvent{
		Action:     "translation.store",
		Resource:   "translation",
		ResourceID: strconv.FormatInt(value.ID, 10),
		Message:    "Translation stored",
		Fields:     map[string]interface{}{"key": req.Key, "locale": req.Locale, "tags": req.Tags},
	})
	builder.SuccessMessage(http.StatusCreated, i18n.SuccessKeyTranslationSaved, value)
}

// Find handles GET /api/translations/{id}.
//
// @Summary      Get a translation
// @Tags         Translations
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Translation value id"
// @Success      200 {object} dto.SuccessResponse{data=model.TranslationValue}
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/translations/{id} [get]
func (h *TranslationHandler) Find(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := pathID(c, i18n.ErrKeyTranslationNotFound)
	if !ok {
		return
	}
	value, err := h.translations.Find(c.Request.Context(), id)
	if err != nil {
		builder.HandleError(err)
		return
	}
	builder.SuccessOK(value)
}

// Update handles PUT /api/translations/{id}.
//
// @Summary      Update a translation
// @Description  Replaces the value's text. A revision recording the old and new text is kept when the caller is a user; API key callers record none.
// @Tags         Translations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Translation value id"
// @Param        request body dto.UpdateTranslationRequest true "New value"
// @Success      200 {object} dto.SuccessResponse{data=model.TranslationValue}
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Router       /api/translations/{id} [put]
func (h *TranslationHandler) Update(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := pathID(c, i18n.ErrKeyTranslationNotFound)
	if !ok {
		return
	}
	req, ok := BindAndValidate[dto.UpdateTranslationRequest](c)
	if !ok {
		return
	}

	value, err := h.translations.Update(c.Request.Context(), id, req.Value, middleware.CurrentUserID(c))
	if err != nil {
		builder.HandleError(err)
		return
	}

	middleware.AuditLog(c, middleware.AuditEvent{
		Action:     "translation.update",
		Resource:   "translation",
		ResourceID: strconv.FormatInt(id, 10),
		Message:    "Translation updated",
	})
	builder.SuccessMessage(http.StatusOK, i18n.SuccessKeyTranslationUpdated, value)
}

// Destroy handles DELETE /api/translations/{id}.
//
// @Summary      Delete a translation
// @Description  Deletes a translation value. Deleting a value that does not exist succeeds.
// @Tags         Translations
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Translation value id"
// @Success      200 {object} dto.SuccessResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/translations/{id} [delete]
func (h *TranslationHandler) Destroy(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := pathID(c, i18n.ErrKeyTranslationNotFound)
	if !ok {
		return
	}
	deleted, err := h.translations.Destroy(c.Request.Context(), id)
	if err != nil {
		builder.HandleError(err)
		return
	}

	if deleted {
		middleware.AuditLog(c, middleware.AuditEvent{
			Action:     "translation.delete",
			Resource:   "translation",
			ResourceID: strconv.FormatInt(id, 10),
			Message:    "Translation deleted",
		})
	}
	builder.SuccessMessage(http.StatusOK, i18n.SuccessKeyTranslationDeleted, nil)
}

// Revisions handles GET /api/translations/{id}/revisions.
//
// @Summary      List revisions of a translation
// @Tags         Translations
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Translation value id"
// @Success      200 {object} dto.SuccessResponse{data=[]model.TranslationRevision}
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/translations/{id}/revisions [get]
func (h *TranslationHandler) Revisions(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := pathID(c, i18n.ErrKeyTranslationNotFound)
	if !ok {
		return
	}
	revisions, err := h.translations.Revisions(c.Request.Context(), id)
	if err != nil {
		builder.HandleError(err)
		return
	}
	builder.SuccessOK(revisions)
}

// Export handles GET /api/translations/export.
//
// @Summary      Export a locale
// @Description  Returns the key/value map of one locale with links to the exports of the other locales. Without locale the first locale is exported; a two letter code such as "en" resolves to a stored "en_US".
// @Tags         Translations
// @Produce      json
// @Security     BearerAuth
// @Param        locale query string false "Locale code"
// @Success      200 {object} dto.SuccessResponse{data=map[string]string,meta=dto.ExportMeta}
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse "No locales exist"
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/translations/export [get]
func (h *TranslationHandler) Export(c *gin.Context) {
	builder := NewResponseBuilder(c)
	ctx := c.Request.Context()
	start := time.Now()
	requested := c.Query("locale")

	export, err := h.translations.ExportTranslations(ctx, requested, requestURL(c.Request))
	if err != nil {
		if errors.Is(err, service.ErrNoLocales) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyNoLocales, err)
			return
		}
		log.Ctx(ctx).Error().Err(err).Str("locale", requested).Msg("Export translations error")
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyExportFailed, err)
		return
	}

	meta := dto.ExportMeta{
		CurrentLocale: export.CurrentLocale,
		OtherLocales:  export.OtherLocales,
	}
	if stats, err := h.translations.GetExportStats(ctx, export.CurrentLocale); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("locale", export.CurrentLocale).Msg("export stats unavailable")
	} else {
		meta.Performance = &stats
	}

	log.Ctx(ctx).Info().
		Str("locale", export.CurrentLocale).
		Int("keys", len(export.Data)).
		Dur("duration", time.Since(start)).
		Msg("Export: finished")

	builder.SuccessWithMeta(export.Data, meta)
}

// pathID parses the :id parameter. Ids that cannot exist answer 404 with notFoundKey.
func pathID(c *gin.Context, notFoundKey string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		NewResponseBuilder(c).Error(http.StatusNotFound, notFoundKey, nil)
		return 0, false
	}
	return id, true
}
