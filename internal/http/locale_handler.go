package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/i18n"
	"github.com/guttosm/translation-service/internal/middleware"
	"github.com/guttosm/translation-service/internal/service"
)

// LocaleHandler provides HTTP handlers for locale routes.
type LocaleHandler struct {
	locales service.LocaleService
}

// NewLocaleHandler creates a new LocaleHandler.
func NewLocaleHandler(locales service.LocaleService) *LocaleHandler {
	return &LocaleHandler{locales: locales}
}

// List handles GET /api/locales.
//
// @Summary      List locales
// @Tags         Locales
// @Produce      json
// @Security     BearerAuth
// @Param        page     query int false "Page number" default(1)
// @Param        per_page query int false "Page size (max 100)" default(20)
// @Success      200 {object} dto.SuccessResponse{data=[]model.Locale,meta=dto.PageMeta}
// @Failure      401 {object} dto.ErrorResponse
// @Router       /api/locales [get]
func (h *LocaleHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}
	query.Normalize()

	page, err := h.locales.List(c.Request.Context(), query.Page, query.PerPage)
	if err != nil {
		builder.HandleError(err)
		return
	}
	Paginated(builder, page)
}

// Show handles GET /api/locales/{id}.
//
// @Summary      Get a locale
// @Tags         Locales
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Locale id"
// @Success      200 {object} dto.SuccessResponse{data=model.Locale}
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/locales/{id} [get]
func (h *LocaleHandler) Show(c *gin.Context) {
	id, ok := pathID(c, i18n.ErrKeyLocaleNotFound)
	if !ok {
		return
	}
	locale, err := h.locales.Get(c.Request.Context(), id)
	if err != nil {
		NewResponseBuilder(c).HandleError(err)
		return
	}
	NewResponseBuilder(c).SuccessOK(locale)
}

// Store handles POST /api/locales.
//
// @Summary      Create a locale
// @Description  The code must be unique and read as a language tag once "_" is taken as "-", e.g. en_US.
// @Tags         Locales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.StoreLocaleRequest true "Locale"
// @Success      201 {object} dto.SuccessResponse{data=model.Locale}
// @Failure      401 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Router       /api/locales [post]
func (h *LocaleHandler) Store(c *gin.Context) {
	req, ok := BindAndValidate[dto.StoreLocaleRequest](c)
	if !ok {
		return
	}

	locale, err := h.locales.Create(c.Request.Context(), req)
	if err != nil {
		NewResponseBuilder(c).HandleError(err)
		return
	}

	middleware.AuditLog(c, middleware.AuditEvent{
		Action:     "locale.create",
		Resource:   "locale",
		ResourceID: strconv.FormatInt(locale.ID, 10),
		Message:    "Locale created",
		Fields:     map[string]interface{}{"code": locale.Code},
	})
	c.Header("Location", "/api/locales/"+strconv.FormatInt(locale.ID, 10))
	NewResponseBuilder(c).SuccessCreated(locale)
}

// Update handles PUT /api/locales/{id}.
//
// @Summary      Update a locale
// @Tags         Locales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Locale id"
// @Param        request body dto.UpdateLocaleRequest true "Fields to change"
// @Success      200 {object} dto.SuccessResponse{data=model.Locale}
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Router       /api/locales/{id} [put]
func (h *LocaleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, i18n.ErrKeyLocaleNotFound)
	if !ok {
		return
	}
	req, ok := BindAndValidate[dto.UpdateLocaleRequest](c)
	if !ok {
		return
	}

	locale, err := h.locales.Update(c.Request.Context(), id, req)
	if err != nil {
		NewResponseBuilder(c).HandleError(err)
		return
	}

	middleware.AuditLog(c, middleware.AuditEvent{
		Action:     "locale.update",
		Resource:   "locale",
		ResourceID: strconv.FormatInt(id, 10),
		Message:    "Locale updated",
	})
	NewResponseBuilder(c).SuccessOK(locale)
}

// Destroy handles DELETE /api/locales/{id}.
//
// @Summary      Delete a locale
// @Description  Deletes the locale together with its translation values.
// @Tags         Locales
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Locale id"
// @Success      200 {object} dto.SuccessResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/locales/{id} [delete]
func (h *LocaleHandler) Destroy(c *gin.Context) {
	id, ok := pathID(c, i18n.ErrKeyLocaleNotFound)
	if !ok {
		return
	}
	if err := h.locales.Delete(c.Request.Context(), id); err != nil {
		NewResponseBuilder(c).HandleError(err)
		return
	}

	middleware.AuditLog(c, middleware.AuditEvent{
		Action:     "locale.delete",
		Resource:   "locale",
		ResourceID: strconv.FormatInt(id, 10),
		Message:    "Locale deleted",
	})
	NewResponseBuilder(c).SuccessMessage(http.StatusOK, i18n.SuccessKeyLocaleDeleted, nil)
}
