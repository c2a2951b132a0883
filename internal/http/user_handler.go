package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/i18n"
	"github.com/guttosm/translation-service/internal/service"
)

// UserHandler provides HTTP handlers for user routes.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /api/users.
//
// @Summary      List users
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        page     query int false "Page number" default(1)
// @Param        per_page query int false "Page size (max 100)" default(20)
// @Success      200 {object} dto.SuccessResponse{data=[]dto.UserResponse,meta=dto.PageMeta}
// @Failure      401 {object} dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}
	query.Normalize()

	page, err := h.users.List(c.Request.Context(), query.Page, query.PerPage)
	if err != nil {
		builder.HandleError(err)
		return
	}

	views := make([]dto.UserResponse, len(page.Items))
	for i := range page.Items {
		views[i] = dto.NewUserResponse(&page.Items[i])
	}
	Paginated(builder, &service.Page[dto.UserResponse]{
		Items:   views,
		Total:   page.Total,
		Page:    page.Page,
		PerPage: page.PerPage,
	})
}
