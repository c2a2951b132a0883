package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/i18n"
	"github.com/guttosm/translation-service/internal/middleware"
	"github.com/guttosm/translation-service/internal/service"
)

// RefreshTokenHeader carries the refresh token on refresh and logout.
const RefreshTokenHeader = "X-Refresh-Token"

// AuthHandler provides HTTP handlers for authentication routes.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /api/auth/login requests.
//
// @Summary      Login user
// @Description  Authenticates a user and returns a JWT token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful login"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      422 {object} dto.ErrorResponse "Validation failed"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req, ok := BindAndValidate[dto.LoginRequest](c)
	if !ok {
		return
	}

	tokenPair, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		event := middleware.AuditEvent{
			Action:   "login",
			Resource: "user",
			Message:  "Failed login attempt",
			Fields:   map[string]interface{}{"email": req.Email},
		}
		if !errors.Is(err, service.ErrInvalidCredentials) {
			event.Message = "Login internal error"
		}
		middleware.AuditLogError(c, event, err)
		NewResponseBuilder(c).HandleError(err)
		return
	}

	setAuthenticatedUser(c, user)
	middleware.AuditLog(c, middleware.AuditEvent{
		Action:     "login",
		Resource:   "user",
		ResourceID: strconv.FormatInt(user.ID, 10),
		Message:    "User logged in successfully",
	})
	NewResponseBuilder(c).SuccessOK(loginResponse(tokenPair, user))
}

// Register handles POST /api/auth/register requests.
//
// @Summary      Register new user
// @Description  Creates a new user account and returns a JWT token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Registration information"
// @Success      201 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful registration"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      409 {object} dto.ErrorResponse "Conflict - user already exists"
// @Failure      422 {object} dto.ErrorResponse "Validation failed"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	req, ok := BindAndValidate[dto.RegisterRequest](c)
	if !ok {
		return
	}

	tokenPair, user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			middleware.AuditLogError(c, middleware.AuditEvent{
				Action:   "register",
				Resource: "user",
				Message:  "Failed registration attempt - user already exists",
				Fields:   map[string]interface{}{"email": req.Email},
			}, err)
		}
		NewResponseBuilder(c).HandleError(err)
		return
	}

	setAuthenticatedUser(c, user)
	middleware.AuditLog(c, middleware.AuditEvent{
		Action:     "register",
		Resource:   "user",
		ResourceID: strconv.FormatInt(user.ID, 10),
		Message:    "New user registered successfully",
	})
	NewResponseBuilder(c).SuccessCreated(loginResponse(tokenPair, user))
}

// RefreshToken handles POST /api/auth/refresh requests.
//
// @Summary      Refresh access token
// @Description  Generates a new access token using a refresh token. Refresh token is extracted from X-Refresh-Token header.
// @Tags         Auth
// @Produce      json
// @Param        X-Refresh-Token header string true "Refresh token"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful token refresh"
// @Failure      400 {object} dto.ErrorResponse "Bad request - missing refresh token"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid refresh token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	builder := NewResponseBuilder(c)

	refreshToken := c.GetHeader(RefreshTokenHeader)
	if refreshToken == "" {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyRefreshRequired, nil)
		return
	}

	tokenPair, user, err := h.authService.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		// A refresh token whose user is gone is as good as an invalid one.
		if errors.Is(err, service.ErrInvalidCredentials) {
			err = service.ErrInvalidToken
		}
		builder.HandleError(err)
		return
	}

	builder.SuccessOK(loginResponse(tokenPair, user))
}

// Logout handles POST /api/auth/logout requests.
//
// @Summary      Logout user
// @Description  Revokes the access token and deletes the refresh tokens of the user. The refresh token header is optional.
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Param        X-Refresh-Token header string false "Refresh token"
// @Success      200 {object} dto.SuccessResponse "Successful logout"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	builder := NewResponseBuilder(c)

	// API key callers have no session to end.
	accessToken := middleware.BearerToken(c)
	if accessToken == "" {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyTokenRequired, nil)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), accessToken, c.GetHeader(RefreshTokenHeader)); err != nil {
		builder.HandleError(err)
		return
	}

	middleware.AuditLog(c, middleware.AuditEvent{
		Action:   "logout",
		Resource: "user",
		Message:  "User logged out successfully",
	})
	builder.SuccessMessage(http.StatusOK, i18n.SuccessKeyLoggedOut, nil)
}

// CurrentUser handles GET /api/auth/user requests.
//
// @Summary      Current user
// @Description  Returns the user the bearer token belongs to.
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.SuccessResponse{data=dto.UserResponse}
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Router       /api/auth/user [get]
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id := middleware.CurrentUserID(c)
	if id == nil {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyUnauthorized, nil)
		return
	}
	user, err := h.authService.GetUserByID(c.Request.Context(), *id)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			builder.Error(http.StatusUnauthorized, i18n.ErrKeyUnauthorized, err)
			return
		}
		builder.HandleError(err)
		return
	}
	builder.SuccessOK(dto.NewUserResponse(user))
}

func setAuthenticatedUser(c *gin.Context, user *model.User) {
	c.Set(middleware.UserIDKey, user.ID)
	c.Set(middleware.UserEmailKey, user.Email)
}

func loginResponse(pair *dto.TokenPair, user *model.User) dto.LoginResponse {
	resp := dto.LoginResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}
	if user != nil {
		resp.User = dto.NewUserResponse(user)
	}
	return resp
}
