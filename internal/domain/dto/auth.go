package dto

import (
	"strings"
	"time"

	"github.com/guttosm/translation-service/internal/domain/model"
)

// LoginRequest represents the JSON request body for the login endpoint.
//
// @Description Request to authenticate a user
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"password"`
} // @name LoginRequest

// RegisterRequest represents the JSON request body for the register endpoint.
//
// @Description Request to register a new user
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"translator@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
	Name     string `json:"name" binding:"required,max=255" example:"Jane Translator"`
} // @name RegisterRequest

// LoginResponse is returned by login, register and refresh.
//
// @Description Successful authentication response with JWT tokens
type LoginResponse struct {
	Token        string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string       `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn    int64        `json:"expires_in" example:"3600"`
	User         UserResponse `json:"user"`
} // @name LoginResponse

// TokenPair holds an access token and its refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

// Claims are the application claims carried by access and refresh tokens.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        int64     `json:"id" example:"1"`
	Email     string    `json:"email" example:"admin@example.com"`
	Name      string    `json:"name" example:"Admin"`
	CreatedAt time.Time `json:"created_at"`
} // @name UserResponse

// NewUserResponse builds the public view of u.
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

// Validate checks the login request.
func (r *LoginRequest) Validate() error {
	errs := ValidationErrors{}
	if strings.TrimSpace(r.Email) == "" {
		errs.Add("email", "email is required")
	}
	if len(r.Password) < 6 {
		errs.Add("password", "password must be at least 6 characters")
	}
	return errs.OrNil()
}

// Validate checks the register request.
func (r *RegisterRequest) Validate() error {
	errs := ValidationErrors{}
	if strings.TrimSpace(r.Email) == "" {
		errs.Add("email", "email is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		errs.Add("name", "name is required")
	}
	if len(r.Password) < 6 {
		errs.Add("password", "password must be at least 6 characters")
	}
	return errs.OrNil()
}
