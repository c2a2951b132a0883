package model

import "time"

// User is an account that can authenticate against the API and author revisions.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenType distinguishes stored token records.
type TokenType string

const (
	// TokenTypeRefresh marks a refresh token issued at login.
	TokenTypeRefresh TokenType = "refresh"
	// TokenTypeRevoked marks an access token revoked at logout.
	TokenTypeRevoked TokenType = "revoked"
)

// Token is a stored refresh token or a revoked access token.
type Token struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Token     string    `json:"-"`
	Type      TokenType `json:"type"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the token is past its expiry at t.
func (t *Token) Expired(at time.Time) bool {
	return !t.ExpiresAt.After(at)
}
