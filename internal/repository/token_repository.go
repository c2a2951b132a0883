package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/storage"
)

// TokenRepository stores refresh tokens and revoked access tokens in SQL.
type TokenRepository struct {
	sqlRepo
}

// NewTokenRepository creates a token repository over db.
func NewTokenRepository(db DBTX, caps storage.Capabilities) *TokenRepository {
	return &TokenRepository{sqlRepo: newSQLRepo(db, caps)}
}

func tokenTable(t model.TokenType) (string, error) {
	switch t {
	case model.TokenTypeRefresh:
		return "refresh_tokens", nil
	case model.TokenTypeRevoked:
		return "revoked_tokens", nil
	default:
		return "", fmt.Errorf("unknown token type %q", t)
	}
}

// Create stores a token in the table for its type.
func (r *TokenRepository) Create(ctx context.Context, token *model.Token) error {
	table, err := tokenTable(token.Type)
	if err != nil {
		return err
	}
	ts := now()
	id, err := r.insert(ctx, r.sb.Insert(table).
		Columns("user_id", "token", "expires_at", "created_at").
		Values(token.UserID, token.Token, token.ExpiresAt.UTC(), ts))
	if err != nil {
		return fmt.Errorf("store %s token: %w", token.Type, err)
	}
	token.ID = id
	token.CreatedAt = ts
	return nil
}

// FindRefreshToken returns the stored refresh token, or nil.
func (r *TokenRepository) FindRefreshToken(ctx context.Context, tokenString string) (*model.Token, error) {
	row, err := r.queryRow(ctx, r.sb.Select("id", "user_id", "token", "expires_at", "created_at").
		From("refresh_tokens").
		Where(sq.Eq{"token": tokenString}))
	if err != nil {
		return nil, err
	}
	t := model.Token{Type: model.TokenTypeRefresh}
	err = row.Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &t, nil
}

// DeleteRefreshToken removes one refresh token.
func (r *TokenRepository) DeleteRefreshToken(ctx context.Context, tokenString string) error {
	_, err := r.exec(ctx, r.sb.Delete("refresh_tokens").Where(sq.Eq{"token": tokenString}))
	return err
}

// DeleteUserRefreshTokens removes every refresh token issued to the user.
func (r *TokenRepository) DeleteUserRefreshTokens(ctx context.Context, userID int64) error {
	_, err := r.exec(ctx, r.sb.Delete("refresh_tokens").Where(sq.Eq{"user_id": userID}))
	return err
}

// IsRevoked reports whether the access token was revoked and has not yet expired.
func (r *TokenRepository) IsRevoked(ctx context.Context, tokenString string) (bool, error) {
	n, err := r.count(ctx, r.sb.Select("COUNT(*)").
		From("revoked_tokens").
		Where(sq.Eq{"token": tokenString}).
		Where(sq.Gt{"expires_at": time.Now().UTC()}))
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}

// CleanupExpired deletes expired rows from both token tables.
func (r *TokenRepository) CleanupExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC()
	var removed int64
	for _, table := range []string{"refresh_tokens", "revoked_tokens"} {
		res, err := r.exec(ctx, r.sb.Delete(table).Where(sq.LtOrEq{"expires_at": cutoff}))
		if err != nil {
			return removed, fmt.Errorf("cleanup %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		removed += n
	}
	return removed, nil
}
