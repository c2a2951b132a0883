package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/storage"
)

var userColumns = []string{"id", "name", "email", "password", "active", "created_at", "updated_at"}

// UserRepository stores user accounts in SQL.
type UserRepository struct {
	sqlRepo
}

// NewUserRepository creates a user repository over db.
func NewUserRepository(db DBTX, caps storage.Capabilities) *UserRepository {
	return &UserRepository{sqlRepo: newSQLRepo(db, caps)}
}

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user and fills in its id and timestamps.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ts := now()
	id, err := r.insert(ctx, r.sb.Insert("users").
		Columns("name", "email", "password", "active", "created_at", "updated_at").
		Values(user.Name, user.Email, user.Password, user.Active, ts, ts))
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	user.ID = id
	user.CreatedAt = ts
	user.UpdatedAt = ts
	return nil
}

// FindByEmail returns the user with email, or nil.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

// FindByID returns the user with id, or nil.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) findOne(ctx context.Context, where sq.Sqlizer) (*model.User, error) {
	row, err := r.queryRow(ctx, r.sb.Select(userColumns...).From("users").Where(where).Limit(1))
	if err != nil {
		return nil, err
	}
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// List returns one page of users ordered by id.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	q := r.sb.Select(userColumns...).From("users").OrderBy("id")
	if limit > 0 {
		q = q.Limit(uint64(limit)).Offset(uint64(offset))
	}
	rows, err := r.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Count returns the number of users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, r.sb.Select("COUNT(*)").From("users"))
}
