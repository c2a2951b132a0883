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

var localeColumns = []string{"id", "code", "name", "created_at", "updated_at"}

// LocaleRepository stores locales in SQL.
type LocaleRepository struct {
	sqlRepo
}

// NewLocaleRepository creates a locale repository over db.
func NewLocaleRepository(db DBTX, caps storage.Capabilities) *LocaleRepository {
	return &LocaleRepository{sqlRepo: newSQLRepo(db, caps)}
}

// List returns one page of locales in insertion order.
func (r *LocaleRepository) List(ctx context.Context, limit, offset int) ([]model.Locale, error) {
	q := r.sb.Select(localeColumns...).From("locales").OrderBy("id")
	if limit > 0 {
		q = q.Limit(uint64(limit)).Offset(uint64(offset))
	}
	rows, err := r.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	defer rows.Close()

	locales := make([]model.Locale, 0)
	for rows.Next() {
		var l model.Locale
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan locale: %w", err)
		}
		locales = append(locales, l)
	}
	return locales, rows.Err()
}

// Count returns the number of locales.
func (r *LocaleRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, r.sb.Select("COUNT(*)").From("locales"))
}

// Codes returns every locale code in insertion order.
func (r *LocaleRepository) Codes(ctx context.Context) ([]string, error) {
	rows, err := r.query(ctx, r.sb.Select("code").From("locales").OrderBy("id"))
	if err != nil {
		return nil, fmt.Errorf("list locale codes: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// FindByID returns the locale with id, or nil if there is none.
func (r *LocaleRepository) FindByID(ctx context.Context, id int64) (*model.Locale, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

// FindByCode returns the locale with exactly this code, or nil if there is none.
func (r *LocaleRepository) FindByCode(ctx context.Context, code string) (*model.Locale, error) {
	return r.findOne(ctx, sq.Eq{"code": code})
}

func (r *LocaleRepository) findOne(ctx context.Context, where sq.Sqlizer) (*model.Locale, error) {
	row, err := r.queryRow(ctx, r.sb.Select(localeColumns...).From("locales").Where(where).Limit(1))
	if err != nil {
		return nil, err
	}
	var l model.Locale
	err = row.Scan(&l.ID, &l.Code, &l.Name, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find locale: %w", err)
	}
	return &l, nil
}

// Create inserts a locale and fills in its id and timestamps.
func (r *LocaleRepository) Create(ctx context.Context, locale *model.Locale) error {
	ts := now()
	id, err := r.insert(ctx, r.sb.Insert("locales").
		Columns("code", "name", "created_at", "updated_at").
		Values(locale.Code, locale.Name, ts, ts))
	if err != nil {
		return fmt.Errorf("create locale: %w", err)
	}
	locale.ID = id
	locale.CreatedAt = ts
	locale.UpdatedAt = ts
	return nil
}

// Update persists code and name. It reports false when the locale no longer exists.
func (r *LocaleRepository) Update(ctx context.Context, locale *model.Locale) (bool, error) {
	ts := now()
	res, err := r.exec(ctx, r.sb.Update("locales").
		Set("code", locale.Code).
		Set("name", locale.Name).
		Set("updated_at", ts).
		Where(sq.Eq{"id": locale.ID}))
	if err != nil {
		return false, fmt.Errorf("update locale: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	locale.UpdatedAt = ts
	return n > 0, nil
}

// Delete removes the locale; its translation values go with it.
func (r *LocaleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.exec(ctx, r.sb.Delete("locales").Where(sq.Eq{"id": id}))
	if err != nil {
		return false, fmt.Errorf("delete locale: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
