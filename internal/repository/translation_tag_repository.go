package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/storage"
)

// TranslationTagRepository stores tags.
type TranslationTagRepository struct {
	sqlRepo
}

// NewTranslationTagRepository creates a tag repository over db.
func NewTranslationTagRepository(db DBTX, caps storage.Capabilities) *TranslationTagRepository {
	return &TranslationTagRepository{sqlRepo: newSQLRepo(db, caps)}
}

// FindByNames returns the tags whose name is in names. Missing names are simply absent.
func (r *TranslationTagRepository) FindByNames(ctx context.Context, names []string) ([]model.TranslationTag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	rows, err := r.query(ctx, r.sb.Select("id", "name", "description", "created_at", "updated_at").
		From("translation_tags").
		Where(sq.Eq{"name": names}).
		OrderBy("id"))
	if err != nil {
		return nil, fmt.Errorf("find tags: %w", err)
	}
	defer rows.Close()
	return scanTags(rows)
}

// Create inserts a tag and fills in its id and timestamps.
func (r *TranslationTagRepository) Create(ctx context.Context, tag *model.TranslationTag) error {
	ts := now()
	id, err := r.insert(ctx, r.sb.Insert("translation_tags").
		Columns("name", "description", "created_at", "updated_at").
		Values(tag.Name, nullableString(tag.Description), ts, ts))
	if err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	tag.ID = id
	tag.CreatedAt = ts
	tag.UpdatedAt = ts
	return nil
}

func scanTags(rows *sql.Rows) ([]model.TranslationTag, error) {
	tags := make([]model.TranslationTag, 0)
	for rows.Next() {
		var (
			t    model.TranslationTag
			desc sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Name, &desc, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		t.Description = stringPtr(desc)
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
