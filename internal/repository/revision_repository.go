package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/storage"
)

// RevisionRepository appends and reads translation revisions. Revisions are never updated.
type RevisionRepository struct {
	sqlRepo
}

// NewRevisionRepository creates a revision repository over db.
func NewRevisionRepository(db DBTX, caps storage.Capabilities) *RevisionRepository {
	return &RevisionRepository{sqlRepo: newSQLRepo(db, caps)}
}

// Create appends a revision and fills in its id and timestamps.
func (r *RevisionRepository) Create(ctx context.Context, rev *model.TranslationRevision) error {
	ts := now()
	id, err := r.insert(ctx, r.sb.Insert("translation_revisions").
		Columns("translation_value_id", "old", "new", "user_id", "created_at", "updated_at").
		Values(rev.TranslationValueID, nullableString(rev.Old), rev.New, rev.UserID, ts, ts))
	if err != nil {
		return fmt.Errorf("create revision: %w", err)
	}
	rev.ID = id
	rev.CreatedAt = ts
	rev.UpdatedAt = ts
	return nil
}

// ListByValue returns the value's revisions, oldest first.
func (r *RevisionRepository) ListByValue(ctx context.Context, valueID int64) ([]model.TranslationRevision, error) {
	rows, err := r.query(ctx, r.sb.Select("id", "translation_value_id", "old", "new", "user_id", "created_at", "updated_at").
		From("translation_revisions").
		Where(sq.Eq{"translation_value_id": valueID}).
		OrderBy("id"))
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	revisions := make([]model.TranslationRevision, 0)
	for rows.Next() {
		var (
			rev model.TranslationRevision
			old sql.NullString
		)
		if err := rows.Scan(&rev.ID, &rev.TranslationValueID, &old, &rev.New, &rev.UserID, &rev.CreatedAt, &rev.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		rev.Old = stringPtr(old)
		revisions = append(revisions, rev)
	}
	return revisions, rows.Err()
}
