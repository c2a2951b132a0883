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

// TranslationKeyRepository stores translation keys and their tag associations.
type TranslationKeyRepository struct {
	sqlRepo
}

// NewTranslationKeyRepository creates a key repository over db.
func NewTranslationKeyRepository(db DBTX, caps storage.Capabilities) *TranslationKeyRepository {
	return &TranslationKeyRepository{sqlRepo: newSQLRepo(db, caps)}
}

func (r *TranslationKeyRepository) selectKeys() sq.SelectBuilder {
	return r.sb.Select("k.id", "k.key", "k.description", "k.created_at", "k.updated_at").
		From("translation_keys k")
}

func scanKey(row interface{ Scan(...any) error }) (*model.TranslationKey, error) {
	var (
		k    model.TranslationKey
		desc sql.NullString
	)
	if err := row.Scan(&k.ID, &k.Key, &desc, &k.CreatedAt, &k.UpdatedAt); err != nil {
		return nil, err
	}
	k.Description = stringPtr(desc)
	return &k, nil
}

// FirstByKey returns the oldest key whose string equals key exactly, or nil.
func (r *TranslationKeyRepository) FirstByKey(ctx context.Context, key string) (*model.TranslationKey, error) {
	return r.findOne(ctx, r.selectKeys().Where(sq.Eq{"k.key": key}).OrderBy("k.id").Limit(1))
}

// FindByID returns the key with id, or nil.
func (r *TranslationKeyRepository) FindByID(ctx context.Context, id int64) (*model.TranslationKey, error) {
	return r.findOne(ctx, r.selectKeys().Where(sq.Eq{"k.id": id}))
}

func (r *TranslationKeyRepository) findOne(ctx context.Context, q sq.SelectBuilder) (*model.TranslationKey, error) {
	row, err := r.queryRow(ctx, q)
	if err != nil {
		return nil, err
	}
	k, err := scanKey(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find translation key: %w", err)
	}
	return k, nil
}

// Create inserts a key and fills in its id and timestamps.
func (r *TranslationKeyRepository) Create(ctx context.Context, key *model.TranslationKey) error {
	ts := now()
	id, err := r.insert(ctx, r.sb.Insert("translation_keys").
		Columns("`key`", "description", "created_at", "updated_at").
		Values(key.Key, nullableString(key.Description), ts, ts))
	if err != nil {
		return fmt.Errorf("create translation key: %w", err)
	}
	key.ID = id
	key.CreatedAt = ts
	key.UpdatedAt = ts
	return nil
}

// AttachTags associates tagIDs with the key, keeping every association that already exists.
func (r *TranslationKeyRepository) AttachTags(ctx context.Context, keyID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	rows, err := r.query(ctx, r.sb.Select("translation_tag_id").
		From("translation_key_translation_tag").
		Where(sq.Eq{"translation_key_id": keyID, "translation_tag_id": tagIDs}))
	if err != nil {
		return fmt.Errorf("load key tags: %w", err)
	}
	attached := make(map[int64]struct{}, len(tagIDs))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		attached[id] = struct{}{}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	ts := now()
	insert := r.sb.Insert("translation_key_translation_tag").
		Columns("translation_key_id", "translation_tag_id", "created_at", "updated_at")
	pending := 0
	for _, tagID := range tagIDs {
		if _, ok := attached[tagID]; ok {
			continue
		}
		attached[tagID] = struct{}{}
		insert = insert.Values(keyID, tagID, ts, ts)
		pending++
	}
	if pending == 0 {
		return nil
	}
	if _, err := r.exec(ctx, insert); err != nil {
		return fmt.Errorf("attach tags: %w", err)
	}
	return nil
}

// TagsForKey returns the key's tags ordered by name.
func (r *TranslationKeyRepository) TagsForKey(ctx context.Context, keyID int64) ([]model.TranslationTag, error) {
	rows, err := r.query(ctx, r.sb.Select("t.id", "t.name", "t.description", "t.created_at", "t.updated_at").
		From("translation_tags t").
		Join("translation_key_translation_tag kt ON kt.translation_tag_id = t.id").
		Where(sq.Eq{"kt.translation_key_id": keyID}).
		OrderBy("t.name"))
	if err != nil {
		return nil, fmt.Errorf("load key tags: %w", err)
	}
	defer rows.Close()
	return scanTags(rows)
}
