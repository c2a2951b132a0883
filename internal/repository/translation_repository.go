package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	sq "github.com/Masterminds/squirrel"

	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/storage"
)

// ExportChunkSize is the number of rows fetched per round-trip by the chunked export.
const ExportChunkSize = 1000

// TranslationRepository queries and stores translation values.
type TranslationRepository struct {
	sqlRepo
	chunkSize int
}

// NewTranslationRepository creates a translation repository over db.
func NewTranslationRepository(db DBTX, caps storage.Capabilities) *TranslationRepository {
	return &TranslationRepository{sqlRepo: newSQLRepo(db, caps), chunkSize: ExportChunkSize}
}

// WithChunkSize returns a copy of the repository that exports in chunks of n rows.
func (r *TranslationRepository) WithChunkSize(n int) *TranslationRepository {
	cp := *r
	if n > 0 {
		cp.chunkSize = n
	}
	return &cp
}

// Search returns one page of values matching filters, joined with key and locale, and the
// total number of matches. Rows are deduplicated and ordered by value id.
func (r *TranslationRepository) Search(ctx context.Context, filters model.TranslationFilters, limit, offset int) ([]model.TranslationRow, int64, error) {
	total, err := r.count(ctx, r.applyFilters(r.sb.Select("COUNT(DISTINCT v.id)"), filters))
	if err != nil {
		return nil, 0, fmt.Errorf("count translations: %w", err)
	}

	q := r.applyFilters(r.sb.Select(
		"v.id", "v.translation_key_id", "v.locale_id", "v.value",
		"k.key", "k.description", "l.code", "l.name",
		"v.created_at", "v.updated_at",
	), filters).OrderBy("v.id")
	if filters.Tag != "" {
		q = q.Distinct()
	}
	if limit > 0 {
		q = q.Limit(uint64(limit)).Offset(uint64(offset))
	}

	rows, err := r.query(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("search translations: %w", err)
	}
	defer rows.Close()

	result := make([]model.TranslationRow, 0)
	for rows.Next() {
		var (
			row  model.TranslationRow
			desc sql.NullString
		)
		if err := rows.Scan(&row.ID, &row.TranslationKeyID, &row.LocaleID, &row.Value,
			&row.Key, &desc, &row.LocaleCode, &row.LocaleName,
			&row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan translation row: %w", err)
		}
		row.KeyDescription = stringPtr(desc)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *TranslationRepository) applyFilters(q sq.SelectBuilder, f model.TranslationFilters) sq.SelectBuilder {
	q = q.From("translation_values v").
		Join("locales l ON l.id = v.locale_id").
		Join("translation_keys k ON k.id = v.translation_key_id")

	if f.Tag != "" {
		q = q.LeftJoin("translation_key_translation_tag kt ON kt.translation_key_id = k.id").
			LeftJoin("translation_tags t ON t.id = kt.translation_tag_id").
			Where(sq.Eq{"t.name": f.Tag})
	}
	if f.Key != "" {
		q = q.Where(likeExpr("k.key", containsPattern(f.Key)))
	}
	if f.Content != "" {
		q = q.Where(r.contentFilter(f.Content))
	}
	if f.Locale != "" {
		q = q.Where(sq.Eq{"l.code": f.Locale})
	}
	return q
}

// contentFilter matches values containing content. With full-text search the index also
// matches values holding every word of content as a word prefix, in any order. Short words
// are not in the index and punctuation has a meaning in boolean mode, so such queries only
// use the substring match.
func (r *TranslationRepository) contentFilter(content string) sq.Sqlizer {
	substring := likeExpr("v.value", containsPattern(content))
	if !r.caps.SupportsFullTextSearch || r.caps.Functions.FullTextMatch == "" {
		return substring
	}
	query, ok := fullTextPrefixQuery(content, r.caps.Functions.FullTextMinTokenLen)
	if !ok {
		return substring
	}
	return sq.Or{sq.Expr(fmt.Sprintf(r.caps.Functions.FullTextMatch, "v.value"), query), substring}
}

// fullTextPrefixQuery turns "welcome home" into "+welcome* +home*". It reports false when a
// word is shorter than minLen or holds anything but letters and digits.
func fullTextPrefixQuery(content string, minLen int) (string, bool) {
	words := strings.Fields(content)
	if len(words) == 0 {
		return "", false
	}
	terms := make([]string, len(words))
	for i, w := range words {
		if utf8.RuneCountInString(w) < minLen {
			return "", false
		}
		for _, c := range w {
			if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
				return "", false
			}
		}
		terms[i] = "+" + w + "*"
	}
	return strings.Join(terms, " "), true
}

// ResolveLocaleCode maps a requested code to a stored one. An exact match wins. Otherwise a
// two-letter code resolves to the oldest locale whose code starts with "<code>_". When nothing
// matches, the requested code is returned unchanged.
func (r *TranslationRepository) ResolveLocaleCode(ctx context.Context, code string) (string, error) {
	exact, err := r.firstLocaleCode(ctx, sq.Eq{"code": code})
	if err != nil {
		return "", err
	}
	if exact != "" {
		return exact, nil
	}
	if len(code) != 2 {
		return code, nil
	}

	prefixed, err := r.firstLocaleCode(ctx, likeExpr("code", escapeLike(code+"_")+"%"))
	if err != nil {
		return "", err
	}
	if prefixed != "" {
		return prefixed, nil
	}
	return code, nil
}

func (r *TranslationRepository) firstLocaleCode(ctx context.Context, where sq.Sqlizer) (string, error) {
	row, err := r.queryRow(ctx, r.sb.Select("code").From("locales").Where(where).OrderBy("id").Limit(1))
	if err != nil {
		return "", err
	}
	var code string
	err = row.Scan(&code)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("resolve locale code: %w", err)
	}
	return code, nil
}

// ExportByLocale returns every key→value pair stored for the resolved locale. Unknown locales
// yield an empty map.
func (r *TranslationRepository) ExportByLocale(ctx context.Context, localeCode string) (map[string]string, error) {
	code, err := r.ResolveLocaleCode(ctx, localeCode)
	if err != nil {
		return nil, err
	}

	if r.caps.SupportsJSONAggregation && r.caps.Functions.JSONObjectAgg != "" {
		return r.exportAggregated(ctx, code)
	}
	return r.exportChunked(ctx, code)
}

func (r *TranslationRepository) exportAggregated(ctx context.Context, code string) (map[string]string, error) {
	row, err := r.queryRow(ctx, r.sb.Select(r.caps.Functions.JSONObjectAgg+"(k.key, v.value)").
		From("translation_values v").
		Join("translation_keys k ON k.id = v.translation_key_id").
		Join("locales l ON l.id = v.locale_id").
		Where(sq.Eq{"l.code": code}))
	if err != nil {
		return nil, err
	}

	var raw sql.NullString
	if err := row.Scan(&raw); err != nil {
		return nil, fmt.Errorf("export translations: %w", err)
	}

	result := make(map[string]string)
	if !raw.Valid || raw.String == "" {
		return result, nil
	}
	if err := json.Unmarshal([]byte(raw.String), &result); err != nil {
		return nil, fmt.Errorf("decode aggregated export: %w", err)
	}
	return result, nil
}

// exportChunked pages through the locale's values ordered by key, using the last (key, id)
// seen as the cursor so each batch is a separate, bounded query.
func (r *TranslationRepository) exportChunked(ctx context.Context, code string) (map[string]string, error) {
	result := make(map[string]string)
	err := r.EachExportChunk(ctx, code, func(batch []KeyValue) error {
		for _, kv := range batch {
			result[kv.Key] = kv.Value
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// KeyValue is one exported pair.
type KeyValue struct {
	Key   string
	Value string
}

// EachExportChunk calls fn with successive batches of the locale's pairs ordered by key.
// code must already be resolved.
func (r *TranslationRepository) EachExportChunk(ctx context.Context, code string, fn func([]KeyValue) error) error {
	var (
		lastKey string
		lastID  int64
		first   = true
	)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		q := r.sb.Select("v.id", "k.key", "v.value").
			From("translation_values v").
			Join("translation_keys k ON k.id = v.translation_key_id").
			Join("locales l ON l.id = v.locale_id").
			Where(sq.Eq{"l.code": code}).
			OrderBy("k.key", "v.id").
			Limit(uint64(r.chunkSize))
		if !first {
			q = q.Where(sq.Or{
				sq.Gt{"k.key": lastKey},
				sq.And{sq.Eq{"k.key": lastKey}, sq.Gt{"v.id": lastID}},
			})
		}

		rows, err := r.query(ctx, q)
		if err != nil {
			return fmt.Errorf("export chunk: %w", err)
		}
		batch := make([]KeyValue, 0, r.chunkSize)
		for rows.Next() {
			var kv KeyValue
			if err := rows.Scan(&lastID, &kv.Key, &kv.Value); err != nil {
				rows.Close()
				return fmt.Errorf("scan export chunk: %w", err)
			}
			lastKey = kv.Key
			batch = append(batch, kv)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		if len(batch) > 0 {
			if err := fn(batch); err != nil {
				return err
			}
		}
		if len(batch) < r.chunkSize {
			return nil
		}
		first = false
	}
}

// GetExportStats summarizes the resolved locale's values. Unknown locales yield zeroes.
func (r *TranslationRepository) GetExportStats(ctx context.Context, localeCode string) (model.ExportStats, error) {
	code, err := r.ResolveLocaleCode(ctx, localeCode)
	if err != nil {
		return model.ExportStats{}, err
	}

	charLength := r.caps.Functions.CharLength
	if charLength == "" {
		charLength = "LENGTH"
	}
	row, err := r.queryRow(ctx, r.sb.Select(
		"COUNT(*)",
		"COUNT(DISTINCT v.translation_key_id)",
		"AVG("+charLength+"(v.value))",
	).
		From("translation_values v").
		Join("locales l ON l.id = v.locale_id").
		Where(sq.Eq{"l.code": code}))
	if err != nil {
		return model.ExportStats{}, err
	}

	var (
		stats model.ExportStats
		avg   sql.NullFloat64
	)
	if err := row.Scan(&stats.TotalTranslations, &stats.UniqueKeys, &avg); err != nil {
		return model.ExportStats{}, fmt.Errorf("export stats: %w", err)
	}
	if avg.Valid {
		stats.AvgValueLength = math.Round(avg.Float64*100) / 100
	}
	return stats, nil
}

var valueColumns = []string{"id", "translation_key_id", "locale_id", "value", "created_at", "updated_at"}

// Find returns the value with id, or nil.
func (r *TranslationRepository) Find(ctx context.Context, id int64) (*model.TranslationValue, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

// FindByKeyAndLocale returns the value for the pair, or nil.
func (r *TranslationRepository) FindByKeyAndLocale(ctx context.Context, keyID, localeID int64) (*model.TranslationValue, error) {
	return r.findOne(ctx, sq.Eq{"translation_key_id": keyID, "locale_id": localeID})
}

func (r *TranslationRepository) findOne(ctx context.Context, where sq.Sqlizer) (*model.TranslationValue, error) {
	row, err := r.queryRow(ctx, r.sb.Select(valueColumns...).From("translation_values").Where(where).Limit(1))
	if err != nil {
		return nil, err
	}
	var v model.TranslationValue
	err = row.Scan(&v.ID, &v.TranslationKeyID, &v.LocaleID, &v.Value, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find translation: %w", err)
	}
	return &v, nil
}

// Create inserts a value and fills in its id and timestamps.
func (r *TranslationRepository) Create(ctx context.Context, v *model.TranslationValue) error {
	ts := now()
	id, err := r.insert(ctx, r.sb.Insert("translation_values").
		Columns("translation_key_id", "locale_id", "value", "created_at", "updated_at").
		Values(v.TranslationKeyID, v.LocaleID, v.Value, ts, ts))
	if err != nil {
		return fmt.Errorf("create translation: %w", err)
	}
	v.ID = id
	v.CreatedAt = ts
	v.UpdatedAt = ts
	return nil
}

// Update persists the value text. It reports false when the row no longer exists.
func (r *TranslationRepository) Update(ctx context.Context, v *model.TranslationValue) (bool, error) {
	ts := now()
	res, err := r.exec(ctx, r.sb.Update("translation_values").
		Set("value", v.Value).
		Set("updated_at", ts).
		Where(sq.Eq{"id": v.ID}))
	if err != nil {
		return false, fmt.Errorf("update translation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	v.UpdatedAt = ts
	return n > 0, nil
}

// Delete removes the value with id and reports whether a row was deleted.
func (r *TranslationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.exec(ctx, r.sb.Delete("translation_values").Where(sq.Eq{"id": id}))
	if err != nil {
		return false, fmt.Errorf("delete translation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// LoadRelations populates v.Key, v.Locale and v.Tags.
func (r *TranslationRepository) LoadRelations(ctx context.Context, v *model.TranslationValue) error {
	keys := &TranslationKeyRepository{sqlRepo: r.sqlRepo}
	locales := &LocaleRepository{sqlRepo: r.sqlRepo}

	key, err := keys.FindByID(ctx, v.TranslationKeyID)
	if err != nil {
		return err
	}
	locale, err := locales.FindByID(ctx, v.LocaleID)
	if err != nil {
		return err
	}
	tags, err := keys.TagsForKey(ctx, v.TranslationKeyID)
	if err != nil {
		return err
	}
	v.Key = key
	v.Locale = locale
	v.Tags = tags
	return nil
}
