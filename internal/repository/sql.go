package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/guttosm/translation-service/internal/storage"
)

// DBTX is the subset of *sql.DB and *sql.Tx the SQL repositories need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// likeEscape is the escape character used in every LIKE predicate.
const likeEscape = "!"

// sqlRepo is the base for squirrel-backed repositories.
type sqlRepo struct {
	db   DBTX
	sb   sq.StatementBuilderType
	caps storage.Capabilities
}

func newSQLRepo(db DBTX, caps storage.Capabilities) sqlRepo {
	return sqlRepo{
		db:   db,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Question),
		caps: caps,
	}
}

func (r sqlRepo) exec(ctx context.Context, b sq.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return r.db.ExecContext(ctx, query, args...)
}

func (r sqlRepo) query(ctx context.Context, b sq.Sqlizer) (*sql.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return r.db.QueryContext(ctx, query, args...)
}

func (r sqlRepo) queryRow(ctx context.Context, b sq.Sqlizer) (*sql.Row, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return r.db.QueryRowContext(ctx, query, args...), nil
}

func (r sqlRepo) insert(ctx context.Context, b sq.InsertBuilder) (int64, error) {
	res, err := r.exec(ctx, b)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r sqlRepo) count(ctx context.Context, b sq.SelectBuilder) (int64, error) {
	row, err := r.queryRow(ctx, b)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// containsPattern builds a LIKE pattern matching s anywhere, with wildcards in s escaped.
func containsPattern(s string) string {
	return "%" + escapeLike(s) + "%"
}

func escapeLike(s string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return r.Replace(s)
}

func likeExpr(column, pattern string) sq.Sqlizer {
	return sq.Expr(column+" LIKE ? ESCAPE '"+likeEscape+"'", pattern)
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

// now returns the current time truncated to microseconds, the finest precision both engines keep.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
