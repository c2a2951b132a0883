// Package storage opens the relational database that holds locales, keys, values, tags,
// revisions and users, and describes what the underlying engine can do.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/rs/zerolog/log"

	// Registered drivers: "mysql" and "sqlite".
	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Dialect names a supported SQL engine.
type Dialect string

const (
	// DialectSQLite is the embedded, pure-Go engine used by default and in tests.
	DialectSQLite Dialect = "sqlite"
	// DialectMySQL is the networked engine used in production deployments.
	DialectMySQL Dialect = "mysql"
)

// ErrUnsupportedDialect is returned by Open for an unknown driver name.
var ErrUnsupportedDialect = errors.New("unsupported database dialect")

// ParseDialect maps a configured driver name to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "mysql", "mariadb":
		return DialectMySQL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDialect, name)
	}
}

// Capabilities are the engine features query construction is allowed to rely on.
// They are resolved once in Open and never derived from the driver name afterwards.
type Capabilities struct {
	SupportsFullTextSearch  bool
	SupportsJSONAggregation bool
	Functions               Functions
}

// Functions holds the engine-specific SQL spellings used by repositories.
type Functions struct {
	// JSONObjectAgg aggregates (name, value) pairs into one JSON object.
	JSONObjectAgg string
	// CharLength counts characters, not bytes.
	CharLength string
	// FullTextMatch is a predicate format with one %s for the column and one placeholder
	// taking a boolean-mode query.
	FullTextMatch string
	// FullTextMinTokenLen is the shortest word the full-text index stores.
	FullTextMinTokenLen int
}

// Config holds database connection settings.
type Config struct {
	Driver                 string
	DSN                    string
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetime        time.Duration
	DisableFullText        bool
	DisableJSONAggregation bool
}

// DB wraps a connection pool together with its dialect and capabilities.
type DB struct {
	*sql.DB
	dialect      Dialect
	capabilities Capabilities
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.DSN
	switch dialect {
	case DialectSQLite:
		dsn = sqliteDSN(dsn)
	case DialectMySQL:
		dsn = mysqlDSN(dsn)
	}

	sqlDB, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	if dialect == DialectSQLite {
		// One connection serializes writers and keeps ":memory:" databases shared.
		sqlDB.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.ConnMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	caps := resolveCapabilities(dialect)
	if cfg.DisableFullText {
		caps.SupportsFullTextSearch = false
	}
	if cfg.DisableJSONAggregation {
		caps.SupportsJSONAggregation = false
	}

	log.Info().
		Str("dialect", string(dialect)).
		Bool("full_text", caps.SupportsFullTextSearch).
		Bool("json_aggregation", caps.SupportsJSONAggregation).
		Msg("Connected to database")

	return &DB{DB: sqlDB, dialect: dialect, capabilities: caps}, nil
}

func resolveCapabilities(dialect Dialect) Capabilities {
	switch dialect {
	case DialectMySQL:
		return Capabilities{
			SupportsFullTextSearch:  true,
			SupportsJSONAggregation: true,
			Functions: Functions{
				JSONObjectAgg:       "JSON_OBJECTAGG",
				CharLength:          "CHAR_LENGTH",
				FullTextMatch:       "MATCH(%s) AGAINST (? IN BOOLEAN MODE)",
				FullTextMinTokenLen: 3,
			},
		}
	case DialectSQLite:
		return Capabilities{
			SupportsJSONAggregation: true,
			Functions: Functions{
				JSONObjectAgg: "json_group_object",
				CharLength:    "length",
			},
		}
	default:
		return Capabilities{Functions: Functions{CharLength: "length"}}
	}
}

func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = "file:translations.db"
	}
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// mysqlDefaults are added to a MySQL DSN unless the operator set them.
var mysqlDefaults = []struct{ key, value string }{
	{"parseTime", "true"},
	{"loc", "UTC"},
}

// mysqlDSN adds the missing defaults and forces clientFoundRows=true: updates report a
// row as found even when its values did not change, which the repositories rely on.
func mysqlDSN(dsn string) string {
	base, query := dsn, ""
	slash := strings.LastIndexByte(dsn, '/')
	if i := strings.IndexByte(dsn[slash+1:], '?'); i >= 0 {
		base, query = dsn[:slash+1+i], dsn[slash+2+i:]
	}

	var params []string
	set := make(map[string]bool)
	for _, kv := range strings.Split(query, "&") {
		if kv == "" {
			continue
		}
		key, _, _ := strings.Cut(kv, "=")
		if key == "clientFoundRows" {
			continue
		}
		set[key] = true
		params = append(params, kv)
	}
	for _, d := range mysqlDefaults {
		if !set[d.key] {
			params = append(params, d.key+"="+d.value)
		}
	}
	params = append(params, "clientFoundRows=true")
	return base + "?" + strings.Join(params, "&")
}

// Dialect returns the engine this pool talks to.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Capabilities returns the features resolved at startup.
func (db *DB) Capabilities() Capabilities {
	return db.capabilities
}

// Builder returns a squirrel statement builder for this database.
func (db *DB) Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// HealthCheck verifies the database is reachable.
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

// WithTx runs fn inside a transaction. The transaction is committed when fn returns nil
// and rolled back when fn returns an error or panics.
func (db *DB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("Failed to roll back transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
