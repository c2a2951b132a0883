//go:build integration

package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/guttosm/translation-service/internal/storage"
)

var (
	sharedMongo     *MongoDBContainer
	sharedMongoErr  error
	sharedMongoOnce sync.Once

	sharedMySQL     *MySQLContainer
	sharedMySQLErr  error
	sharedMySQLOnce sync.Once
)

// GetSharedMongoDB returns the MongoDB container shared by every test in the package.
func GetSharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	sharedMongoOnce.Do(func() {
		sharedMongo, sharedMongoErr = SetupMongoDB(ctx)
	})
	return sharedMongo, sharedMongoErr
}

// GetSharedMySQL returns the MySQL container shared by every test in the package.
func GetSharedMySQL(ctx context.Context) (*MySQLContainer, error) {
	sharedMySQLOnce.Do(func() {
		sharedMySQL, sharedMySQLErr = SetupMySQL(ctx)
	})
	return sharedMySQL, sharedMySQLErr
}

// SetupTestMainWithMongoDB starts the shared MongoDB container, runs the tests and
// terminates it.
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	return runWithContainers(ctx, m, true, false)
}

// SetupTestMainWithContainers starts both shared containers.
func SetupTestMainWithContainers(ctx context.Context, m *testing.M) int {
	return runWithContainers(ctx, m, true, true)
}

func runWithContainers(ctx context.Context, m *testing.M, withMongo, withMySQL bool) int {
	if withMongo {
		if _, err := GetSharedMongoDB(ctx); err != nil {
			panic(err)
		}
	}
	if withMySQL {
		if _, err := GetSharedMySQL(ctx); err != nil {
			panic(err)
		}
	}

	code := m.Run()

	if sharedMongo != nil {
		if err := sharedMongo.Cleanup(ctx); err != nil {
			_, _ = os.Stderr.WriteString("Warning: failed to cleanup shared MongoDB container: " + err.Error() + "\n")
		}
	}
	if sharedMySQL != nil {
		if err := sharedMySQL.Cleanup(ctx); err != nil {
			_, _ = os.Stderr.WriteString("Warning: failed to cleanup shared MySQL container: " + err.Error() + "\n")
		}
	}
	return code
}

// GetSharedContainerURI returns the URI of the shared MongoDB container.
// Panics if the container is not initialized.
func GetSharedContainerURI() string {
	if sharedMongo == nil {
		panic("shared MongoDB container not initialized - call GetSharedMongoDB first")
	}
	return sharedMongo.URI
}

// SanitizeDBName turns a test name into a unique database name.
func SanitizeDBName(testName string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, testName)
	if len(sanitized) > 40 {
		sanitized = sanitized[:40]
	}
	return fmt.Sprintf("%s_%d", sanitized, time.Now().UnixNano()%1000000)
}

// NewMySQLDB creates a fresh, migrated database on the shared MySQL container and drops it
// when t ends.
func NewMySQLDB(t testing.TB, cfg storage.Config) *storage.DB {
	t.Helper()
	ctx := context.Background()
	if sharedMySQL == nil {
		t.Fatal("shared MySQL container not initialized - call GetSharedMySQL first")
	}

	name := strings.ToLower(SanitizeDBName(t.Name()))
	admin, err := sql.Open("mysql", sharedMySQL.DSN)
	require.NoError(t, err)
	defer admin.Close()
	_, err = admin.ExecContext(ctx, "CREATE DATABASE `"+name+"` CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci")
	require.NoError(t, err)

	cfg.Driver = string(storage.DialectMySQL)
	cfg.DSN = sharedMySQL.DSN + name
	db, err := storage.Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
		if cleanup, err := sql.Open("mysql", sharedMySQL.DSN); err == nil {
			_, _ = cleanup.ExecContext(context.Background(), "DROP DATABASE `"+name+"`")
			_ = cleanup.Close()
		}
	})

	require.NoError(t, db.Migrate(ctx))
	return db
}
