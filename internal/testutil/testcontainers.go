//go:build integration

package testutil

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
)

// MySQL credentials used by the test container. The root account can create a database per test.
const (
	mysqlUser     = "root"
	mysqlPassword = "secret"
	mysqlDatabase = "translations"
)

// MongoDBContainer wraps a MongoDB testcontainer.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

// SetupMongoDB creates and starts a MongoDB testcontainer.
// For better performance, use the shared container from test_container.go with TestMain.
func SetupMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	mongoContainer, err := mongodb.Run(ctx, "mongo:7.0")
	if err != nil {
		return nil, fmt.Errorf("failed to start MongoDB container: %w", err)
	}

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		_ = mongoContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return &MongoDBContainer{Container: mongoContainer, URI: uri}, nil
}

// Cleanup terminates the MongoDB container.
func (m *MongoDBContainer) Cleanup(ctx context.Context) error {
	if m.Container != nil {
		if err := m.Container.Terminate(ctx); err != nil {
			return fmt.Errorf("failed to terminate container: %w", err)
		}
	}
	return nil
}

// MySQLContainer wraps a MySQL testcontainer.
type MySQLContainer struct {
	Container testcontainers.Container
	// DSN points at the server without a default database.
	DSN string
}

// SetupMySQL creates and starts a MySQL testcontainer.
func SetupMySQL(ctx context.Context) (*MySQLContainer, error) {
	mysqlContainer, err := mysql.Run(ctx, "mysql:8.0",
		mysql.WithDatabase(mysqlDatabase),
		mysql.WithUsername(mysqlUser),
		mysql.WithPassword(mysqlPassword),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start MySQL container: %w", err)
	}

	host, err := mysqlContainer.Host(ctx)
	if err != nil {
		_ = mysqlContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get MySQL host: %w", err)
	}
	port, err := mysqlContainer.MappedPort(ctx, "3306/tcp")
	if err != nil {
		_ = mysqlContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get MySQL port: %w", err)
	}

	return &MySQLContainer{
		Container: mysqlContainer,
		DSN:       fmt.Sprintf("%s:%s@tcp(%s:%s)/", mysqlUser, mysqlPassword, host, port.Port()),
	}, nil
}

// Cleanup terminates the MySQL container.
func (m *MySQLContainer) Cleanup(ctx context.Context) error {
	if m.Container != nil {
		if err := m.Container.Terminate(ctx); err != nil {
			return fmt.Errorf("failed to terminate container: %w", err)
		}
	}
	return nil
}
