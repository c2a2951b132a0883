//go:build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/guttosm/translation-service/internal/testutil"
)

// TestMain starts one MongoDB and one MySQL container shared by every integration test in
// the package. Tests isolate themselves with a database per test.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithContainers(context.Background(), m))
}

// setupTestDBFromSharedContainer connects to a fresh log database on the shared container.
func setupTestDBFromSharedContainer(t *testing.T) *MongoDB {
	db, err := NewMongoDB(testutil.GetSharedContainerURI(), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	return db
}
