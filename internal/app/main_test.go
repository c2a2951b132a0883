//go:build integration

package app

import (
	"context"
	"os"
	"testing"

	"github.com/guttosm/translation-service/internal/testutil"
)

// TestMain starts the MongoDB container shared by the log store tests of this package.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}
