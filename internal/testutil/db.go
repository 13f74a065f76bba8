// Package testutil holds helpers shared by tests across the codebase.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/leadshift/internal"
)

// OpenDB returns a migrated SQLite database in a temp dir. It is closed
// when the test ends.
func OpenDB(t testing.TB) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "leads.db")
	db, err := internal.OpenDatabase(context.Background(), internal.DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, internal.RunMigrations(db, internal.DriverSQLite))
	return db
}
