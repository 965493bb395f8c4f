// Package testutil provides seeded SQLite datastores for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easypresenter/easypresenter/internal/infrastructure/sqlite"
)

// NewScriptureDB creates a migrated scripture database in a temp directory.
// It is closed when the test ends.
func NewScriptureDB(t *testing.T) *sqlite.DB {
	t.Helper()
	return newDB(t, "biblias.db", sqlite.ScriptureSchema)
}

// NewSongsDB creates a migrated song database in a temp directory. It is
// closed when the test ends.
func NewSongsDB(t *testing.T) *sqlite.DB {
	t.Helper()
	return newDB(t, "cantos.db", sqlite.SongsSchema)
}

func newDB(t *testing.T, name string, schema sqlite.Schema) *sqlite.DB {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), name), schema)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
