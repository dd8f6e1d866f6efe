package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.db")
	sqlDB, err := Open(path)
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, Migrate(sqlDB))
	// Second run is a no-op.
	require.NoError(t, Migrate(sqlDB))

	var applied int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&applied))
	assert.Equal(t, 2, applied)

	for _, table := range []string{"users", "grid_builds"} {
		var name string
		err := sqlDB.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}
