package repomanager

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithSQLitePragmas(t *testing.T) {
	assert.Equal(t, "a.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", withSQLitePragmas("a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", withSQLitePragmas("file:a.db?mode=rwc"))
	assert.Equal(t, "a.db?_pragma=journal_mode(WAL)", withSQLitePragmas("a.db?_pragma=journal_mode(WAL)"))
}

func TestOpen_SQLiteAndMigrate(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "astro.db")

	db, err := Open(ctx, DriverSQLite, dsn)
	require.NoError(t, err)
	defer db.Close()

	m, err := New(DriverSQLite)
	require.NoError(t, err)
	require.NoError(t, m.RunMigrations(ctx, db))
	require.NoError(t, m.RunMigrations(ctx, db))

	ok, err := m.Users(db).Exists(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "x")
	assert.Error(t, err)
}

func TestOpen_SQLiteCreatesParentDir(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "data", "nested", "astro.db")

	db, err := Open(context.Background(), DriverSQLite, dsn)
	require.NoError(t, err)
	defer db.Close()

	assert.DirExists(t, filepath.Dir(dsn))
}
