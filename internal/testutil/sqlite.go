// Package testutil provides fixtures shared by repository and service tests.
package testutil

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/astrochat/internal/server/migrations"
)

// NewSQLiteDB opens a private in-memory SQLite database with the full schema
// applied. The database is closed when the test ends.
func NewSQLiteDB(t testing.TB) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// the in-memory database lives as long as one connection stays open
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := migrations.Up(context.Background(), db, goose.DialectSQLite3); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}
