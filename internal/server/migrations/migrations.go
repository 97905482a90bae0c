// Package migrations embeds the goose SQL migrations for every supported
// database dialect and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Source returns the migration files for dialect, rooted so that the .sql
// files sit at the top level.
func Source(dialect goose.Dialect) (fs.FS, error) {
	switch dialect {
	case goose.DialectPostgres:
		return fs.Sub(files, "postgres")
	case goose.DialectSQLite3:
		return fs.Sub(files, "sqlite")
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
}

// Up applies all pending migrations. Running it against an up-to-date
// schema is a no-op.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	fsys, err := Source(dialect)
	if err != nil {
		return err
	}
	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
