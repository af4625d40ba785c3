// Package migrations embeds the SQL migration files for the SQL-backed
// gateways so they can be applied with the goose programmatic API from the
// server bootstrap, the tripctl CLI, and tests.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// FS holds all *.sql migration files embedded at compile time, one
// directory per dialect.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// DialectFS returns the migration files for the given goose dialect.
func DialectFS(dialect goose.Dialect) (fs.FS, error) {
	switch dialect {
	case goose.DialectPostgres:
		return fs.Sub(FS, "postgres")
	case goose.DialectSQLite3:
		return fs.Sub(FS, "sqlite")
	}
	return nil, fmt.Errorf("migrations: unsupported dialect %q", dialect)
}

// NewProvider returns a goose provider for db using the embedded files of dialect.
func NewProvider(db *sql.DB, dialect goose.Dialect) (*goose.Provider, error) {
	fsys, err := DialectFS(dialect)
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(dialect, db, fsys)
}

// Up applies every pending migration and returns how many were applied.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect) (int, error) {
	provider, err := NewProvider(db, dialect)
	if err != nil {
		return 0, fmt.Errorf("migrations.Up: create provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrations.Up: %w", err)
	}
	return len(results), nil
}
