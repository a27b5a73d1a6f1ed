package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

// Each migration file holds exactly one statement; the driver runs without
// multiStatements.
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// Execer is satisfied by *sqlx.DB and *sql.DB.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Migrations returns the embedded migration names in the order they apply.
func Migrations() ([]string, error) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Migrate applies every embedded migration.  All statements are idempotent,
// so running it against an up-to-date schema is a no-op.
func Migrate(ctx context.Context, db Execer, logf func(format string, args ...any)) error {
	names, err := Migrations()
	if err != nil {
		return err
	}
	for _, name := range names {
		sqlBytes, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if logf != nil {
			logf("migration %s applied", name)
		}
	}
	return nil
}
