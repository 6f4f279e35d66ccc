package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFiles embed.FS

// RunMigrations applies the embedded SQL migrations for driverName via goose.
// If database is nil, it's a no-op.
func RunMigrations(ctx context.Context, database *sql.DB, driverName string) error {
	if database == nil {
		return nil
	}
	dialect, dir, err := migrationTarget(driverName)
	if err != nil {
		return err
	}
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.UpContext(ctx, database, dir)
}

// MigrationStatus prints the applied state of every migration.
func MigrationStatus(ctx context.Context, database *sql.DB, driverName string) error {
	dialect, dir, err := migrationTarget(driverName)
	if err != nil {
		return err
	}
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.StatusContext(ctx, database, dir)
}

func migrationTarget(driverName string) (dialect, dir string, err error) {
	switch driverName {
	case DriverPostgres:
		return "postgres", "migrations/postgres", nil
	case DriverSQLite:
		return "sqlite3", "migrations/sqlite", nil
	default:
		return "", "", fmt.Errorf("no migrations for driver %q", driverName)
	}
}
