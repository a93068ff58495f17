package db

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/mysql/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// goose keeps dialect and base FS in package globals.
var gooseMu sync.Mutex

func configure(dialect string) (string, error) {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	switch dialect {
	case "mysql":
		return "migrations/mysql", goose.SetDialect("mysql")
	case "sqlite":
		return "migrations/sqlite", goose.SetDialect("sqlite3")
	default:
		return "", fmt.Errorf("unsupported dialect %q", dialect)
	}
}

// Migrate applies every pending migration for dialect.
func Migrate(db *sql.DB, dialect string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dir, err := configure(dialect)
	if err != nil {
		return err
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Rollback reverts the latest migration.
func Rollback(db *sql.DB, dialect string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dir, err := configure(dialect)
	if err != nil {
		return err
	}
	return goose.Down(db, dir)
}

// Version returns the applied migration version.
func Version(db *sql.DB, dialect string) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if _, err := configure(dialect); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(db)
}
