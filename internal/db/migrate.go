package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate brings the schema up to date. Runs before the server accepts
// requests; a schema that is already current is not an error.
func Migrate(db *sqlx.DB) error {
	var (
		driver database.Driver
		name   string
		err    error
	)

	switch db.DriverName() {
	case "pgx":
		driver, err = postgres.WithInstance(db.DB, &postgres.Config{})
		name = "postgres"
	default:
		driver, err = sqlite.WithInstance(db.DB, &sqlite.Config{})
		name = "sqlite"
	}
	if err != nil {
		return fmt.Errorf("db: create migrate driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("db: create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, name, driver)
	if err != nil {
		return fmt.Errorf("db: create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("db: apply migrations: %w", err)
	}

	return nil
}
