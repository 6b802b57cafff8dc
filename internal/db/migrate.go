package db

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations brings the schema up to date from the embedded SQL files.
// It uses its own short-lived connection so the pgx pool stays untouched.
func RunMigrations(dsn string, logger *log.Logger) error {
	return runMigrations(dsn, migrationsFS, "migrations", logger)
}

func runMigrations(dsn string, files fs.FS, dir string, logger *log.Logger) error {
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	src, err := iofs.New(files, dir)
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	drv, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", drv)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	switch err := m.Up(); {
	case err == nil:
		version, _, _ := m.Version()
		logger.Printf("migrations: schema migrated to version %d", version)
	case errors.Is(err, migrate.ErrNoChange):
		version, _, _ := m.Version()
		logger.Printf("migrations: schema already at version %d", version)
	default:
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
