package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // Register file source driver
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// RunMigrations executes database migrations from the specified path
// (e.g., "file://./migrations"). ErrNoChange is not treated as a failure.
func RunMigrations(databaseURL, migrationsPath string) error {
	connConfig, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Same CA handling as the main connection pool
	tlsConfig, err := configureTLS()
	if err != nil {
		return fmt.Errorf("failed to configure TLS: %w", err)
	}
	if tlsConfig != nil {
		connConfig.TLSConfig = tlsConfig
	}

	db := stdlib.OpenDB(*connConfig)
	defer db.Close()

	if pingErr := db.Ping(); pingErr != nil {
		return fmt.Errorf("failed to ping database: %w", pingErr)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
