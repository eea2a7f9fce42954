package database

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"toy_store_backend/internal/config"
	"toy_store_backend/pkg/utils"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// Connect opens the connection pool and verifies it with a ping.
func Connect(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	utils.LogInfo("Successfully connected to the database", map[string]interface{}{"host": cfg.Host, "db": cfg.Name})
	return db, nil
}

// ApplyMigrations runs every pending up-migration found in migrationsPath.
func ApplyMigrations(db *sql.DB, migrationsPath string) error {
	if migrationsPath == "" {
		utils.LogInfo("No migrations path provided, skipping schema migrations")
		return nil
	}
	abs, err := filepath.Abs(migrationsPath)
	if err != nil {
		return fmt.Errorf("could not resolve migrations path %s: %w", migrationsPath, err)
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+filepath.ToSlash(abs), "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not load migrations from %s: %w", abs, err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}
	version, dirty, _ := m.Version()
	utils.LogInfo("Database schema up to date", map[string]interface{}{"version": version, "dirty": dirty})
	return nil
}
