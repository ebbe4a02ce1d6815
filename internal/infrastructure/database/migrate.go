package database

import (
	"embed"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies every pending up migration.
// It reports whether the schema version changed.
func Migrate(cfg *DBConfig) (bool, error) {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return false, fmt.Errorf("open migrations: %w", err)
	}

	// golang-migrate selects the pgx/v5 driver by URL scheme
	dsn := "pgx5" + strings.TrimPrefix(cfg.DSN(), "postgres")
	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return false, fmt.Errorf("init migrations: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Printf("[MIGRATE] close: source=%v db=%v", srcErr, dbErr)
		}
	}()

	before, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return false, fmt.Errorf("read schema version: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Printf("[MIGRATE] Schema up to date (version %d)", before)
			return false, nil
		}
		return false, fmt.Errorf("apply migrations: %w", err)
	}

	after, _, _ := m.Version()
	log.Printf("[MIGRATE] Schema migrated %d -> %d", before, after)
	return true, nil
}
