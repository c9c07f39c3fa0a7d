package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator drives schema migrations through golang-migrate.
type Migrator struct {
	m   *migrate.Migrate
	log *zap.Logger
}

// New wraps an existing database handle.
func New(db *sql.DB, migrationsPath string, log *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return &Migrator{m: m, log: log}, nil
}

// NewFromURL opens its own connection from a database URL.
func NewFromURL(databaseURL, migrationsPath string, log *zap.Logger) (*Migrator, error) {
	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return &Migrator{m: m, log: log}, nil
}

// Up applies every pending migration.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.log.Info("Schema already up to date")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}
	mg.logVersion("Migrations applied")
	return nil
}

// Down rolls every migration back.
func (mg *Migrator) Down() error {
	if err := mg.m.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.log.Info("No migrations to roll back")
			return nil
		}
		return fmt.Errorf("migrate down: %w", err)
	}
	mg.log.Info("All migrations rolled back")
	return nil
}

// Steps applies n migrations; negative n rolls back.
func (mg *Migrator) Steps(n int) error {
	if err := mg.m.Steps(n); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.log.Info("No migrations to apply")
			return nil
		}
		return fmt.Errorf("migrate steps(%d): %w", n, err)
	}
	mg.logVersion("Migration steps applied")
	return nil
}

// GoTo migrates up or down to an exact version.
func (mg *Migrator) GoTo(version uint) error {
	if err := mg.m.Migrate(version); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.log.Info("Already at target version", zap.Uint("version", version))
			return nil
		}
		return fmt.Errorf("migrate to version %d: %w", version, err)
	}
	mg.log.Info("Migrated to version", zap.Uint("version", version))
	return nil
}

// Version reports the current version; a fresh database reports 0, clean.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read migration version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded version without running any migration.
// Only for repairing a dirty state.
func (mg *Migrator) Force(version int) error {
	mg.log.Warn("Forcing migration version", zap.Int("version", version))
	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every object in the database.
func (mg *Migrator) Drop() error {
	mg.log.Warn("Dropping all database objects")
	if err := mg.m.Drop(); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	return nil
}

// Close releases the source and database handles.
func (mg *Migrator) Close() error {
	sourceErr, dbErr := mg.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("close migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database: %w", dbErr)
	}
	return nil
}

func (mg *Migrator) logVersion(msg string) {
	version, dirty, err := mg.m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		mg.log.Warn("Could not read migration version", zap.Error(err))
		return
	}
	mg.log.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
}
