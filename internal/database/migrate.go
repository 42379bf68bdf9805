package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrDirty is returned by Up when a previous run stopped halfway.
// Force the last good version before migrating again.
var ErrDirty = errors.New("identities schema is dirty")

// Migrator applies the embedded identities schema to Postgres
type Migrator struct {
	m      *migrate.Migrate
	logger *slog.Logger
}

// NewMigrator creates a migrator instance. golang-migrate's own progress
// lines go to logger at debug level.
func NewMigrator(db *sql.DB, dbName string, logger *slog.Logger) (*Migrator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{
		DatabaseName: dbName,
	})
	if err != nil {
		return nil, fmt.Errorf("create postgres driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dbName, driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	m.Log = &migrateLogger{logger: logger}

	return &Migrator{m: m, logger: logger}, nil
}

// Up runs all pending migrations and returns the schema version it left.
func (m *Migrator) Up() (uint, error) {
	from, dirty, err := m.Version()
	if err != nil {
		return 0, err
	}
	if dirty {
		return from, fmt.Errorf("%w at version %d", ErrDirty, from)
	}

	err = m.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("identities schema up to date", slog.Uint64("version", uint64(from)))
		return from, nil
	}
	if err != nil {
		return 0, fmt.Errorf("run migrations: %w", err)
	}

	to, _, err := m.Version()
	if err != nil {
		return 0, err
	}
	m.logger.Info("identities schema migrated",
		slog.Uint64("from", uint64(from)),
		slog.Uint64("to", uint64(to)),
	)
	return to, nil
}

// Down rolls back the last migration (DEV ONLY, drops identities) and
// returns the schema version it left. Nothing applied is a no-op.
func (m *Migrator) Down() (uint, error) {
	from, _, err := m.Version()
	if err != nil {
		return 0, err
	}
	if from == 0 {
		m.logger.Info("identities schema has nothing to roll back")
		return 0, nil
	}

	if err := m.m.Steps(-1); err != nil {
		return 0, fmt.Errorf("rollback migration: %w", err)
	}

	to, _, err := m.Version()
	if err != nil {
		return 0, err
	}
	m.logger.Warn("identities schema rolled back",
		slog.Uint64("from", uint64(from)),
		slog.Uint64("to", uint64(to)),
	)
	return to, nil
}

// Version returns the current schema version; 0 when nothing was applied
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get version: %w", err)
	}
	return version, dirty, nil
}

// Force sets the migration version without running migrations (DANGEROUS)
func (m *Migrator) Force(version int) error {
	if err := m.m.Force(version); err != nil {
		return fmt.Errorf("force version: %w", err)
	}
	m.logger.Warn("identities schema version forced", slog.Int("version", version))
	return nil
}

// Close closes the migrator
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	if srcErr != nil {
		return fmt.Errorf("close source: %w", srcErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close database: %w", dbErr)
	}
	return nil
}

// migrateLogger adapts slog to migrate.Logger
type migrateLogger struct {
	logger *slog.Logger
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "migrate"))
}

func (l *migrateLogger) Verbose() bool {
	return l.logger.Enabled(context.Background(), slog.LevelDebug)
}
