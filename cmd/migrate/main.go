package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/saturnino-fabrica-de-software/aivi/internal/config"
	"github.com/saturnino-fabrica-de-software/aivi/internal/database"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Flags
	action := flag.String("action", "up", "Migration action: up, down, version, force")
	steps := flag.Int("steps", 0, "Number of migration steps (for force action)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Migrations only apply to the postgres driver
	if cfg.StorageDriver != config.StoragePostgres {
		return fmt.Errorf("migrations require STORAGE_DRIVER=postgres, got %q", cfg.StorageDriver)
	}

	dsn := cfg.DatabaseURL
	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}

	// Connect to database using database/sql (required by golang-migrate)
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Verify connection
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	logger := config.NewLogger(cfg.Environment)
	logger.Info("connected to database", slog.String("database", connConfig.Database))

	// Create migrator
	migrator, err := database.NewMigrator(db, connConfig.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() { _ = migrator.Close() }()

	// Execute action
	switch *action {
	case "up":
		version, err := migrator.Up()
		if err != nil {
			return fmt.Errorf("migration up failed: %w", err)
		}
		fmt.Printf("identities schema at version %d\n", version)

	case "down":
		version, err := migrator.Down()
		if err != nil {
			return fmt.Errorf("migration down failed: %w", err)
		}
		fmt.Printf("identities schema at version %d\n", version)

	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		if dirty {
			fmt.Printf("Current version: %d (DIRTY - migration incomplete, use -action force)\n", version)
		} else {
			fmt.Printf("Current version: %d\n", version)
		}

	case "force":
		if *steps == 0 {
			return fmt.Errorf("steps flag is required for force action")
		}
		if err := migrator.Force(*steps); err != nil {
			return fmt.Errorf("force migration failed: %w", err)
		}

	default:
		return fmt.Errorf("invalid action: %s (use: up, down, version, force)", *action)
	}

	return nil
}
