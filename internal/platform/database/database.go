package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"time"

	"quiz_engine/internal/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver
)

var DB *sql.DB

// Connect opens the configured database, applies the schema and stores the
// handle in DB. Any failure is fatal.
func Connect() {
	var err error
	DB, err = Open(config.AppConfig.DBDriver, config.AppConfig.DSN())
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err = Migrate(ctx, DB, config.AppConfig.DBDriver); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	slog.Info("Successfully connected to database", "driver", config.AppConfig.DBDriver)
}

func Close() {
	if DB != nil {
		DB.Close()
		slog.Info("Database connection closed.")
	}
}

// Open returns a verified connection pool for driver ("postgres" or "sqlite").
func Open(driver, dsn string) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch driver {
	case config.DriverPostgres:
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	case config.DriverSQLite:
		db, err = sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_foreign_keys=on")
		if err != nil {
			return nil, err
		}
		// sqlite allows a single writer.
		db.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

// Migrate creates the tables and indexes if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	var statements []string
	switch driver {
	case config.DriverPostgres:
		statements = postgresSchema
	case config.DriverSQLite:
		statements = sqliteSchema
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
