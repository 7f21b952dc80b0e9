package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the shared database connection
var DB *sqlx.DB

// DefaultFolder is seeded on first startup so the app always has a place to
// file phrases into.
const DefaultFolder = "My Phrases"

// Connect establishes the database connection. When DATABASE_URL is set the
// app talks to PostgreSQL; otherwise it falls back to a local SQLite file.
func Connect() error {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return ConnectTo("postgres", url)
	}

	dbPath := os.Getenv("SQLITE_PATH")
	if dbPath == "" {
		dataDir := "data"
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		dbPath = filepath.Join(dataDir, "engstudy.db")
	}
	return ConnectTo("sqlite3", dbPath)
}

// ConnectTo opens the given driver/DSN, applies the schema and seeds the
// default folder. Tests use it with an in-memory SQLite DSN.
func ConnectTo(driver, dsn string) error {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite3" {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	DB = db

	if err := initializeSchema(); err != nil {
		return err
	}
	return seedDefaultFolder()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	schema := schemaSQLite
	if DB.DriverName() == "postgres" {
		schema = schemaPostgres
	}
	if _, err := DB.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// seedDefaultFolder inserts the default folder. Safe to run any number of
// times: a duplicate insert is a no-op, not an error.
func seedDefaultFolder() error {
	query := DB.Rebind("INSERT INTO folders (name) VALUES (?) ON CONFLICT (name) DO NOTHING")
	if _, err := DB.Exec(query, DefaultFolder); err != nil {
		return fmt.Errorf("failed to seed default folder: %w", err)
	}
	return nil
}
