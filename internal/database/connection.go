package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the database connection handle. It is created once at
// startup and passed explicitly to every repository; there is no
// package-level connection.
type Store struct {
	db *sqlx.DB
}

// Connect opens the database and ensures the schema exists. The driver
// is "sqlite3" (default) or "postgres"; dsn is a file path for sqlite
// and a connection URL for postgres.
func Connect(driver, dsn string) (*Store, error) {
	if driver == "" {
		driver = "sqlite3"
	}

	if driver == "sqlite3" && dsn != ":memory:" {
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %v", err)
			}
		}
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if driver == "sqlite3" {
		// SQLite doesn't support multiple writers
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %v", err)
		}
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	s := &Store{db: db}
	if err := s.initializeSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DriverName returns the name of the underlying SQL driver.
func (s *Store) DriverName() string {
	return s.db.DriverName()
}

// initializeSchema creates necessary tables and indexes if they don't exist
func (s *Store) initializeSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS categories (
			name TEXT NOT NULL,
			PRIMARY KEY (name)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create categories table: %v", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS pools (
			id INTEGER NOT NULL PRIMARY KEY,
			category_name TEXT,
			FOREIGN KEY (category_name) REFERENCES categories(name) ON DELETE SET NULL ON UPDATE CASCADE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create pools table: %v", err)
	}

	// AUTOINCREMENT is sqlite-only; postgres gets a sequence-backed id
	cardID := "id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT"
	if s.db.DriverName() == "postgres" {
		cardID = "id SERIAL PRIMARY KEY"
	}
	_, err = s.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS cards (
			%s,
			front TEXT NOT NULL DEFAULT '',
			back TEXT NOT NULL DEFAULT '',
			front_image TEXT NOT NULL DEFAULT '',
			back_image TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL DEFAULT 0,
			pool_id INTEGER,
			category_name TEXT,
			FOREIGN KEY (pool_id) REFERENCES pools(id) ON DELETE SET NULL ON UPDATE CASCADE,
			FOREIGN KEY (category_name) REFERENCES categories(name) ON DELETE SET NULL ON UPDATE CASCADE
		)
	`, cardID))
	if err != nil {
		return fmt.Errorf("failed to create cards table: %v", err)
	}

	for _, idx := range []string{
		"CREATE INDEX IF NOT EXISTS cards_pool_id_idx ON cards(pool_id)",
		"CREATE INDEX IF NOT EXISTS cards_category_name_idx ON cards(category_name)",
		"CREATE INDEX IF NOT EXISTS pools_category_name_idx ON pools(category_name)",
	} {
		if _, err := s.db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %v", err)
		}
	}

	return nil
}
