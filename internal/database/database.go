// Package database owns the local sqlite file that backs the session store.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB is the global database connection
var DB *sql.DB

// Config holds database configuration
type Config struct {
	Path string
}

// pragmas applied to every connection
var pragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
}

// dsn builds the modernc connection string for path
func dsn(path string) string {
	s := path
	for i, p := range pragmas {
		if i == 0 {
			s += "?"
		} else {
			s += "&"
		}
		s += "_pragma=" + p
	}
	return s
}

// Open connects to the local database and brings its schema up to date
func Open(cfg Config) error {
	// The token file may live in a directory that does not exist yet
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(cfg.Path))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// sql.Open is lazy; fail here rather than on the first token read
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	DB = db
	if err := migrate(); err != nil {
		Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}
	err := DB.Close()
	DB = nil
	return err
}

// migration is one schema step, applied at most once
type migration struct {
	name string
	up   string
}

var migrations = []migration{
	{
		name: "001_create_local_storage",
		up: `
			CREATE TABLE local_storage (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
}

// migrate applies every pending migration in order
func migrate() error {
	// Bookkeeping table
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	applied, err := appliedMigrations()
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.name] {
			continue
		}
		if err := apply(m); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.name, err)
		}
	}

	return nil
}

// appliedMigrations returns the names already recorded
func appliedMigrations() (map[string]bool, error) {
	rows, err := DB.Query("SELECT name FROM migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

// apply runs a migration and records it in one transaction
func apply(m migration) error {
	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.up); err != nil {
		return err
	}

	// Record it so the next Open skips it
	if _, err := tx.Exec("INSERT INTO migrations (name) VALUES (?)", m.name); err != nil {
		return err
	}

	return tx.Commit()
}
