// Package sqlite indexes pipeline runs into SQLite for ad-hoc querying of
// pages and claims across runs.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait 5 seconds before failing on lock contention.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			run_date TEXT NOT NULL,
			site TEXT NOT NULL,
			indexed_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS pages (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			slug TEXT NOT NULL,
			url TEXT NOT NULL,
			sha256 TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			h1 TEXT NOT NULL DEFAULT '',
			sections TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (run_id, slug)
		);

		CREATE TABLE IF NOT EXISTS claims (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			id TEXT NOT NULL,
			site TEXT NOT NULL DEFAULT '',
			slug TEXT NOT NULL,
			url TEXT NOT NULL,
			sha256 TEXT NOT NULL DEFAULT '',
			extracted_from TEXT NOT NULL DEFAULT '',
			page_title TEXT NOT NULL DEFAULT '',
			section_path TEXT NOT NULL DEFAULT '[]',
			claim_type TEXT NOT NULL,
			text TEXT NOT NULL,
			numbers TEXT NOT NULL DEFAULT '[]',
			durations TEXT NOT NULL DEFAULT '[]',
			flags TEXT NOT NULL DEFAULT '[]',
			observed_not_guidance INTEGER NOT NULL DEFAULT 1,
			PRIMARY KEY (run_id, id)
		);

		CREATE INDEX IF NOT EXISTS idx_claims_claim_type ON claims(claim_type);
		CREATE INDEX IF NOT EXISTS idx_claims_slug ON claims(slug);
	`

	_, err := db.db.Exec(schema)
	return err
}
