// Package db provides the local SQLite database holding the workspace, the
// job posting page cache and match history.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// DB wraps a SQLite connection
type DB struct {
	conn *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS variants (
	id         TEXT PRIMARY KEY,
	position   INTEGER NOT NULL,
	name       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	body       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS pages (
	url        TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	html       TEXT NOT NULL,
	text       TEXT NOT NULL,
	rendered   INTEGER NOT NULL DEFAULT 0,
	fetched_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS match_runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	variant_id  TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	tokens_used INTEGER NOT NULL DEFAULT 0,
	response    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_match_runs_variant ON match_runs (variant_id, id);
`

// Open opens (creating if needed) the database at path and applies the schema
func Open(ctx context.Context, path string) (*DB, error) {
	dsn := path
	if path != MemoryPath {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		dsn = path + sep + "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer, and every :memory: connection would be a separate database
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// withTx runs fn in a transaction, committing only if fn succeeds
func (db *DB) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
