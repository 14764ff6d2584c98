// Package store provides the SQLite-backed notes and graph store.
//
// Full-text search uses FTS5 only when built with the sqlite_fts5 tag:
//
//	go build -tags sqlite_fts5 ./cmd/app
//
// Without the tag, search falls back to a substring scan with LIKE.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	text       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS nodes (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	text TEXT NOT NULL,
	x    REAL NOT NULL DEFAULT 0,
	y    REAL NOT NULL DEFAULT 0,
	kind TEXT NOT NULL DEFAULT 'square'
);

CREATE TABLE IF NOT EXISTS edges (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	source_id INTEGER NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
	target_id INTEGER NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
	weight    REAL NOT NULL DEFAULT 1.0
);

CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_id);
CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_id);
`

// DB wraps a sql.DB with store-specific operations.
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// Open opens (or creates) the SQLite database and applies the schema.
// Table, trigger and search-index definitions are idempotent.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(coreSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply core schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply fts schema: %w", err)
	}
	return &DB{conn: conn, now: time.Now}, nil
}

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
