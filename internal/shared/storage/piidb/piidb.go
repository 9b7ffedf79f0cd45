// Package piidb owns the sensitive store: a SQLite database physically
// separate from the operational Postgres database. The two stores cannot
// share a transaction; callers must treat writes to each as independent
// commit points.
package piidb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // register the pure-Go sqlite driver
)

// DB wraps the sensitive-store connection.
type DB struct {
	conn *sql.DB
}

// Open opens (and creates if needed) the sensitive store at path and applies
// its schema. Use ":memory:" for an ephemeral store in tests and dev.
func Open(ctx context.Context, path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create pii db dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open pii db: %w", err)
	}
	// The sqlite driver serializes access through a single connection; more
	// than one open connection risks SQLITE_BUSY on concurrent writes.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping pii db: %w", err)
	}
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply pii schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the sensitive-store connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Conn returns the underlying sql.DB.
func (d *DB) Conn() *sql.DB {
	return d.conn
}

const schema = `
CREATE TABLE IF NOT EXISTS resume_pii (
    id TEXT PRIMARY KEY,
    resume_id TEXT NOT NULL,
    original_filename TEXT,
    file_path TEXT,
    extracted_text_dump TEXT,
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resume_pii_resume_id ON resume_pii (resume_id);
`
