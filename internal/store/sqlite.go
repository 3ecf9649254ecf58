package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// DefaultDSN is the embedded store used when no connection string is
// configured.
const DefaultDSN = "file:natal_chart.db"

const schema = `
CREATE TABLE IF NOT EXISTS interpretations (
	key  TEXT PRIMARY KEY,
	text TEXT NOT NULL
);`

// SQLite is a file-backed interpretation store on the pure-Go driver.
// SQLite serves unlimited concurrent readers; the request path never writes.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at dsn and ensures the
// schema exists.
func OpenSQLite(dsn string) (*SQLite, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open interpretation store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init interpretation schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

// Lookup returns the text for key. Absence is reported, not an error.
func (s *SQLite) Lookup(ctx context.Context, key string) (string, bool, error) {
	var text string
	err := s.db.QueryRowContext(ctx,
		`SELECT text FROM interpretations WHERE key = ?`, key).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("interpretation store read: %w", err)
	}
	return text, true, nil
}

// Put inserts text for key, keeping any existing content. Used only by the
// seed procedure, never during request handling.
func (s *SQLite) Put(ctx context.Context, key, text string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interpretations (key, text) VALUES (?, ?)
		 ON CONFLICT(key) DO NOTHING`, key, text)
	if err != nil {
		return fmt.Errorf("interpretation store write: %w", err)
	}
	return nil
}
