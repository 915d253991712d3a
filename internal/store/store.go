// Package store persists sessions and responses in SQLite using the
// pure Go driver. Repo interfaces are declared by the session package;
// this package supplies the durable implementations.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and hands out repositories.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies recommended
// pragmas, and runs migration.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying handle for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Sessions returns the session repository backed by this store.
func (s *Store) Sessions() *SessionRepo {
	return &SessionRepo{db: s.db}
}

// Responses returns the response repository backed by this store.
func (s *Store) Responses() *ResponseRepo {
	return &ResponseRepo{db: s.db}
}

// applyPragmas configures SQLite for concurrent request handling.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// migrate creates the schema. The partial unique index backs the
// at-most-one-InProgress-session-per-pair invariant at the storage
// layer; the manager's keyed locks back it at the service layer.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id               TEXT PRIMARY KEY,
			user_id          TEXT NOT NULL,
			assessment_id    TEXT NOT NULL,
			state            TEXT NOT NULL,
			cultural_context TEXT NOT NULL DEFAULT '',
			started_at       TEXT NOT NULL,
			completed_at     TEXT,
			completion_pct   REAL NOT NULL DEFAULT 0,
			profile_json     TEXT
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS sessions_live_pair
			ON sessions (user_id, assessment_id) WHERE state = 'in_progress'`,
		`CREATE INDEX IF NOT EXISTS sessions_by_assessment
			ON sessions (assessment_id)`,
		`CREATE TABLE IF NOT EXISTS responses (
			session_id       TEXT NOT NULL,
			question_id      TEXT NOT NULL,
			value            REAL,
			text             TEXT NOT NULL DEFAULT '',
			skipped          INTEGER NOT NULL DEFAULT 0,
			response_time_ms INTEGER NOT NULL DEFAULT 0,
			confidence       INTEGER NOT NULL DEFAULT 0,
			updated_at       TEXT NOT NULL,
			PRIMARY KEY (session_id, question_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// the GIFTWISE_DB environment variable, then $XDG_DATA_HOME, then
// ~/.local/share.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("GIFTWISE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "giftwise", "giftwise.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
