// Package store persists courses, schedules, lesson bodies, quizzes,
// and the LLM request log in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

const schemaDDL = `
CREATE TABLE IF NOT EXISTS courses (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS chapters (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	course_id INTEGER NOT NULL REFERENCES courses(id),
	position  INTEGER NOT NULL,
	title     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS lessons (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	chapter_id INTEGER NOT NULL REFERENCES chapters(id),
	position   INTEGER NOT NULL,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS schedule (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	course_id   INTEGER NOT NULL REFERENCES courses(id),
	date        TEXT NOT NULL,
	task_type   TEXT NOT NULL,
	description TEXT NOT NULL,
	chapter_id  INTEGER NOT NULL REFERENCES chapters(id),
	lesson_id   INTEGER REFERENCES lessons(id)
);

CREATE INDEX IF NOT EXISTS idx_schedule_date ON schedule(date);

CREATE TABLE IF NOT EXISTS todays_tasks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	schedule_id INTEGER NOT NULL REFERENCES schedule(id),
	date        TEXT NOT NULL,
	completed   INTEGER NOT NULL DEFAULT 0,
	UNIQUE(schedule_id, date)
);

CREATE TABLE IF NOT EXISTS quizzes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	quiz_type  TEXT NOT NULL,
	chapter_id INTEGER NOT NULL REFERENCES chapters(id),
	lesson_id  INTEGER,
	date       TEXT NOT NULL,
	position   INTEGER NOT NULL,
	question   TEXT NOT NULL,
	options    TEXT NOT NULL,
	answer     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quizzes_scope ON quizzes(quiz_type, chapter_id, lesson_id, date);

CREATE TABLE IF NOT EXISTS llm_requests (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at    TEXT NOT NULL DEFAULT (datetime('now')),
	provider      TEXT NOT NULL,
	model         TEXT NOT NULL,
	purpose       TEXT NOT NULL,
	input_tokens  INTEGER NOT NULL,
	output_tokens INTEGER NOT NULL,
	latency_ms    INTEGER NOT NULL,
	success       INTEGER NOT NULL,
	error         TEXT NOT NULL DEFAULT ''
);
`

// Store is the SQLite-backed persistence layer.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?%s", url.PathEscape(path), url.Values{
		"_pragma": []string{
			"journal_mode(WAL)",
			"busy_timeout(5000)",
			"foreign_keys(1)",
			"synchronous(NORMAL)",
		},
	}.Encode())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite serializes writers; a single connection avoids SQLITE_BUSY
	// under concurrent request handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DefaultDBPath resolves the database location: STUDYLOOP_DB if set,
// otherwise the XDG data directory.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("STUDYLOOP_DB"); p != "" {
		return p, nil
	}
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "studyloop", "studyloop.db"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "studyloop", "studyloop.db"), nil
}

// EnsureDir creates the parent directory of a database path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// inTx runs fn inside a transaction, committing on nil error.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
