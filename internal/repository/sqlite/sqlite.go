// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// modernc.org/sqlite is a pure Go translation of SQLite, so the binary builds
// without a C toolchain. The whole application state lives in one file
// (DB_PATH), or in memory for tests (":memory:").
//
// DATABASE/SQL OVERVIEW:
//   - sql.DB:   a connection pool (NOT a single connection!)
//   - sql.Row:  a single result row
//   - sql.Rows: multiple result rows (must be closed!)
//
// The pool is capped at ONE connection. SQLite serialises writers anyway, and
// both PRAGMAs and ":memory:" databases are per-connection: a second
// connection would see foreign keys switched off, or an empty database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/wellness-tracker/internal/apperror"
)

// DB wraps a sql.DB connection pool and provides repository methods.
// One *DB satisfies every interface in the repository package.
type DB struct {
	conn *sql.DB
	now  func() time.Time // clock for entry dates; replaced in tests
}

// New creates a new SQLite database connection and creates the schema.
//
// dbPath examples:
//   - "data/wellness.db"  → file-based database (persistent)
//   - ":memory:"          → in-memory database (tests, lost on close)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	// Ping verifies the connection actually works, so a bad path or
	// permissions issue surfaces here instead of on the first request.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write is in progress.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. Every entry's user_id
	// references users(id), so this must be on.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn, now: time.Now}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: creating schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping reports whether the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// migrate creates every table that doesn't exist yet.
//
// There is deliberately no versioning: CREATE TABLE IF NOT EXISTS makes this
// safe to run on every start, but later column changes need a manual step.
func (db *DB) migrate() error {
	for _, stmt := range schema {
		if _, err := db.conn.Exec(stmt.sql); err != nil {
			return fmt.Errorf("creating %s: %w", stmt.name, err)
		}
	}
	return nil
}

// schema is applied in order; users must exist before anything references it.
// Dates are INTEGER Unix milliseconds so range filters compare numbers.
var schema = []struct {
	name string
	sql  string
}{
	{"users table", `
		CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			bio           TEXT NOT NULL DEFAULT '',
			avatar_color  TEXT NOT NULL DEFAULT 'blue'
		);`},
	{"moods table", `
		CREATE TABLE IF NOT EXISTS moods (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			mood    TEXT NOT NULL,
			note    TEXT,
			date    INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_moods_user_date ON moods(user_id, date);`},
	{"activities table", `
		CREATE TABLE IF NOT EXISTS activities (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id  INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			activity TEXT NOT NULL,
			duration INTEGER NOT NULL,
			date     INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_activities_user_date ON activities(user_id, date);`},
	{"exercises table", `
		CREATE TABLE IF NOT EXISTS exercises (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id       INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			exercise_type TEXT NOT NULL DEFAULT 'General',
			duration      INTEGER NOT NULL,
			calories      INTEGER,
			notes         TEXT NOT NULL DEFAULT '',
			date          INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_exercises_user_date ON exercises(user_id, date);`},
	{"sleep_logs table", `
		CREATE TABLE IF NOT EXISTS sleep_logs (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id   INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			duration  REAL NOT NULL,
			quality   TEXT NOT NULL DEFAULT 'Good',
			bedtime   TEXT,
			wake_time TEXT,
			notes     TEXT NOT NULL DEFAULT '',
			date      INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sleep_logs_user_date ON sleep_logs(user_id, date);`},
	{"meditations table", `
		CREATE TABLE IF NOT EXISTS meditations (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id         INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			duration        INTEGER NOT NULL,
			meditation_type TEXT NOT NULL DEFAULT 'Mindfulness',
			mood_before     TEXT,
			mood_after      TEXT,
			notes           TEXT NOT NULL DEFAULT '',
			date            INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_meditations_user_date ON meditations(user_id, date);`},
	{"journals table", `
		CREATE TABLE IF NOT EXISTS journals (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			mood    TEXT NOT NULL DEFAULT 'neutral',
			date    INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_journals_user_date ON journals(user_id, date);`},
	{"feedback table", `
		CREATE TABLE IF NOT EXISTS feedback (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id  INTEGER REFERENCES users(id) ON DELETE SET NULL,
			category TEXT NOT NULL,
			rating   INTEGER NOT NULL,
			message  TEXT NOT NULL,
			date     INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_feedback_user_date ON feedback(user_id, date);
		CREATE INDEX IF NOT EXISTS idx_feedback_date ON feedback(date);`},
}

// insert runs an INSERT for an entry owned by userID and returns the new row id.
// A foreign-key failure means the owner doesn't exist, which callers see as
// a NotFound for the user rather than a raw constraint error.
func (db *DB) insert(ctx context.Context, resource string, userID any, query string, args ...any) (int64, error) {
	result, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		if isConstraint(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY) {
			return 0, apperror.NotFound("user", userID)
		}
		return 0, fmt.Errorf("sqlite: creating %s: %w", resource, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlite: reading %s id: %w", resource, err)
	}
	return id, nil
}

// queryList runs a SELECT and scans every row with scan.
//
// rows.Close is deferred so the single pooled connection is always released,
// and rows.Err is checked after the loop to catch mid-iteration failures.
func queryList[T any](ctx context.Context, db *DB, resource string, scan func(*sql.Rows) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing %s: %w", resource, err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning %s row: %w", resource, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating %s: %w", resource, err)
	}

	return items, nil
}

// isConstraint reports whether err is a SQLite constraint violation with
// the given extended result code.
func isConstraint(err error, code int) bool {
	var sqliteErr *sqlitedriver.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == code
	}
	return false
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// fromMillis converts a stored date back to a time in the server's zone.
func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
