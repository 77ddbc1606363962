// Package audit records tool invocations in a local SQLite database.
//
// The log is an optional observer on the registry: it is only created
// when a database path is configured, and every failure is logged and
// swallowed — serving the tool call is the primary concern, the audit
// trail is best-effort.
package audit

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/zonetools/zonebridge/internal/errs"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

const schema = `
CREATE TABLE IF NOT EXISTS invocations (
	id         TEXT PRIMARY KEY,
	tool       TEXT NOT NULL,
	ok         INTEGER NOT NULL,
	error_code TEXT NOT NULL DEFAULT '',
	duration_ms INTEGER NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invocations_tool ON invocations(tool);
`

// Log is a SQLite-backed invocation log.
type Log struct {
	db *sql.DB
}

// Open creates or opens the audit database at path and ensures the
// schema exists.
func Open(path string) (*Log, error) {
	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening audit db %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating audit schema: %w", err)
	}
	return &Log{db: db}, nil
}

// Close releases the database handle.
func (l *Log) Close() error { return l.db.Close() }

// OnInvoke records one invocation. Implements tools.Observer.
// Best-effort: write failures are logged, never propagated.
func (l *Log) OnInvoke(tool string, callErr error, elapsed time.Duration) {
	ok := 1
	code := ""
	if callErr != nil {
		ok = 0
		code = string(errs.CodeOf(callErr))
	}

	_, err := l.db.Exec(
		`INSERT INTO invocations (id, tool, ok, error_code, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), tool, ok, code,
		elapsed.Milliseconds(), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		log.Printf("WARNING: audit: recording %s invocation: %v", tool, err)
	}
}

// Record is one row of the invocation log.
type Record struct {
	ID        string
	Tool      string
	OK        bool
	ErrorCode string
	Duration  time.Duration
	CreatedAt string
}

// Recent returns up to n records ordered newest first.
func (l *Log) Recent(n int) ([]Record, error) {
	rows, err := l.db.Query(
		`SELECT id, tool, ok, error_code, duration_ms, created_at
		 FROM invocations ORDER BY created_at DESC, id LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var ok, durMS int64
		if err := rows.Scan(&r.ID, &r.Tool, &ok, &r.ErrorCode, &durMS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning audit row: %w", err)
		}
		r.OK = ok == 1
		r.Duration = time.Duration(durMS) * time.Millisecond
		out = append(out, r)
	}
	return out, rows.Err()
}
