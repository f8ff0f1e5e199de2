// Package audit is an append-only trail of outbound notifications and host
// Report* calls, backed by SQLite. It is NOT restriction persistence (the
// engine's Non-goals exclude that): restrictions live only in
// internal/restriction.Store for the engine's process lifetime, and nothing
// here is ever read back into that store. Grounded on the teacher's
// internal/foreign/slug_io_db.go database/sql + go-sqlite3 usage.
package audit

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Trail wraps a single-file SQLite database recording every notification
// fan-out and every Report* call the facade processes.
type Trail struct {
	db *sql.DB
}

// Open creates (or reopens) the audit database at path and ensures its
// schema exists.
func Open(path string) (*Trail, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("audit: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("audit: ping %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("audit: migrate schema: %w", err)
	}
	return &Trail{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS notifications (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	at INTEGER NOT NULL,
	channel INTEGER NOT NULL,
	message TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	at INTEGER NOT NULL,
	kind TEXT NOT NULL,
	detail TEXT NOT NULL
);
`

// RecordNotification logs one notify-channel fan-out.
func (t *Trail) RecordNotification(channel int, message string) error {
	_, err := t.db.Exec(
		`INSERT INTO notifications (at, channel, message) VALUES (?, ?, ?)`,
		time.Now().Unix(), channel, message,
	)
	return err
}

// RecordReport logs one host-originated Report* call (ReportSit,
// ReportItemAttached, etc.) by its kind name and a free-form detail string.
func (t *Trail) RecordReport(kind string, detail string) error {
	_, err := t.db.Exec(
		`INSERT INTO reports (at, kind, detail) VALUES (?, ?, ?)`,
		time.Now().Unix(), kind, detail,
	)
	return err
}

// Recent returns the last n notification messages, most recent first.
func (t *Trail) Recent(n int) ([]string, error) {
	rows, err := t.db.Query(`SELECT message FROM notifications ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}

func (t *Trail) Close() error { return t.db.Close() }
