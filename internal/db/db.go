// Package db stores per-frame render statistics in a SQLite frame log.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA temp_store=MEMORY",
}

// DB is a frame log. Each DB value writes under its own session id, so
// several runs can share one file.
type DB struct {
	*sql.DB
	path    string
	session string
}

// Open opens (creating if needed) the SQLite database at path and applies
// the connection pragmas. Call MigrateUp before recording frames.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	for _, p := range pragmas {
		if _, err := sqlDB.Exec(p); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("apply %q: %w", p, err)
		}
	}
	return &DB{DB: sqlDB, path: path, session: uuid.New().String()}, nil
}

// Session returns the id stamped on every frame this DB records.
func (db *DB) Session() string {
	return db.session
}

// Path returns the file the database was opened from.
func (db *DB) Path() string {
	return db.path
}

// StartSession records which tool and sink this session is driving.
func (db *DB) StartSession(tool, sink string, at time.Time) error {
	_, err := db.Exec(
		`INSERT INTO sessions (session_id, tool, sink, started_at_ns) VALUES (?, ?, ?, ?)`,
		db.session, tool, sink, at.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}
