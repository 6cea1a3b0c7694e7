// Package history handles SQLite persistence of monitoring sessions.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Session summarizes one completed monitoring session.
type Session struct {
	ID          int64
	StartedAt   time.Time
	EndedAt     time.Time
	Readings    int
	MinNewtons  float64
	MaxNewtons  float64
	MeanNewtons float64
	ExportPath  string // Empty when the session was not exported
}

// Store wraps SQLite access for session history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			readings INTEGER NOT NULL,
			min_newtons REAL NOT NULL,
			max_newtons REAL NOT NULL,
			mean_newtons REAL NOT NULL,
			export_path TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a completed session and returns its id.
func (s *Store) InsertSession(ctx context.Context, sess Session) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (started_at, ended_at, readings, min_newtons, max_newtons, mean_newtons, export_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.StartedAt.Format(time.RFC3339Nano),
		sess.EndedAt.Format(time.RFC3339Nano),
		sess.Readings,
		sess.MinNewtons,
		sess.MaxNewtons,
		sess.MeanNewtons,
		sess.ExportPath,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSessions returns the most recent sessions, newest first. A limit of 0
// or less returns everything.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	query := `SELECT id, started_at, ended_at, readings, min_newtons, max_newtons, mean_newtons, export_path
		FROM sessions ORDER BY ended_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var started, ended string
		if err := rows.Scan(&sess.ID, &started, &ended, &sess.Readings,
			&sess.MinNewtons, &sess.MaxNewtons, &sess.MeanNewtons, &sess.ExportPath); err != nil {
			return nil, err
		}
		if sess.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if sess.EndedAt, err = time.Parse(time.RFC3339Nano, ended); err != nil {
			return nil, fmt.Errorf("parse ended_at: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}
