// Package sqldb provides a SQLite-backed CallLogStore.
package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/wirecall/wirecall/internal/storage"
)

// Store is a SQL implementation of storage.CallLogStore.
type Store struct {
	db *sqlx.DB
}

var _ storage.CallLogStore = (*Store)(nil)

// pragmas applied at open time. WAL keeps concurrent appenders from
// serializing on the writer lock.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
}

// New opens (or creates) the database at path and initializes the schema.
func New(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute pragma: %w", err)
		}
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS call_logs (
id TEXT PRIMARY KEY,
request_id TEXT NOT NULL,
path TEXT NOT NULL,
kind TEXT NOT NULL,
ok INTEGER NOT NULL,
error_code TEXT NOT NULL DEFAULT '',
error_message TEXT NOT NULL DEFAULT '',
duration_ms INTEGER NOT NULL DEFAULT 0,
created_at TIMESTAMP NOT NULL
)`)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_call_logs_created_at ON call_logs(created_at)`)
	return err
}

func (s *Store) AppendCallLog(ctx context.Context, entry *storage.CallLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO call_logs (id, request_id, path, kind, ok, error_code, error_message, duration_ms, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.RequestID, entry.Path, entry.Kind, entry.OK,
		entry.ErrorCode, entry.ErrorMessage, entry.DurationMS, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append call log: %w", err)
	}
	return nil
}

func (s *Store) ListCallLogs(ctx context.Context, limit int) ([]storage.CallLog, error) {
	if limit <= 0 {
		limit = 100
	}

	var entries []storage.CallLog
	err := s.db.SelectContext(ctx, &entries,
		`SELECT id, request_id, path, kind, ok, error_code, error_message, duration_ms, created_at
FROM call_logs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list call logs: %w", err)
	}
	return entries, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
