// Package storage defines call-log persistence for the transport's
// observability hooks. The transport core never reads from a store; stores
// are fed by the server wiring and consulted out of band.
package storage

import (
	"context"
	"time"
)

// CallLog is one recorded procedure call outcome.
type CallLog struct {
	ID           string    `db:"id"`
	RequestID    string    `db:"request_id"`
	Path         string    `db:"path"`
	Kind         string    `db:"kind"`
	OK           bool      `db:"ok"`
	ErrorCode    string    `db:"error_code"`
	ErrorMessage string    `db:"error_message"`
	DurationMS   int64     `db:"duration_ms"`
	CreatedAt    time.Time `db:"created_at"`
}

// CallLogStore persists call outcomes.
type CallLogStore interface {
	// AppendCallLog records one call outcome. Implementations fill in ID and
	// CreatedAt when unset.
	AppendCallLog(ctx context.Context, entry *CallLog) error

	// ListCallLogs returns up to limit entries, most recent first.
	ListCallLogs(ctx context.Context, limit int) ([]CallLog, error)

	// Close releases underlying resources.
	Close() error
}
