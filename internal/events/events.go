// Package events defines call-outcome event publishing. Publishers are fed
// by the server wiring around the transport's hooks; the transport core
// itself never publishes.
package events

import (
	"context"
	"time"
)

// CallEvent describes one finished procedure call.
type CallEvent struct {
	RequestID    string    `json:"request_id"`
	Path         string    `json:"path"`
	Kind         string    `json:"kind"`
	OK           bool      `json:"ok"`
	ErrorCode    string    `json:"error_code,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	DurationMS   int64     `json:"duration_ms"`
	At           time.Time `json:"at"`
}

// Publisher publishes call events to some sink.
type Publisher interface {
	Publish(ctx context.Context, event *CallEvent) error
	Close() error
}
