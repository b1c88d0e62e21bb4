// Package direct provides an event publisher that writes to the call-log
// store. It is the default for single-instance deployments.
package direct

import (
	"context"
	"fmt"

	"github.com/wirecall/wirecall/internal/events"
	"github.com/wirecall/wirecall/internal/storage"
)

// Publisher implements events.Publisher by appending to a CallLogStore.
type Publisher struct {
	store storage.CallLogStore
}

// NewPublisher creates a new direct event publisher.
func NewPublisher(store storage.CallLogStore) (*Publisher, error) {
	if store == nil {
		return nil, fmt.Errorf("call log store required")
	}
	return &Publisher{store: store}, nil
}

// Publish writes the event directly to storage.
func (p *Publisher) Publish(ctx context.Context, event *events.CallEvent) error {
	return p.store.AppendCallLog(ctx, &storage.CallLog{
		RequestID:    event.RequestID,
		Path:         event.Path,
		Kind:         event.Kind,
		OK:           event.OK,
		ErrorCode:    event.ErrorCode,
		ErrorMessage: event.ErrorMessage,
		DurationMS:   event.DurationMS,
		CreatedAt:    event.At,
	})
}

// Close is a no-op; the store's lifecycle belongs to its owner.
func (p *Publisher) Close() error {
	return nil
}

var _ events.Publisher = (*Publisher)(nil)
