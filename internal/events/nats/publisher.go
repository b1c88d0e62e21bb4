// Package nats provides an event publisher backed by a NATS subject, for
// deployments where call outcomes feed external consumers.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/wirecall/wirecall/internal/events"
)

// DefaultSubject is used when no subject is configured.
const DefaultSubject = "wirecall.calls"

// Publisher publishes call events as JSON messages to a NATS subject.
type Publisher struct {
	nc      *nats.Conn
	subject string
	owned   bool
}

// Connect dials NATS at url and returns a publisher owning the connection.
func Connect(url, name, subject string) (*Publisher, error) {
	nc, err := nats.Connect(url, nats.Name(name))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	p := NewPublisher(nc, subject)
	p.owned = true
	return p, nil
}

// NewPublisher wraps an existing connection. The caller keeps ownership of
// the connection's lifecycle.
func NewPublisher(nc *nats.Conn, subject string) *Publisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &Publisher{nc: nc, subject: subject}
}

// Publish encodes the event and publishes it to the configured subject.
func (p *Publisher) Publish(_ context.Context, event *events.CallEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := p.nc.Publish(p.subject, data); err != nil {
		slog.Error("failed to publish call event",
			slog.String("subject", p.subject),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

// Close flushes and, when this publisher owns the connection, closes it.
func (p *Publisher) Close() error {
	if err := p.nc.Flush(); err != nil {
		return err
	}
	if p.owned {
		p.nc.Close()
	}
	return nil
}

var _ events.Publisher = (*Publisher)(nil)
