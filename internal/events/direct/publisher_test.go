package direct

import (
	"context"
	"testing"
	"time"

	"github.com/wirecall/wirecall/internal/events"
	"github.com/wirecall/wirecall/internal/storage/memory"
)

func TestPublisher_Publish(t *testing.T) {
	store := memory.New()
	p, err := NewPublisher(store)
	if err != nil {
		t.Fatal(err)
	}

	event := &events.CallEvent{
		RequestID:    "req-1",
		Path:         "user.get",
		Kind:         "query",
		OK:           false,
		ErrorCode:    "NOT_FOUND",
		ErrorMessage: "no such user",
		DurationMS:   7,
		At:           time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := p.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	logs, err := store.ListCallLogs(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(logs))
	}
	got := logs[0]
	if got.Path != "user.get" || got.ErrorCode != "NOT_FOUND" || got.DurationMS != 7 {
		t.Errorf("unexpected log entry: %+v", got)
	}
}

func TestNewPublisher_RequiresStore(t *testing.T) {
	if _, err := NewPublisher(nil); err == nil {
		t.Error("expected error for nil store")
	}
}
