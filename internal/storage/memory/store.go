// Package memory provides an in-memory CallLogStore for tests and
// single-process setups that don't need durability.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wirecall/wirecall/internal/storage"
)

// Store is an in-memory implementation of storage.CallLogStore.
type Store struct {
	mu      sync.RWMutex
	entries []storage.CallLog
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{}
}

func (s *Store) AppendCallLog(_ context.Context, entry *storage.CallLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *Store) ListCallLogs(_ context.Context, limit int) ([]storage.CallLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]storage.CallLog, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

func (s *Store) Close() error {
	return nil
}

var _ storage.CallLogStore = (*Store)(nil)
