package sqldb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/wirecall/wirecall/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "calls.db"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_AppendAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []*storage.CallLog{
		{Path: "user.get", Kind: "query", OK: true, DurationMS: 3, CreatedAt: base},
		{Path: "user.create", Kind: "mutation", OK: false, ErrorCode: "BAD_REQUEST", ErrorMessage: "missing name", CreatedAt: base.Add(time.Second)},
	}
	for _, e := range entries {
		if err := s.AppendCallLog(ctx, e); err != nil {
			t.Fatalf("AppendCallLog(%s) error: %v", e.Path, err)
		}
		if e.ID == "" {
			t.Error("expected ID to be assigned")
		}
	}

	got, err := s.ListCallLogs(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("ListCallLogs() returned %d entries, want 2", len(got))
	}

	// Most recent first.
	if got[0].Path != "user.create" {
		t.Errorf("first entry = %s, want user.create", got[0].Path)
	}
	if got[0].OK {
		t.Error("expected failed entry")
	}
	if got[0].ErrorCode != "BAD_REQUEST" {
		t.Errorf("error code = %q, want BAD_REQUEST", got[0].ErrorCode)
	}
	if got[1].Path != "user.get" || !got[1].OK {
		t.Errorf("second entry = %+v, want successful user.get", got[1])
	}
}

func TestStore_ListLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		err := s.AppendCallLog(ctx, &storage.CallLog{
			Path:      "p",
			Kind:      "query",
			OK:        true,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.ListCallLogs(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("ListCallLogs(3) returned %d entries, want 3", len(got))
	}
}
