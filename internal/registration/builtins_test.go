package registration

import (
	"context"
	"errors"
	"testing"

	"github.com/wirecall/wirecall/internal/domain"
	"github.com/wirecall/wirecall/internal/registry"
	"github.com/wirecall/wirecall/internal/storage"
	"github.com/wirecall/wirecall/internal/storage/memory"
)

func TestRegisterBuiltins(t *testing.T) {
	reg := registry.New()
	store := memory.New()
	RegisterBuiltins(reg, store)

	ctx := context.Background()

	t.Run("health", func(t *testing.T) {
		out, err := reg.CallProcedure(ctx, domain.CallRequest{Path: "system.health", Kind: domain.KindQuery})
		if err != nil {
			t.Fatal(err)
		}
		m := out.(map[string]any)
		if m["status"] != "ok" {
			t.Errorf("status = %v, want ok", m["status"])
		}
	})

	t.Run("procedures", func(t *testing.T) {
		out, err := reg.CallProcedure(ctx, domain.CallRequest{Path: "system.procedures", Kind: domain.KindQuery})
		if err != nil {
			t.Fatal(err)
		}
		paths := out.([]string)
		if len(paths) != 3 {
			t.Errorf("registered %d procedures, want 3: %v", len(paths), paths)
		}
	})

	t.Run("calllog", func(t *testing.T) {
		if err := store.AppendCallLog(ctx, &storage.CallLog{Path: "p", Kind: "query", OK: true}); err != nil {
			t.Fatal(err)
		}

		out, err := reg.CallProcedure(ctx, domain.CallRequest{
			Path:  "system.calllog",
			Kind:  domain.KindQuery,
			Input: map[string]any{"limit": float64(10)},
		})
		if err != nil {
			t.Fatal(err)
		}
		logs := out.([]storage.CallLog)
		if len(logs) != 1 || logs[0].Path != "p" {
			t.Errorf("unexpected logs: %+v", logs)
		}
	})

	t.Run("calllog rejects bad limit", func(t *testing.T) {
		_, err := reg.CallProcedure(ctx, domain.CallRequest{
			Path:  "system.calllog",
			Kind:  domain.KindQuery,
			Input: map[string]any{"limit": float64(0)},
		})
		var cerr *domain.Error
		if !errors.As(err, &cerr) || cerr.Code != domain.CodeBadRequest {
			t.Errorf("expected BAD_REQUEST, got %v", err)
		}
	})
}

func TestRegisterBuiltins_NoStore(t *testing.T) {
	reg := registry.New()
	RegisterBuiltins(reg, nil)

	_, err := reg.CallProcedure(context.Background(), domain.CallRequest{Path: "system.calllog", Kind: domain.KindQuery})
	var cerr *domain.Error
	if !errors.As(err, &cerr) || cerr.Code != domain.CodeNotFound {
		t.Errorf("expected NOT_FOUND without a store, got %v", err)
	}
}
