// Package registration wires the built-in system procedures into a registry.
package registration

import (
	"context"
	"time"

	"github.com/wirecall/wirecall/internal/domain"
	"github.com/wirecall/wirecall/internal/registry"
	"github.com/wirecall/wirecall/internal/storage"
)

// RegisterBuiltins adds the system.* procedures. The call-log procedure is
// registered only when a store is configured.
func RegisterBuiltins(reg *registry.Registry, store storage.CallLogStore) {
	reg.Query("system.health", func(context.Context, any, any) (any, error) {
		return map[string]any{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		}, nil
	})

	reg.Query("system.procedures", func(context.Context, any, any) (any, error) {
		return reg.Paths(), nil
	})

	if store == nil {
		return
	}
	reg.Query("system.calllog", func(ctx context.Context, input any, _ any) (any, error) {
		limit := 50
		if m, ok := input.(map[string]any); ok {
			if v, ok := m["limit"].(float64); ok {
				if v < 1 {
					return nil, domain.ErrBadRequest("limit must be positive")
				}
				limit = int(v)
			}
		}
		return store.ListCallLogs(ctx, limit)
	})
}
