// Package registry provides the standard procedure registry behind the
// transport's Router interface.
//
// # Registering Procedures
//
// Registration is an init-time concern; Register panics on collisions so a
// misconfigured process fails fast at startup:
//
//	reg := registry.New()
//	reg.Query("user.get", getUser)
//	reg.Mutation("user.create", createUser)
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/wirecall/wirecall/internal/domain"
)

// Handler is the body of one procedure. Input is the decoded call input (nil
// when absent); meta is the request-scoped value shared by every call in a
// batch and must be treated as read-only.
type Handler func(ctx context.Context, input any, meta any) (any, error)

type procedure struct {
	kind    domain.ProcedureKind
	handler Handler
}

// Registry maps procedure paths to handlers.
type Registry struct {
	mu         sync.RWMutex
	procedures map[string]procedure
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{procedures: make(map[string]procedure)}
}

// Register adds a procedure under the given path and kind.
// Panics on an empty path, a nil handler, a non-servable kind, or a path
// collision.
func (r *Registry) Register(path string, kind domain.ProcedureKind, h Handler) {
	if path == "" {
		panic("registry: procedure path cannot be empty")
	}
	if h == nil {
		panic(fmt.Sprintf("registry: procedure %q must have a handler", path))
	}
	if !kind.Servable() {
		panic(fmt.Sprintf("registry: procedure %q has unservable kind %q", path, kind))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.procedures[path]; exists {
		panic(fmt.Sprintf("registry: procedure %q already registered", path))
	}
	r.procedures[path] = procedure{kind: kind, handler: h}
}

// Query registers a read-only procedure.
func (r *Registry) Query(path string, h Handler) {
	r.Register(path, domain.KindQuery, h)
}

// Mutation registers a state-changing procedure.
func (r *Registry) Mutation(path string, h Handler) {
	r.Register(path, domain.KindMutation, h)
}

// CallProcedure looks up and executes the named procedure. A miss or a kind
// mismatch yields NOT_FOUND so callers cannot probe which paths exist under
// a different kind.
func (r *Registry) CallProcedure(ctx context.Context, call domain.CallRequest) (any, error) {
	r.mu.RLock()
	proc, ok := r.procedures[call.Path]
	r.mu.RUnlock()

	if !ok || proc.kind != call.Kind {
		return nil, domain.ErrNotFound(fmt.Sprintf("no %s procedure on path %q", call.Kind, call.Path))
	}
	return proc.handler(ctx, call.Input, call.Meta)
}

// Paths returns all registered procedure paths, sorted.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paths := make([]string, 0, len(r.procedures))
	for p := range r.procedures {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Ensure Registry satisfies the transport's router contract at compile time.
var _ domain.Router = (*Registry)(nil)
