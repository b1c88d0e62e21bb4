// Package wirecall provides the public API for embedding the call transport
// in another server. This is the stable API for external consumers.
package wirecall

import (
	"github.com/wirecall/wirecall/internal/domain"
	"github.com/wirecall/wirecall/internal/registry"
	"github.com/wirecall/wirecall/internal/transform"
	"github.com/wirecall/wirecall/internal/transport"
)

// Handler serves procedure calls over HTTP.
// See internal/transport.Handler for full documentation.
type Handler = transport.Handler

// Options configures a Handler.
type Options = transport.Options

// New creates a Handler from options. Example:
//
//	reg := wirecall.NewRegistry()
//	reg.Query("user.get", getUser)
//	h, err := wirecall.New(wirecall.Options{Router: reg, AllowBatching: true})
var New = transport.New

// Router executes named procedures on behalf of the transport.
type Router = domain.Router

// Registry is the standard Router implementation.
type Registry = registry.Registry

// NewRegistry creates an empty procedure registry.
var NewRegistry = registry.New

// Error is the canonical call error; return it from procedures to control
// the on-wire code and HTTP status.
type Error = domain.Error

// Code is the error taxonomy category.
type Code = domain.Code

// NewError creates a canonical error.
var NewError = domain.NewError

// Transformers
type Identity = transform.Identity

var NewCBOR = transform.NewCBOR
