package domain

import (
	"context"
	"net/http"
)

// ProcedureKind classifies an operation by its effect on server state.
type ProcedureKind string

const (
	// KindQuery is a read-only call, carried on GET.
	KindQuery ProcedureKind = "query"

	// KindMutation is a state-changing call, carried on POST.
	KindMutation ProcedureKind = "mutation"

	// KindSubscription is a long-lived call, carried on PATCH. Not servable
	// over the plain HTTP transport.
	KindSubscription ProcedureKind = "subscription"

	// KindUnknown covers every other HTTP method.
	KindUnknown ProcedureKind = "unknown"
)

// KindFromMethod maps an HTTP method to its procedure kind. HEAD is handled
// upstream of classification and never reaches this mapping.
func KindFromMethod(method string) ProcedureKind {
	switch method {
	case http.MethodGet:
		return KindQuery
	case http.MethodPost:
		return KindMutation
	case http.MethodPatch:
		return KindSubscription
	default:
		return KindUnknown
	}
}

// Servable reports whether the kind can be executed over this transport.
func (k ProcedureKind) Servable() bool {
	return k == KindQuery || k == KindMutation
}

// CallRequest carries everything a router needs to execute one procedure.
type CallRequest struct {
	// Path is the procedure identifier.
	Path string

	// Input is the decoded input value, or nil when absent.
	Input any

	// Kind is the operation kind derived from the HTTP method.
	Kind ProcedureKind

	// Meta is the request-scoped value built once by the context factory and
	// shared read-only by every call in a batch.
	Meta any
}

// Router executes named procedures. Implementations live outside the
// transport; internal/registry provides the standard one.
type Router interface {
	CallProcedure(ctx context.Context, call CallRequest) (any, error)
}

// CallOutcome is one executed call's result, positionally aligned with the
// request's path order.
type CallOutcome struct {
	Path  string
	Input any
	Data  any
	Err   *Error
}

// OK reports whether the call succeeded.
func (o CallOutcome) OK() bool {
	return o.Err == nil
}

// EnvelopeResult is the success payload of an envelope.
type EnvelopeResult struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Envelope is the uniform wire representation of one call's outcome. Exactly
// one of Result or Error is set. ID is always serialized as null.
type Envelope struct {
	ID     any             `json:"id"`
	Result *EnvelopeResult `json:"result,omitempty"`
	Error  any             `json:"error,omitempty"`
}

// DataEnvelope wraps a success value.
func DataEnvelope(data any) Envelope {
	return Envelope{Result: &EnvelopeResult{Type: "data", Data: data}}
}

// ErrorEnvelope wraps an already-shaped error value.
func ErrorEnvelope(shaped any) Envelope {
	return Envelope{Error: shaped}
}

// ResponseMeta carries header and status overrides computed from the full
// set of outcomes. Zero values mean no override.
type ResponseMeta struct {
	Headers map[string]string
	Status  int
}
