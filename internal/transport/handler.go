// Package transport adapts HTTP requests into procedure invocations and
// their outcomes back into a single well-formed HTTP response. It classifies
// the request, extracts and decodes inputs, fans out batch calls, isolates
// per-call failures, and shapes every exit path into a uniform envelope.
package transport

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/wirecall/wirecall/internal/domain"
)

// batchFlag is the query parameter that switches a request into batch mode.
// Only the literal value "1" enables it.
const batchFlag = "batch"

// ContextFactory builds the request-scoped value shared by every call in a
// batch. It runs exactly once per request; failure aborts the whole request.
type ContextFactory func(r *http.Request) (any, error)

// ValueTransformer is the symmetric encode/decode pair applied to input and
// output payloads at the wire boundary. Implementations must be pure.
type ValueTransformer interface {
	DeserializeInput(v any) (any, error)
	SerializeOutput(v any) (any, error)
}

// ShapeParams is everything an ErrorShaper may consult. Path is empty for
// request-level errors.
type ShapeParams struct {
	Err   *domain.Error
	Kind  domain.ProcedureKind
	Path  string
	Input any
	Meta  any
}

// ErrorShaper defines the on-wire representation of an error. It must be
// pure; the returned value is serialized into the envelope as-is.
type ErrorShaper func(p ShapeParams) any

// ErrorDetails is passed to the OnError observability hook.
type ErrorDetails struct {
	Err     *domain.Error
	Kind    domain.ProcedureKind
	Path    string
	Input   any
	Meta    any
	Request *http.Request
}

// OnErrorHook observes failures. It is fire-and-forget: panics are swallowed
// and it can never affect the response payload.
type OnErrorHook func(d ErrorDetails)

// MetaParams is passed to the ResponseMeta hook after all calls finish.
type MetaParams struct {
	Meta   any
	Paths  []string
	Kind   domain.ProcedureKind
	Data   []any
	Errors []*domain.Error
}

// MetaHook computes extra response headers and an optional status override
// from the full set of outcomes. Headers win on key collision; a non-zero
// status wins over the derived status unconditionally.
type MetaHook func(p MetaParams) domain.ResponseMeta

// Options configures a Handler. Router is required; everything else has a
// usable zero value.
type Options struct {
	Router        domain.Router
	CreateContext ContextFactory
	ErrorShaper   ErrorShaper
	Transformer   ValueTransformer
	OnError       OnErrorHook
	ResponseMeta  MetaHook
	AllowBatching bool

	// MaxBatchSize caps the number of calls in one batch request.
	// Zero means unlimited.
	MaxBatchSize int

	Logger *slog.Logger
}

// Handler serves procedure calls over HTTP. It holds no per-request state;
// one Handler is safe for concurrent use by the HTTP server.
type Handler struct {
	opts Options
}

// New creates a Handler from options.
func New(opts Options) (*Handler, error) {
	if opts.Router == nil {
		return nil, fmt.Errorf("transport: router is required")
	}
	if opts.ErrorShaper == nil {
		opts.ErrorShaper = DefaultErrorShaper
	}
	if opts.Transformer == nil {
		opts.Transformer = identityTransformer{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Handler{opts: opts}, nil
}

// identityTransformer is the default pass-through transformer.
type identityTransformer struct{}

func (identityTransformer) DeserializeInput(v any) (any, error) { return v, nil }
func (identityTransformer) SerializeOutput(v any) (any, error)  { return v, nil }

// callSet is the aggregate produced by a fully dispatched request.
type callSet struct {
	kind     domain.ProcedureKind
	paths    []string
	meta     any
	outcomes []domain.CallOutcome
}

// ServeHTTP runs the full pipeline. The route is the URL path with slashes
// trimmed, carrying one procedure path or a comma-joined list in batch mode.
// Mount under a prefix with http.StripPrefix.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// HEAD short-circuits before classification; used for liveness probes.
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	route := strings.Trim(r.URL.Path, "/")
	batch := r.URL.Query().Get(batchFlag) == "1"
	kind := domain.KindFromMethod(r.Method)

	cs, err := h.dispatch(r, route, kind, batch)
	if err != nil {
		h.reportError(ErrorDetails{Err: err, Kind: kind, Meta: metaOf(cs), Request: r})
		h.respondError(w, kind, metaOf(cs), err)
		return
	}
	h.respond(w, cs, batch)
}

func metaOf(cs *callSet) any {
	if cs == nil {
		return nil
	}
	return cs.meta
}

// dispatch runs the gates in order. The first failing gate aborts the whole
// request with a single request-level error; only call execution itself is
// allowed to fail per call.
func (h *Handler) dispatch(r *http.Request, route string, kind domain.ProcedureKind, batch bool) (*callSet, *domain.Error) {
	if batch && !h.opts.AllowBatching {
		return nil, domain.ErrInternal("batching is not enabled on this server")
	}
	if !kind.Servable() {
		return nil, domain.ErrMethodNotSupported(fmt.Sprintf("unsupported %s method %q", string(kind), r.Method))
	}

	raw, err := extractRawInput(r, kind)
	if err != nil {
		return nil, err
	}

	paths := []string{route}
	if batch {
		paths = strings.Split(route, ",")
	}
	if h.opts.MaxBatchSize > 0 && len(paths) > h.opts.MaxBatchSize {
		return nil, domain.NewError(domain.CodePayloadTooLarge,
			fmt.Sprintf("batch of %d calls exceeds limit of %d", len(paths), h.opts.MaxBatchSize))
	}

	cs := &callSet{kind: kind, paths: paths}
	if h.opts.CreateContext != nil {
		meta, err := h.opts.CreateContext(r)
		if err != nil {
			return cs, domain.FromError(err)
		}
		cs.meta = meta
	}

	inputs, derr := h.resolveInputs(raw, batch, len(paths))
	if derr != nil {
		return cs, derr
	}

	// Fan out: one goroutine per call, joined together. A failure or stall
	// in one call never cancels its siblings; every call produces an
	// outcome at its own index.
	cs.outcomes = make([]domain.CallOutcome, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string, input any) {
			defer wg.Done()
			cs.outcomes[i] = h.runCall(r, cs, path, input)
		}(i, path, inputs[i])
	}
	wg.Wait()

	return cs, nil
}

// resolveInputs decodes each call's input by positional index. A single call
// consumes the whole RawInput; a batch call reads its own index out of the
// object-shaped mapping. Decoding goes through the transformer.
func (h *Handler) resolveInputs(raw RawInput, batch bool, n int) ([]any, *domain.Error) {
	rawInputs := []RawInput{raw}
	if batch {
		var derr *domain.Error
		rawInputs, derr = splitBatchInput(raw, n)
		if derr != nil {
			return nil, derr
		}
	}

	inputs := make([]any, n)
	for i, ri := range rawInputs {
		if !ri.Present {
			continue
		}
		decoded, err := h.opts.Transformer.DeserializeInput(ri.Value)
		if err != nil {
			return nil, domain.FromError(err)
		}
		inputs[i] = decoded
	}
	return inputs, nil
}

// runCall executes one procedure and folds any failure into the outcome.
// A panic inside the router is contained here.
func (h *Handler) runCall(r *http.Request, cs *callSet, path string, input any) (outcome domain.CallOutcome) {
	outcome = domain.CallOutcome{Path: path, Input: input}
	defer func() {
		if rec := recover(); rec != nil {
			h.opts.Logger.Error("procedure panic",
				slog.String("path", path),
				slog.Any("panic", rec),
			)
			outcome.Data = nil
			outcome.Err = domain.ErrInternal(fmt.Sprintf("procedure %q panicked", path))
			h.reportError(ErrorDetails{Err: outcome.Err, Kind: cs.kind, Path: path, Input: input, Meta: cs.meta, Request: r})
		}
	}()

	data, err := h.opts.Router.CallProcedure(r.Context(), domain.CallRequest{
		Path:  path,
		Input: input,
		Kind:  cs.kind,
		Meta:  cs.meta,
	})
	if err != nil {
		cerr := domain.FromError(err)
		h.reportError(ErrorDetails{Err: cerr, Kind: cs.kind, Path: path, Input: input, Meta: cs.meta, Request: r})
		outcome.Err = cerr
		return outcome
	}
	outcome.Data = data
	return outcome
}

// reportError invokes the observability hook. Hook panics are contained so
// observation can never change the response.
func (h *Handler) reportError(d ErrorDetails) {
	if h.opts.OnError == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			h.opts.Logger.Error("error hook panic", slog.Any("panic", rec))
		}
	}()
	h.opts.OnError(d)
}
