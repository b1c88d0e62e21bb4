package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/wirecall/wirecall/internal/domain"
)

// errorShape is the default on-wire error representation.
type errorShape struct {
	Message string         `json:"message"`
	Code    string         `json:"code"`
	Data    errorShapeData `json:"data"`
}

type errorShapeData struct {
	Code       string `json:"code"`
	HTTPStatus int    `json:"httpStatus"`
	Path       string `json:"path,omitempty"`
}

// DefaultErrorShaper produces the standard error shape. Swap it out via
// Options.ErrorShaper to change the wire format.
func DefaultErrorShaper(p ShapeParams) any {
	return errorShape{
		Message: p.Err.Message,
		Code:    string(p.Err.Code),
		Data: errorShapeData{
			Code:       string(p.Err.Code),
			HTTPStatus: p.Err.HTTPStatus(),
			Path:       p.Path,
		},
	}
}

// respond aggregates the outcomes of a dispatched request into envelopes,
// derives status and headers, and writes the body.
func (h *Handler) respond(w http.ResponseWriter, cs *callSet, batch bool) {
	envelopes := make([]domain.Envelope, len(cs.outcomes))
	var data []any
	var failures []*domain.Error

	for i, o := range cs.outcomes {
		if o.OK() {
			serialized, err := h.opts.Transformer.SerializeOutput(o.Data)
			if err != nil {
				o.Err = domain.FromError(err)
				o.Data = nil
			} else {
				envelopes[i] = domain.DataEnvelope(serialized)
				data = append(data, serialized)
				continue
			}
		}
		failures = append(failures, o.Err)
		envelopes[i] = domain.ErrorEnvelope(h.opts.ErrorShaper(ShapeParams{
			Err:   o.Err,
			Kind:  cs.kind,
			Path:  o.Path,
			Input: o.Input,
			Meta:  cs.meta,
		}))
	}

	// Default status: 200 when everything succeeded. A single failing call
	// maps its error code to a status; a partially failed batch borrows the
	// first failure's status for the whole response even though the body
	// carries mixed per-call outcomes.
	status := http.StatusOK
	if len(failures) > 0 {
		status = failures[0].HTTPStatus()
	}

	meta := h.applyMeta(MetaParams{
		Meta:   cs.meta,
		Paths:  cs.paths,
		Kind:   cs.kind,
		Data:   data,
		Errors: failures,
	})

	var body any = envelopes[0]
	if batch {
		body = envelopes
	}
	h.write(w, status, meta, body)
}

// respondError writes the single top-level envelope for a request-level
// failure. The error carries no path: it belongs to the request, not to any
// one call.
func (h *Handler) respondError(w http.ResponseWriter, kind domain.ProcedureKind, meta any, err *domain.Error) {
	shaped := h.opts.ErrorShaper(ShapeParams{Err: err, Kind: kind, Meta: meta})
	rm := h.applyMeta(MetaParams{
		Meta:   meta,
		Kind:   kind,
		Errors: []*domain.Error{err},
	})
	h.write(w, err.HTTPStatus(), rm, domain.ErrorEnvelope(shaped))
}

// applyMeta runs the response-meta hook, if configured. Hook panics are
// contained; a panicking hook yields no overrides.
func (h *Handler) applyMeta(p MetaParams) (rm domain.ResponseMeta) {
	if h.opts.ResponseMeta == nil {
		return domain.ResponseMeta{}
	}
	defer func() {
		if rec := recover(); rec != nil {
			h.opts.Logger.Error("response meta hook panic", slog.Any("panic", rec))
			rm = domain.ResponseMeta{}
		}
	}()
	return h.opts.ResponseMeta(p)
}

// write emits the final response. Meta headers win over defaults; a meta
// status wins over the derived status unconditionally.
func (h *Handler) write(w http.ResponseWriter, status int, meta domain.ResponseMeta, body any) {
	w.Header().Set("Content-Type", "application/json")
	for k, v := range meta.Headers {
		w.Header().Set(k, v)
	}
	if meta.Status != 0 {
		status = meta.Status
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.opts.Logger.Error("failed to write response body", slog.Any("error", err))
	}
}
