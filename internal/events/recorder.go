package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/wirecall/wirecall/internal/domain"
	"github.com/wirecall/wirecall/internal/server"
)

// RecordingRouter wraps a Router and publishes one CallEvent per executed
// call, success or failure. Publishing is best-effort: a failing publisher
// is logged and never affects the call's result.
type RecordingRouter struct {
	next   domain.Router
	pub    Publisher
	logger *slog.Logger
}

// NewRecordingRouter wraps next so every call is published to pub.
func NewRecordingRouter(next domain.Router, pub Publisher, logger *slog.Logger) *RecordingRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordingRouter{next: next, pub: pub, logger: logger}
}

func (r *RecordingRouter) CallProcedure(ctx context.Context, call domain.CallRequest) (any, error) {
	start := time.Now()
	out, err := r.next.CallProcedure(ctx, call)

	event := &CallEvent{
		RequestID:  server.GetRequestID(ctx),
		Path:       call.Path,
		Kind:       string(call.Kind),
		OK:         err == nil,
		DurationMS: time.Since(start).Milliseconds(),
		At:         start.UTC(),
	}
	if err != nil {
		cerr := domain.FromError(err)
		event.ErrorCode = string(cerr.Code)
		event.ErrorMessage = cerr.Message
	}

	if perr := r.pub.Publish(ctx, event); perr != nil {
		r.logger.Error("failed to publish call event",
			slog.String("path", call.Path),
			slog.Any("error", perr),
		)
	}
	return out, err
}

var _ domain.Router = (*RecordingRouter)(nil)
