package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"feria/pkg/requestcontext"
)

// Recorder accepts events from request handlers. Implementations must never
// block the request path.
type Recorder interface {
	Record(ctx context.Context, action Action, subjectID, detail string)
}

// ChannelRecorder buffers events for the worker. When the buffer is full the
// event is dropped with a warning; auditing is best-effort by contract and a
// slow sink must not back-pressure requests.
type ChannelRecorder struct {
	events chan Event
	logger *slog.Logger
}

func NewChannelRecorder(buffer int, logger *slog.Logger) *ChannelRecorder {
	if buffer <= 0 {
		buffer = 256
	}
	return &ChannelRecorder{
		events: make(chan Event, buffer),
		logger: logger,
	}
}

// Events exposes the inbox for the worker.
func (r *ChannelRecorder) Events() <-chan Event {
	return r.events
}

func (r *ChannelRecorder) Record(ctx context.Context, action Action, subjectID, detail string) {
	event := Event{
		ID:        uuid.NewString(),
		Action:    action,
		SubjectID: subjectID,
		Detail:    detail,
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
		Timestamp: time.Now().UTC(),
	}
	select {
	case r.events <- event:
	default:
		r.logger.Warn("audit buffer full, dropping event",
			"action", action,
			"subject_id", subjectID,
		)
	}
}

// NopRecorder discards events. Used in tests and before wiring completes.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Action, string, string) {}
