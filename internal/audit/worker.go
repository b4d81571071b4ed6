package audit

import (
	"context"
	"log/slog"
)

// Worker drains the recorder's inbox into the configured sink. A sink failure
// is logged and the event dropped; the worker keeps running because audit
// delivery is best-effort and must outlive transient sink outages.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit append failed",
					"error", err,
					"action", event.Action,
					"event_id", event.ID,
				)
			}
		}
	}
}
