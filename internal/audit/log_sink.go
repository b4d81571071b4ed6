package audit

import (
	"context"
	"log/slog"
)

// LogSink writes events to the structured log. It is the sink of last resort
// for deployments running without Postgres or Kafka (local development).
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Append(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, "audit",
		"event_id", event.ID,
		"action", event.Action,
		"subject_id", event.SubjectID,
		"detail", event.Detail,
		"request_id", event.RequestID,
		"client_ip", event.ClientIP,
		"user_agent", event.UserAgent,
	)
	return nil
}
