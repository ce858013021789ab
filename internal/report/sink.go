package report

import (
	"context"
	"log/slog"
)

// LogSink records submitted reports as structured log entries
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger.With("component", "report-sink")}
}

func (s *LogSink) Submit(ctx context.Context, r Report) error {
	s.logger.InfoContext(ctx, "report submitted",
		"id", r.ID,
		"categories", r.Categories,
		"notes", r.Notes,
		"submitted_at", r.SubmittedAt,
	)
	return nil
}
