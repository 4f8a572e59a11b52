package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from the publisher inbox and fans them out to
// sinks. Sink failures are logged and skipped; audit must never take the
// service down.
type Worker struct {
	inbox  <-chan Event
	sinks  []Sink
	logger *slog.Logger
}

// NewWorker builds a worker over the given inbox and sinks.
func NewWorker(inbox <-chan Event, logger *slog.Logger, sinks ...Sink) *Worker {
	return &Worker{inbox: inbox, sinks: sinks, logger: logger}
}

// Run drains the inbox until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			for _, sink := range w.sinks {
				if err := sink.Append(ctx, event); err != nil {
					w.logger.ErrorContext(ctx, "audit sink append failed",
						"error", err,
						"action", event.Action,
					)
				}
			}
		}
	}
}
