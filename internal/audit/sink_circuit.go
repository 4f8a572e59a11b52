package audit

import (
	"context"
	"log/slog"

	"coursehub/pkg/platform/circuit"
)

// CircuitSink guards a flaky sink with a circuit breaker. Every append is
// also the recovery probe: outcomes feed the breaker, and while it is open
// failures are swallowed so a dead broker cannot flood the logs. Events sent
// while open are lost from this sink only; the other sinks still get them.
type CircuitSink struct {
	next    Sink
	breaker *circuit.Breaker
	logger  *slog.Logger
}

// NewCircuitSink wraps next with a named breaker.
func NewCircuitSink(next Sink, breaker *circuit.Breaker, logger *slog.Logger) *CircuitSink {
	return &CircuitSink{next: next, breaker: breaker, logger: logger}
}

func (s *CircuitSink) Append(ctx context.Context, event Event) error {
	wasOpen := s.breaker.IsOpen()

	err := s.next.Append(ctx, event)
	if err != nil {
		_, change := s.breaker.RecordFailure()
		if change.Opened {
			s.logger.WarnContext(ctx, "audit sink circuit opened",
				"breaker", s.breaker.Name(),
				"error", err,
			)
		}
		if wasOpen {
			return nil
		}
		return err
	}

	_, change := s.breaker.RecordSuccess()
	if change.Closed {
		s.logger.InfoContext(ctx, "audit sink circuit closed",
			"breaker", s.breaker.Name(),
		)
	}
	return nil
}
