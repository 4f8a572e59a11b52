// Package audit captures structured domain events. Services emit through the
// Publisher; a Worker drains the inbox into one or more sinks so request
// handling never blocks on audit persistence.
package audit

import (
	"context"
	"log/slog"
	"time"
)

// Sink receives audit events. Implementations: in-memory store, Kafka.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher buffers events onto a channel. Emitting is fire-and-forget: when
// the inbox is full the event is dropped and counted in the log rather than
// stalling the caller.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

// NewPublisher creates a Publisher with the given inbox capacity.
func NewPublisher(capacity int, logger *slog.Logger) *Publisher {
	return &Publisher{
		inbox:  make(chan Event, capacity),
		logger: logger,
	}
}

// Emit enqueues an event. A nil receiver is a no-op so callers do not need
// to guard against audit being disabled.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if p == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit inbox full, dropping event",
			"action", event.Action,
			"actor", event.Actor,
		)
	}
}

// Inbox exposes the receive side for the Worker.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}
