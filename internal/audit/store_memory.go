package audit

import (
	"context"
	"sync"
)

// InMemoryStore keeps events in order of arrival. Default sink when Kafka is
// not configured; also the test sink.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

// NewInMemoryStore creates an empty event store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(ctx context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByActor returns the events recorded for one actor.
func (s *InMemoryStore) ListByActor(ctx context.Context, actor string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []Event
	for _, event := range s.events {
		if event.Actor == actor {
			matches = append(matches, event)
		}
	}
	return matches, nil
}

// All returns every recorded event.
func (s *InMemoryStore) All() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event(nil), s.events...)
}
