package store

import (
	"context"
	"sort"
	"sync"

	"coursehub/pkg/platform/sentinel"
)

// InMemoryLedger implements Ledger with a mutex-guarded map of sets. The
// single lock makes every operation atomic per record, matching what the
// durable backends guarantee.
type InMemoryLedger struct {
	mu     sync.RWMutex
	owners map[string]map[string]struct{}
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *InMemoryLedger {
	return &InMemoryLedger{owners: make(map[string]map[string]struct{})}
}

func (l *InMemoryLedger) AddCourse(ctx context.Context, ownerID, courseID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	set := l.owners[ownerID]
	if set == nil {
		set = make(map[string]struct{})
		l.owners[ownerID] = set
	}
	if _, ok := set[courseID]; ok {
		return sentinel.ErrDuplicate
	}
	set[courseID] = struct{}{}
	return nil
}

func (l *InMemoryLedger) AddCourses(ctx context.Context, ownerID string, courseIDs []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	set := l.owners[ownerID]
	if set == nil {
		set = make(map[string]struct{})
		l.owners[ownerID] = set
	}
	for _, courseID := range courseIDs {
		set[courseID] = struct{}{}
	}
	return nil
}

func (l *InMemoryLedger) ListCourses(ctx context.Context, ownerID string) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	set := l.owners[ownerID]
	courseIDs := make([]string, 0, len(set))
	for courseID := range set {
		courseIDs = append(courseIDs, courseID)
	}
	sort.Strings(courseIDs)
	return courseIDs, nil
}

func (l *InMemoryLedger) IsEnrolled(ctx context.Context, ownerID, courseID string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	set, ok := l.owners[ownerID]
	if !ok {
		return false, nil
	}
	_, enrolled := set[courseID]
	return enrolled, nil
}
