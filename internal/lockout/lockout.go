// Package lockout throttles credential guessing. Consecutive login failures
// per identifier trigger a temporary lock; a successful login clears it.
package lockout

import (
	"sync"
	"time"
)

type record struct {
	failures    int
	lockedUntil time.Time
}

// Tracker counts consecutive failures per identifier in memory. State is
// per-process; a horizontally scaled deployment would back this with redis.
type Tracker struct {
	mu          sync.Mutex
	records     map[string]*record
	maxFailures int
	window      time.Duration
	now         func() time.Time
}

// Option adjusts Tracker behavior.
type Option func(*Tracker)

// WithMaxFailures sets how many consecutive failures trigger a lock.
func WithMaxFailures(n int) Option {
	return func(t *Tracker) { t.maxFailures = n }
}

// WithWindow sets how long a lock lasts.
func WithWindow(d time.Duration) Option {
	return func(t *Tracker) { t.window = d }
}

// WithClock overrides time for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New creates a Tracker. Defaults: 5 failures, 15 minute lock.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		records:     make(map[string]*record),
		maxFailures: 5,
		window:      15 * time.Minute,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Allowed reports whether the identifier may attempt a login now.
func (t *Tracker) Allowed(identifier string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[identifier]
	if !ok {
		return true
	}
	if rec.lockedUntil.IsZero() {
		return true
	}
	if t.now().After(rec.lockedUntil) {
		// Lock expired; next failure starts a fresh count.
		delete(t.records, identifier)
		return true
	}
	return false
}

// RecordFailure counts one failed attempt and locks the identifier when the
// threshold is reached.
func (t *Tracker) RecordFailure(identifier string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[identifier]
	if !ok {
		rec = &record{}
		t.records[identifier] = rec
	}
	rec.failures++
	if rec.failures >= t.maxFailures {
		rec.lockedUntil = t.now().Add(t.window)
	}
}

// Reset clears the identifier's failure history after a successful login.
func (t *Tracker) Reset(identifier string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.records, identifier)
}
