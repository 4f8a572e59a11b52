package lockout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	t.Run("unknown identifier is allowed", func(t *testing.T) {
		tracker := New(WithClock(clock))
		assert.True(t, tracker.Allowed("ada@example.com"))
	})

	t.Run("locks after max consecutive failures", func(t *testing.T) {
		tracker := New(WithMaxFailures(3), WithClock(clock))

		tracker.RecordFailure("ada@example.com")
		tracker.RecordFailure("ada@example.com")
		assert.True(t, tracker.Allowed("ada@example.com"))

		tracker.RecordFailure("ada@example.com")
		assert.False(t, tracker.Allowed("ada@example.com"))

		// Other identifiers are unaffected.
		assert.True(t, tracker.Allowed("grace@example.com"))
	})

	t.Run("lock expires after the window", func(t *testing.T) {
		tracker := New(WithMaxFailures(1), WithWindow(10*time.Minute), WithClock(func() time.Time { return now }))

		tracker.RecordFailure("ada@example.com")
		assert.False(t, tracker.Allowed("ada@example.com"))

		now = now.Add(11 * time.Minute)
		assert.True(t, tracker.Allowed("ada@example.com"))
		now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	})

	t.Run("reset clears the count", func(t *testing.T) {
		tracker := New(WithMaxFailures(2), WithClock(clock))

		tracker.RecordFailure("ada@example.com")
		tracker.Reset("ada@example.com")
		tracker.RecordFailure("ada@example.com")
		assert.True(t, tracker.Allowed("ada@example.com"))
	})
}
