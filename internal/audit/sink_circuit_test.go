package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursehub/pkg/platform/circuit"
)

type flakySink struct {
	fail  bool
	calls int
}

func (s *flakySink) Append(ctx context.Context, event Event) error {
	s.calls++
	if s.fail {
		return errors.New("broker unavailable")
	}
	return nil
}

func TestCircuitSink(t *testing.T) {
	ctx := context.Background()

	t.Run("passes through while healthy", func(t *testing.T) {
		next := &flakySink{}
		sink := NewCircuitSink(next, circuit.New("test", circuit.WithFailureThreshold(2)), discardLogger())

		require.NoError(t, sink.Append(ctx, Event{Action: "a"}))
		assert.Equal(t, 1, next.calls)
	})

	t.Run("swallows failures once open", func(t *testing.T) {
		next := &flakySink{fail: true}
		sink := NewCircuitSink(next, circuit.New("test", circuit.WithFailureThreshold(2)), discardLogger())

		assert.Error(t, sink.Append(ctx, Event{Action: "a"}))
		assert.Error(t, sink.Append(ctx, Event{Action: "b"}))

		// Circuit is now open; appends still probe but report no error.
		assert.NoError(t, sink.Append(ctx, Event{Action: "c"}))
		assert.Equal(t, 3, next.calls)
	})

	t.Run("recovers after enough successful probes", func(t *testing.T) {
		next := &flakySink{fail: true}
		breaker := circuit.New("test", circuit.WithFailureThreshold(1), circuit.WithSuccessThreshold(2))
		sink := NewCircuitSink(next, breaker, discardLogger())

		assert.Error(t, sink.Append(ctx, Event{Action: "a"}))
		require.True(t, breaker.IsOpen())

		next.fail = false
		assert.NoError(t, sink.Append(ctx, Event{Action: "b"}))
		assert.True(t, breaker.IsOpen())
		assert.NoError(t, sink.Append(ctx, Event{Action: "c"}))
		assert.False(t, breaker.IsOpen())
	})
}
