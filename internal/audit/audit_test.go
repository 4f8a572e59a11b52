package audit

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisherEmit(t *testing.T) {
	ctx := context.Background()

	t.Run("nil publisher is a no-op", func(t *testing.T) {
		var p *Publisher
		p.Emit(ctx, Event{Action: ActionInstructorLogin})
	})

	t.Run("stamps missing timestamps", func(t *testing.T) {
		p := NewPublisher(1, discardLogger())
		p.Emit(ctx, Event{Action: ActionInstructorLogin, Actor: "i1"})

		event := <-p.Inbox()
		assert.False(t, event.Timestamp.IsZero())
	})

	t.Run("keeps caller timestamps", func(t *testing.T) {
		p := NewPublisher(1, discardLogger())
		stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		p.Emit(ctx, Event{Timestamp: stamp, Action: ActionCourseCreated})

		event := <-p.Inbox()
		assert.Equal(t, stamp, event.Timestamp)
	})

	t.Run("drops instead of blocking when full", func(t *testing.T) {
		p := NewPublisher(1, discardLogger())
		p.Emit(ctx, Event{Action: "first"})
		p.Emit(ctx, Event{Action: "dropped"})

		event := <-p.Inbox()
		assert.Equal(t, "first", event.Action)
		select {
		case extra := <-p.Inbox():
			t.Fatalf("expected empty inbox, got %q", extra.Action)
		default:
		}
	})
}

func TestWorkerFansOut(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPublisher(8, discardLogger())
	first := NewInMemoryStore()
	second := NewInMemoryStore()
	worker := NewWorker(p.Inbox(), discardLogger(), first, second)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = worker.Run(ctx)
	}()

	p.Emit(ctx, Event{Actor: "i1", Action: ActionInstructorRegistered, Subject: "ada@example.com"})
	p.Emit(ctx, Event{Actor: "i1", Action: ActionCourseCreated, Subject: "c1"})

	require.Eventually(t, func() bool {
		return len(first.All()) == 2 && len(second.All()) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	byActor, err := first.ListByActor(ctx, "i1")
	require.NoError(t, err)
	assert.Len(t, byActor, 2)
	assert.Equal(t, ActionInstructorRegistered, byActor[0].Action)
}
