package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case e, ok := <-sub.C:
		require.True(t, ok, "subscription closed")
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestBus_DeliversInOrderWithSequence(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	defer bus.Close()
	sub := bus.Subscribe("", 8)
	ctx := context.Background()

	require.NoError(t, bus.Publish(ctx, Event{Type: TaskCreated, TaskID: "1"}))
	require.NoError(t, bus.Publish(ctx, Event{Type: TaskMoved, TaskID: "1", From: "todo", To: "done"}))

	first := receive(t, sub)
	second := receive(t, sub)
	assert.Equal(t, TaskCreated, first.Type)
	assert.Equal(t, TaskMoved, second.Type)
	assert.Less(t, first.SequenceID, second.SequenceID)
	assert.False(t, first.Timestamp.IsZero())
}

func TestBus_ProjectFiltering(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	defer bus.Close()
	ctx := context.Background()

	p1 := bus.Subscribe("p1", 8)
	all := bus.Subscribe("", 8)

	require.NoError(t, bus.Publish(ctx, Event{Type: TaskCreated, ProjectID: "p2"}))
	require.NoError(t, bus.Publish(ctx, Event{Type: TaskCreated, ProjectID: "p1"}))
	require.NoError(t, bus.Publish(ctx, Event{Type: UserCreated}))

	assert.Equal(t, "p1", receive(t, p1).ProjectID)
	assert.Equal(t, UserCreated, receive(t, p1).Type)
	assert.Len(t, p1.C, 0)
	assert.Len(t, all.C, 3)
}

func TestBus_FullQueueDropsWithoutBlocking(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	defer bus.Close()
	sub := bus.Subscribe("", 1)
	ctx := context.Background()

	for range 3 {
		require.NoError(t, bus.Publish(ctx, Event{Type: TaskUpdated}))
	}

	snap := bus.Metrics().Snapshot()
	assert.Equal(t, int64(3), snap.Published)
	assert.Equal(t, int64(1), snap.Delivered)
	assert.Equal(t, int64(2), snap.Dropped)
	assert.Len(t, sub.C, 1)
}

func TestBus_CloseAndUnsubscribe(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	sub := bus.Subscribe("", 1)
	other := bus.Subscribe("", 1)
	assert.Equal(t, int32(2), bus.Metrics().Snapshot().Subscribers)

	sub.Close()
	sub.Close()
	_, ok := <-sub.C
	assert.False(t, ok)
	assert.Equal(t, int32(1), bus.Metrics().Snapshot().Subscribers)

	bus.Close()
	_, ok = <-other.C
	assert.False(t, ok)
	other.Close()

	err := bus.Publish(context.Background(), Event{Type: TaskDeleted})
	assert.ErrorIs(t, err, ErrBusClosed)

	late := bus.Subscribe("", 1)
	_, ok = <-late.C
	assert.False(t, ok, "subscribing to a closed bus yields a closed channel")
}

type flakyPublisher struct {
	failures int
	calls    atomic.Int32
}

func (f *flakyPublisher) Publish(context.Context, Event) error {
	if int(f.calls.Add(1)) <= f.failures {
		return errors.New("temporary failure")
	}
	return nil
}

func TestPublishWithRetry(t *testing.T) {
	ctx := context.Background()

	p := &flakyPublisher{failures: 2}
	require.NoError(t, PublishWithRetry(ctx, p, Event{Type: TaskCreated}, 3))
	assert.Equal(t, int32(3), p.calls.Load())

	p = &flakyPublisher{failures: 5}
	require.Error(t, PublishWithRetry(ctx, p, Event{Type: TaskCreated}, 2))
	assert.Equal(t, int32(2), p.calls.Load())

	assert.NoError(t, PublishWithRetry(ctx, nil, Event{}, 3))
}

func TestPublishWithRetry_ClosedBusIsPermanent(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	bus.Close()

	start := time.Now()
	err := PublishWithRetry(context.Background(), bus, Event{Type: TaskCreated}, 5)
	assert.ErrorIs(t, err, ErrBusClosed)
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}
