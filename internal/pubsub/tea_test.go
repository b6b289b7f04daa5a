package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStream_NextDeliversEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := NewStream(ctx, broker)

	broker.Publish(TaskUpdatedEvent, "running")

	msg := stream.Next()()
	event, ok := msg.(Event[string])
	require.True(t, ok, "expected an Event message, got %T", msg)
	require.Equal(t, TaskUpdatedEvent, event.Type)
	require.Equal(t, "running", event.Payload)
}

func TestStream_NextNilOnCancel(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	stream := NewStream(ctx, broker)
	cancel()

	require.Nil(t, stream.Next()())
}

func TestStream_NextNilOnBrokerClose(t *testing.T) {
	broker := NewBroker[int]()
	stream := NewStream(context.Background(), broker)

	broker.Close()

	got := make(chan any, 1)
	go func() {
		got <- stream.Next()()
	}()

	select {
	case msg := <-got:
		require.Nil(t, msg)
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "Next did not resolve after broker close")
	}
}

func TestStream_SequentialEvents(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	stream := NewStream(context.Background(), broker)

	for i := 0; i < 3; i++ {
		broker.Publish(TaskUpdatedEvent, i)
	}

	// Repeated Next calls drain the subscription in order.
	for i := 0; i < 3; i++ {
		event, ok := stream.Next()().(Event[int])
		require.True(t, ok)
		require.Equal(t, i, event.Payload)
	}
}
