package pubsub

import (
	"context"
	"sync"
	"time"
)

// Each subscriber gets its own buffered channel; the buffer absorbs bursts
// from the task poller and the logger without blocking either.
const defaultBuffer = 64

// Broker fans events out to subscribers. Publishing never blocks: a
// subscriber that falls behind its buffer loses events rather than stalling
// the producer, so a slow UI frame cannot back-pressure a poll loop.
type Broker[T any] struct {
	mu     sync.RWMutex
	sinks  map[chan Event[T]]struct{}
	closed chan struct{}
	buffer int
}

// NewBroker creates a broker with the default per-subscriber buffer.
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBuffer)
}

// NewBrokerWithBuffer creates a broker with a custom per-subscriber buffer.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	return &Broker[T]{
		sinks:  make(map[chan Event[T]]struct{}),
		closed: make(chan struct{}),
		buffer: size,
	}
}

// isClosed requires b.mu to be held in at least read mode.
func (b *Broker[T]) isClosed() bool {
	select {
	case <-b.closed:
		return true
	default:
		return false
	}
}

// Subscribe registers a subscriber. The returned channel closes when ctx is
// cancelled or the broker shuts down; subscribing to a closed broker yields
// an already-closed channel.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.isClosed() {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	sink := make(chan Event[T], b.buffer)
	b.sinks[sink] = struct{}{}

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.isClosed() {
			return // Close already tore the sinks down
		}
		delete(b.sinks, sink)
		close(sink)
	}()

	return sink
}

// Publish stamps payload with the current time and delivers it to every
// subscriber whose buffer has room. Publishing to a closed broker is a
// no-op.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.isClosed() {
		return
	}

	event := Event[T]{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	for sink := range b.sinks {
		select {
		case sink <- event:
		default:
			// Buffer full: this subscriber misses the event.
		}
	}
}

// Close shuts the broker down and closes every subscriber channel.
// Idempotent.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.isClosed() {
		return
	}

	close(b.closed)
	for sink := range b.sinks {
		close(sink)
	}
	b.sinks = nil
}

// SubscriberCount reports the number of live subscribers.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sinks)
}
