package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Stream feeds broker events into a Bubble Tea program one command at a
// time: Update handles the delivered Event[T] message and calls Next again
// to keep the stream flowing. The studio drains its task broker this way,
// and the log tail drains the log broker.
type Stream[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewStream subscribes to broker for the life of ctx.
func NewStream[T any](ctx context.Context, broker *Broker[T]) *Stream[T] {
	return &Stream[T]{ctx: ctx, ch: broker.Subscribe(ctx)}
}

// Next returns a command that blocks for the next event. It resolves to a
// nil message once ctx is cancelled or the broker shuts down, which ends
// the stream without waking Update.
func (s *Stream[T]) Next() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-s.ctx.Done():
			return nil
		case event, ok := <-s.ch:
			if !ok {
				return nil
			}
			return event
		}
	}
}
