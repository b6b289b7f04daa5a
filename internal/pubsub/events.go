// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// TaskSubmittedEvent fires when an async generation task is accepted.
	TaskSubmittedEvent EventType = "task_submitted"
	// TaskUpdatedEvent fires on every poll that observes a state change.
	TaskUpdatedEvent EventType = "task_updated"
	// TaskCompletedEvent fires when a task reaches a terminal success state.
	TaskCompletedEvent EventType = "task_completed"
	// TaskFailedEvent fires when a task reaches a terminal failure state.
	TaskFailedEvent EventType = "task_failed"
	// LogEvent carries a formatted log line for live tailing.
	LogEvent EventType = "log"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
