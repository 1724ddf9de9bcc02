package ports

import "context"

// EventPublisher delivers outbox messages to the broker. Publish either
// delivers all messages or returns an error.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
