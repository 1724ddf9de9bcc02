package ports

import (
	"context"
	"time"

	"bookdesk/internal/core/domain/model/kernel"
)

// OutboxMessage is an event waiting to be relayed to the message broker.
type OutboxMessage struct {
	ID          kernel.UUID
	AggregateID kernel.UUID
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
}

type OutboxRepository interface {
	Add(ctx context.Context, messages ...OutboxMessage) error

	// ClaimUnpublished locks up to limit unpublished messages, oldest first,
	// skipping rows another relay already holds.
	ClaimUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error

	// DeletePublishedBefore drops relayed messages older than cutoff and
	// reports how many went.
	DeletePublishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
