package commands

import (
	"context"
	"time"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/ports"
)

// RelayOrderEventsCommandHandler publishes committed order events. Claimed rows
// stay locked until the publish finishes, so concurrent relays never send the
// same row twice. A failed publish leaves the rows for the next run.
type RelayOrderEventsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
}

func NewRelayOrderEventsCommandHandler(
	uowFactory OutboxUoWFactory, publisher ports.EventPublisher,
) RelayOrderEventsCommandHandler {
	return RelayOrderEventsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        utcNow,
	}
}

// Handle returns how many events were published.
func (h RelayOrderEventsCommandHandler) Handle(ctx context.Context, command RelayOrderEventsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()
	messages, err := outboxRepo.ClaimUnpublished(ctx, command.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, messages...); err != nil {
		return 0, err
	}

	ids := make([]kernel.UUID, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	if err = outboxRepo.MarkPublished(ctx, ids, h.now()); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(messages), nil
}
