package commands

import (
	"context"
	"time"
)

// PurgeOrderEventsCommandHandler deletes outbox rows that were relayed
// longer ago than the retention. Unpublished rows are never touched.
type PurgeOrderEventsCommandHandler struct {
	uowFactory OutboxUoWFactory
	now        func() time.Time
}

func NewPurgeOrderEventsCommandHandler(uowFactory OutboxUoWFactory) PurgeOrderEventsCommandHandler {
	return PurgeOrderEventsCommandHandler{
		uowFactory: uowFactory,
		now:        utcNow,
	}
}

func (h PurgeOrderEventsCommandHandler) Handle(ctx context.Context, command PurgeOrderEventsCommand) (int64, error) {
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

	deleted, err := uow.OutboxRepository().DeletePublishedBefore(ctx, h.now().Add(-command.Retention()))
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return deleted, nil
}
