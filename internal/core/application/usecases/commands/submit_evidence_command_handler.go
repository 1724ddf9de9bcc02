package commands

import (
	"context"
	"errors"
	"time"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/order"
	"bookdesk/internal/core/ports"
	"bookdesk/internal/pkg/errs"
)

// SubmitEvidenceCommandHandler opens the student's order for a product, or
// puts the existing one back into review with the new evidence.
type SubmitEvidenceCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewSubmitEvidenceCommandHandler(uowFactory OrderUoWFactory) SubmitEvidenceCommandHandler {
	return SubmitEvidenceCommandHandler{
		uowFactory: uowFactory,
		now:        utcNow,
	}
}

// Handle returns the id of the order now holding the evidence. Student and
// product must exist. A PAID or DELIVERED order refuses new evidence.
func (h SubmitEvidenceCommandHandler) Handle(ctx context.Context, command SubmitEvidenceCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.StudentRepository().Get(ctx, command.StudentID()); err != nil {
		return kernel.UUID{}, err
	}
	if _, err := uow.ProductRepository().Get(ctx, command.ProductID()); err != nil {
		return kernel.UUID{}, err
	}

	orderRepo := uow.OrderRepository()
	for range maxAttempts {
		orderID, written, err := h.attempt(ctx, orderRepo, command)
		if err != nil {
			return kernel.UUID{}, err
		}
		if !written {
			continue
		}

		if err = uow.Commit(ctx); err != nil {
			return kernel.UUID{}, err
		}
		return orderID, nil
	}

	return kernel.UUID{}, ErrConcurrentUpdate
}

// attempt reports written=false when a concurrent writer got in first.
func (h SubmitEvidenceCommandHandler) attempt(
	ctx context.Context, orderRepo ports.OrderRepository, command SubmitEvidenceCommand,
) (kernel.UUID, bool, error) {
	now := h.now()

	existing, err := orderRepo.GetByStudentAndProduct(ctx, command.StudentID(), command.ProductID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		created, err := order.NewOrder(kernel.NewUUID(), command.StudentID(), command.ProductID(),
			command.EvidenceRef(), command.ActivationPhone(), now)
		if err != nil {
			return kernel.UUID{}, false, err
		}

		added, err := orderRepo.AddIfAbsent(ctx, created)
		return created.ID(), added, err
	}
	if err != nil {
		return kernel.UUID{}, false, err
	}

	expected := existing.Status()
	if err = existing.SubmitEvidence(command.EvidenceRef(), command.ActivationPhone(), now); err != nil {
		return kernel.UUID{}, false, err
	}

	updated, err := orderRepo.UpdateIfStatus(ctx, existing, expected)
	return existing.ID(), updated, err
}

func utcNow() time.Time {
	return time.Now().UTC()
}
