package commands

import (
	"context"
	"time"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/order"
	"bookdesk/internal/core/ports"
)

// SetStudentStatusCommandHandler forces a student's order into the target
// status with a single atomic upsert, or deletes it for UNPAID. An existing
// redemption code always survives the override.
type SetStudentStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewSetStudentStatusCommandHandler(uowFactory OrderUoWFactory) SetStudentStatusCommandHandler {
	return SetStudentStatusCommandHandler{
		uowFactory: uowFactory,
		now:        utcNow,
	}
}

func (h SetStudentStatusCommandHandler) Handle(ctx context.Context, command SetStudentStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := ownedProduct(ctx, uow.ProductRepository(), command.ProductID(), command.OperatorID()); err != nil {
		return err
	}
	if _, err := uow.StudentRepository().Get(ctx, command.StudentID()); err != nil {
		return err
	}

	if err := overrideStatus(ctx, uow.OrderRepository(), command.StudentID(), command.ProductID(),
		command.Target(), h.now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// overrideStatus is the per-student step shared with the batch mutator.
func overrideStatus(
	ctx context.Context, orderRepo ports.OrderRepository,
	studentID, productID kernel.UUID, target order.Status, now time.Time,
) error {
	if target == order.Unpaid {
		_, err := orderRepo.Remove(ctx, studentID, productID)
		return err
	}

	candidate, err := order.NewOverride(studentID, productID, target, now)
	if err != nil {
		return err
	}

	_, err = orderRepo.Upsert(ctx, candidate)
	return err
}
