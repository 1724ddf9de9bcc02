package commands

import (
	"context"
	"fmt"
	"slices"
	"time"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/order"
	"bookdesk/internal/pkg/errs"
)

// BulkSetStudentStatusCommandHandler is the batch mutator. The whole batch runs
// in one transaction: an unknown student or any store failure rolls back every
// row touched so far.
//
// UNPAID deletes the listed students' orders with a single statement. Any other
// target upserts each student's order, keeping codes that already exist.
type BulkSetStudentStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewBulkSetStudentStatusCommandHandler(uowFactory OrderUoWFactory) BulkSetStudentStatusCommandHandler {
	return BulkSetStudentStatusCommandHandler{
		uowFactory: uowFactory,
		now:        utcNow,
	}
}

func (h BulkSetStudentStatusCommandHandler) Handle(ctx context.Context, command BulkSetStudentStatusCommand) error {
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

	studentIDs := command.StudentIDs()
	known, err := uow.StudentRepository().CountExisting(ctx, studentIDs)
	if err != nil {
		return err
	}
	if known != int64(len(studentIDs)) {
		return errs.NewObjectNotFoundError("studentIds",
			fmt.Sprintf("%d of %d unknown", int64(len(studentIDs))-known, len(studentIDs)))
	}

	orderRepo := uow.OrderRepository()
	if command.Target() == order.Unpaid {
		if _, err = orderRepo.RemoveForStudents(ctx, command.ProductID(), studentIDs); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	// Every batch locks rows in the same order, so overlapping batches queue
	// behind each other instead of deadlocking.
	slices.SortFunc(studentIDs, kernel.UUID.Compare)

	now := h.now()
	for _, studentID := range studentIDs {
		if err = overrideStatus(ctx, orderRepo, studentID, command.ProductID(), command.Target(), now); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
