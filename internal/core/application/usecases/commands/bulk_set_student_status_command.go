package commands

import (
	"errors"
	"fmt"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/order"
	"bookdesk/internal/pkg/errs"
	"bookdesk/internal/pkg/guard"
)

var ErrBulkSetStudentStatusCommandIsNotConstructed = errors.New(
	"BulkSetStudentStatusCommand must be created via NewBulkSetStudentStatusCommand constructor",
)

// BulkSetStudentStatusCommand applies one status to many students of a product.
// Duplicate student ids are collapsed, first occurrence wins the position.
type BulkSetStudentStatusCommand struct { //nolint:recvcheck //using for validation
	operatorID kernel.UUID
	productID  kernel.UUID
	studentIDs []kernel.UUID
	target     order.Status

	guard guard.ConstructorGuard
}

// NewBulkSetStudentStatusCommand requires at least one student id and rejects
// zero ids by position. Duplicate ids collapse to their first occurrence.
func NewBulkSetStudentStatusCommand(
	operatorID, productID kernel.UUID, studentIDs []kernel.UUID, target order.Status,
) (BulkSetStudentStatusCommand, error) {
	cmd := BulkSetStudentStatusCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		setCommandID(&cmd.operatorID, "operatorId", operatorID),
		setCommandID(&cmd.productID, "productId", productID),
		cmd.setStudentIDs(studentIDs),
		target.Validate(),
	); err != nil {
		return BulkSetStudentStatusCommand{}, err
	}
	cmd.target = target

	return cmd, nil
}

func (c BulkSetStudentStatusCommand) Validate() error {
	return c.guard.Validate(ErrBulkSetStudentStatusCommandIsNotConstructed)
}

func (c BulkSetStudentStatusCommand) OperatorID() kernel.UUID {
	return c.operatorID
}

func (c BulkSetStudentStatusCommand) ProductID() kernel.UUID {
	return c.productID
}

// StudentIDs returns a copy of the de-duplicated ids.
func (c BulkSetStudentStatusCommand) StudentIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.studentIDs...)
}

func (c BulkSetStudentStatusCommand) Target() order.Status {
	return c.target
}

func (c *BulkSetStudentStatusCommand) setStudentIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("studentIds")
	}

	seen := make(map[kernel.UUID]struct{}, len(ids))
	unique := make([]kernel.UUID, 0, len(ids))
	for i, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("studentIds[%d]", i), err)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	c.studentIDs = unique
	return nil
}
