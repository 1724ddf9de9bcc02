package commands

import (
	"errors"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/order"
	"bookdesk/internal/pkg/guard"
)

var ErrSetStudentStatusCommandIsNotConstructed = errors.New(
	"SetStudentStatusCommand must be created via NewSetStudentStatusCommand constructor",
)

// SetStudentStatusCommand is an operator override of one student's status
// for a product. Target UNPAID removes the order.
type SetStudentStatusCommand struct { //nolint:recvcheck //using for validation
	operatorID kernel.UUID
	studentID  kernel.UUID
	productID  kernel.UUID
	target     order.Status

	guard guard.ConstructorGuard
}

// NewSetStudentStatusCommand accepts any of the five statuses as target.
func NewSetStudentStatusCommand(
	operatorID, studentID, productID kernel.UUID, target order.Status,
) (SetStudentStatusCommand, error) {
	cmd := SetStudentStatusCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		setCommandID(&cmd.operatorID, "operatorId", operatorID),
		setCommandID(&cmd.studentID, "studentId", studentID),
		setCommandID(&cmd.productID, "productId", productID),
		cmd.setTarget(target),
	); err != nil {
		return SetStudentStatusCommand{}, err
	}

	return cmd, nil
}

func (c SetStudentStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetStudentStatusCommandIsNotConstructed)
}

func (c SetStudentStatusCommand) OperatorID() kernel.UUID {
	return c.operatorID
}

func (c SetStudentStatusCommand) StudentID() kernel.UUID {
	return c.studentID
}

func (c SetStudentStatusCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c SetStudentStatusCommand) Target() order.Status {
	return c.target
}

func (c *SetStudentStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
