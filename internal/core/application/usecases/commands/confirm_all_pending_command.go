package commands

import (
	"errors"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/pkg/guard"
)

var ErrConfirmAllPendingCommandIsNotConstructed = errors.New(
	"ConfirmAllPendingCommand must be created via NewConfirmAllPendingCommand constructor",
)

// ConfirmAllPendingCommand accepts every order of a product that is waiting for review.
type ConfirmAllPendingCommand struct { //nolint:recvcheck //using for validation
	operatorID kernel.UUID
	productID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmAllPendingCommand rejects zero ids.
func NewConfirmAllPendingCommand(operatorID, productID kernel.UUID) (ConfirmAllPendingCommand, error) {
	cmd := ConfirmAllPendingCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		setCommandID(&cmd.operatorID, "operatorId", operatorID),
		setCommandID(&cmd.productID, "productId", productID),
	); err != nil {
		return ConfirmAllPendingCommand{}, err
	}

	return cmd, nil
}

func (c ConfirmAllPendingCommand) Validate() error {
	return c.guard.Validate(ErrConfirmAllPendingCommandIsNotConstructed)
}

func (c ConfirmAllPendingCommand) OperatorID() kernel.UUID {
	return c.operatorID
}

func (c ConfirmAllPendingCommand) ProductID() kernel.UUID {
	return c.productID
}
