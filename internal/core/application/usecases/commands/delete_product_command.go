package commands

import (
	"errors"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/pkg/guard"
)

var ErrDeleteProductCommandIsNotConstructed = errors.New(
	"DeleteProductCommand must be created via NewDeleteProductCommand constructor",
)

type DeleteProductCommand struct { //nolint:recvcheck //using for validation
	operatorID kernel.UUID
	productID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteProductCommand(operatorID, productID kernel.UUID) (DeleteProductCommand, error) {
	cmd := DeleteProductCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		setCommandID(&cmd.operatorID, "operatorId", operatorID),
		setCommandID(&cmd.productID, "productId", productID),
	); err != nil {
		return DeleteProductCommand{}, err
	}

	return cmd, nil
}

func (c DeleteProductCommand) Validate() error {
	return c.guard.Validate(ErrDeleteProductCommandIsNotConstructed)
}

func (c DeleteProductCommand) OperatorID() kernel.UUID {
	return c.operatorID
}

func (c DeleteProductCommand) ProductID() kernel.UUID {
	return c.productID
}
