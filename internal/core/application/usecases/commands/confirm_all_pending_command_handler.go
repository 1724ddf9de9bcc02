package commands

import "context"

// ConfirmAllPendingCommandHandler confirms a product's pending orders in one
// set-based statement, issuing codes where missing.
type ConfirmAllPendingCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewConfirmAllPendingCommandHandler(uowFactory OrderUoWFactory) ConfirmAllPendingCommandHandler {
	return ConfirmAllPendingCommandHandler{uowFactory: uowFactory}
}

// Handle returns how many orders were confirmed.
func (h ConfirmAllPendingCommandHandler) Handle(ctx context.Context, command ConfirmAllPendingCommand) (int64, error) {
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

	if _, err := ownedProduct(ctx, uow.ProductRepository(), command.ProductID(), command.OperatorID()); err != nil {
		return 0, err
	}

	confirmed, err := uow.OrderRepository().ConfirmAllPending(ctx, command.ProductID())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return confirmed, nil
}
