package commands

import "context"

// DeleteProductCommandHandler removes a product together with its orders.
// Each removed order is reported to the outbox as UNPAID.
type DeleteProductCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewDeleteProductCommandHandler(uowFactory CatalogUoWFactory) DeleteProductCommandHandler {
	return DeleteProductCommandHandler{uowFactory: uowFactory}
}

func (h DeleteProductCommandHandler) Handle(ctx context.Context, command DeleteProductCommand) error {
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

	productRepo := uow.ProductRepository()
	if _, err := ownedProduct(ctx, productRepo, command.ProductID(), command.OperatorID()); err != nil {
		return err
	}

	if _, err := uow.OrderRepository().RemoveAllForProduct(ctx, command.ProductID()); err != nil {
		return err
	}
	if err := productRepo.Remove(ctx, command.ProductID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
