package commands

import (
	"context"
	"time"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/product"
)

type CreateProductCommandHandler struct {
	uowFactory CatalogUoWFactory
	now        func() time.Time
}

func NewCreateProductCommandHandler(uowFactory CatalogUoWFactory) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory: uowFactory,
		now:        utcNow,
	}
}

// Handle returns the id of the new product.
func (h CreateProductCommandHandler) Handle(ctx context.Context, command CreateProductCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	p, err := product.NewProduct(kernel.NewUUID(), command.OperatorID(), command.Name(), command.Price(),
		command.ClassID(), command.Kind(), command.Payment(), h.now())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductRepository().Add(ctx, p); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return p.ID(), nil
}
