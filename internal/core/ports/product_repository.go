package ports

import (
	"context"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/product"
)

type ProductRepository interface {
	Add(ctx context.Context, aggregate *product.Product) error

	// Get returns an ObjectNotFoundError when id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	Remove(ctx context.Context, id kernel.UUID) error
}
