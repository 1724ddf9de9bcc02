package commands

import (
	"context"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/product"
	"bookdesk/internal/core/ports"
)

// ownedProduct loads the product and checks that operatorID owns it.
func ownedProduct(
	ctx context.Context, repo ports.ProductRepository, productID, operatorID kernel.UUID,
) (*product.Product, error) {
	p, err := repo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err = p.EnsureOwnedBy(operatorID); err != nil {
		return nil, err
	}
	return p, nil
}
