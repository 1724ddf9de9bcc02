package queries

import (
	"context"
	"errors"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/pkg/errs"
	"bookdesk/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetProductQueryIsNotConstructed = errors.New(
	"GetProductQuery must be created via NewGetProductQuery constructor",
)

type GetProductQuery struct {
	productID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetProductQuery(productID kernel.UUID) (GetProductQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetProductQuery{}, errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	return GetProductQuery{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProductQuery) Validate() error {
	return q.guard.Validate(ErrGetProductQueryIsNotConstructed)
}

func (q GetProductQuery) ProductID() kernel.UUID {
	return q.productID
}

type GetProductQueryHandler struct {
	db *gorm.DB
}

func NewGetProductQueryHandler(db *gorm.DB) GetProductQueryHandler {
	return GetProductQueryHandler{db: db}
}

// Handle returns an ObjectNotFoundError for an unknown product.
func (h GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (ProductResponse, error) {
	if err := query.Validate(); err != nil {
		return ProductResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`SELECT`+productColumns+`
		FROM products p
		WHERE p.id = ?
	`, query.ProductID().Google()).Rows()
	if err != nil {
		return ProductResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return ProductResponse{}, err
		}
		return ProductResponse{}, errs.NewObjectNotFoundError("productId", query.ProductID())
	}

	return scanProduct(rows)
}
