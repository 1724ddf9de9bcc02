package queries

import (
	"context"
	"errors"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/pkg/errs"
	"bookdesk/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetOperatorProductsQueryIsNotConstructed = errors.New(
	"GetOperatorProductsQuery must be created via NewGetOperatorProductsQuery constructor",
)

// GetOperatorProductsQuery lists the products an operator owns.
type GetOperatorProductsQuery struct {
	operatorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOperatorProductsQuery(operatorID kernel.UUID) (GetOperatorProductsQuery, error) {
	if err := operatorID.Validate(); err != nil {
		return GetOperatorProductsQuery{}, errs.NewValueIsRequiredErrorWithCause("operatorId", err)
	}
	return GetOperatorProductsQuery{operatorID: operatorID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOperatorProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetOperatorProductsQueryIsNotConstructed)
}

func (q GetOperatorProductsQuery) OperatorID() kernel.UUID {
	return q.operatorID
}

type GetOperatorProductsQueryHandler struct {
	db *gorm.DB
}

func NewGetOperatorProductsQueryHandler(db *gorm.DB) GetOperatorProductsQueryHandler {
	return GetOperatorProductsQueryHandler{db: db}
}

// Handle returns the operator's products sorted by name.
func (h GetOperatorProductsQueryHandler) Handle(
	ctx context.Context,
	query GetOperatorProductsQuery,
) ([]ProductResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`SELECT`+productColumns+`
		FROM products p
		WHERE p.owner_id = ?
		ORDER BY p.name
	`, query.OperatorID().Google()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]ProductResponse, 0)
	for rows.Next() {
		p, scanErr := scanProduct(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
