package commands

import (
	"errors"
	"strings"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/product"
	"bookdesk/internal/pkg/errs"
	"bookdesk/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand registers a product owned by the calling operator.
// Class, price and kind are checked again by the product aggregate.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	operatorID kernel.UUID
	name       string
	price      decimal.Decimal
	classID    int
	kind       product.Kind
	payment    product.PaymentOptions

	guard guard.ConstructorGuard
}

// NewCreateProductCommand trims the name and requires it to be non-empty.
func NewCreateProductCommand(
	operatorID kernel.UUID,
	name string,
	price decimal.Decimal,
	classID int,
	kind product.Kind,
	payment product.PaymentOptions,
) (CreateProductCommand, error) {
	cmd := CreateProductCommand{
		price:   price,
		classID: classID,
		kind:    kind,
		payment: payment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setCommandID(&cmd.operatorID, "operatorId", operatorID),
		cmd.setName(name),
	); err != nil {
		return CreateProductCommand{}, err
	}

	return cmd, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) OperatorID() kernel.UUID {
	return c.operatorID
}

func (c CreateProductCommand) Name() string {
	return c.name
}

func (c CreateProductCommand) Price() decimal.Decimal {
	return c.price
}

func (c CreateProductCommand) ClassID() int {
	return c.classID
}

func (c CreateProductCommand) Kind() product.Kind {
	return c.kind
}

func (c CreateProductCommand) Payment() product.PaymentOptions {
	return c.payment
}

func (c *CreateProductCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}
