package commands

import (
	"errors"
	"strings"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/services"
	"bookdesk/internal/pkg/guard"
)

var ErrRedeemOrderCommandIsNotConstructed = errors.New(
	"RedeemOrderCommand must be created via NewRedeemOrderCommand constructor",
)

// RedeemOrderCommand is one scan of a pickup QR at the desk. The code is kept
// as scanned: a malformed code is an outcome, not a validation failure.
type RedeemOrderCommand struct {
	code  string
	scope services.RedemptionScope

	guard guard.ConstructorGuard
}

// NewRedeemOrderCommand accepts an optional operator and an optional list of
// products the scan is restricted to.
func NewRedeemOrderCommand(code string, operatorID *kernel.UUID, productIDs []kernel.UUID) (RedeemOrderCommand, error) {
	scope := services.RedemptionScope{
		ProductIDs: append([]kernel.UUID(nil), productIDs...),
	}
	if operatorID != nil {
		if err := setCommandID(new(kernel.UUID), "operatorId", *operatorID); err != nil {
			return RedeemOrderCommand{}, err
		}
		id := *operatorID
		scope.OperatorID = &id
	}

	return RedeemOrderCommand{
		code:  strings.TrimSpace(code),
		scope: scope,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c RedeemOrderCommand) Validate() error {
	return c.guard.Validate(ErrRedeemOrderCommandIsNotConstructed)
}

func (c RedeemOrderCommand) Code() string {
	return c.code
}

func (c RedeemOrderCommand) Scope() services.RedemptionScope {
	return c.scope
}
