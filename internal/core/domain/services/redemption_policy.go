package services

import (
	"errors"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/order"
	"bookdesk/internal/core/domain/model/product"
)

// Outcome is the result of presenting a redemption code. Outcomes are values,
// not errors: a scan of an already delivered order is an expected event at a
// busy pickup desk.
type Outcome string

const (
	OutcomeDelivered        Outcome = "DELIVERED"
	OutcomeAlreadyDelivered Outcome = "ALREADY_DELIVERED"
	OutcomeNotPaid          Outcome = "NOT_PAID"
	OutcomeDeclined         Outcome = "DECLINED"
	OutcomeNotFound         Outcome = "NOT_FOUND"
)

func (o Outcome) String() string {
	return string(o)
}

// Message is shown to the operator at the desk.
func (o Outcome) Message() string {
	switch o {
	case OutcomeDelivered:
		return "order delivered"
	case OutcomeAlreadyDelivered:
		return "this order was already delivered"
	case OutcomeNotPaid:
		return "this order is not paid yet"
	case OutcomeDeclined:
		return "payment for this order was declined"
	default:
		return "invalid redemption code"
	}
}

// RedemptionScope narrows which orders a scan may touch. A zero scope allows everything.
type RedemptionScope struct {
	ProductIDs []kernel.UUID
	OperatorID *kernel.UUID
}

// RedemptionPolicy is stateless.
type RedemptionPolicy struct{}

func NewRedemptionPolicy() RedemptionPolicy {
	return RedemptionPolicy{}
}

// InScope reports whether the order's product is visible to the scan. Orders
// outside the scope are reported as not found, so a scanner learns nothing about
// codes belonging to other desks.
func (RedemptionPolicy) InScope(p *product.Product, scope RedemptionScope) bool {
	if p == nil {
		return false
	}
	if scope.OperatorID != nil && !p.IsOwnedBy(*scope.OperatorID) {
		return false
	}
	if len(scope.ProductIDs) == 0 {
		return true
	}
	for _, id := range scope.ProductIDs {
		if id.IsEqual(p.ID()) {
			return true
		}
	}
	return false
}

// Redeem applies the PAID -> DELIVERED transition in memory and reports the outcome.
func (RedemptionPolicy) Redeem(o *order.Order) Outcome {
	if err := o.Redeem(); err != nil {
		return outcomeOf(err)
	}
	return OutcomeDelivered
}

// Classify maps a status read after a lost race to the outcome the loser sees.
func (RedemptionPolicy) Classify(s order.Status) Outcome {
	switch s {
	case order.Delivered:
		return OutcomeAlreadyDelivered
	case order.Declined:
		return OutcomeDeclined
	default:
		return OutcomeNotPaid
	}
}

func outcomeOf(err error) Outcome {
	switch {
	case errors.Is(err, order.ErrAlreadyDelivered):
		return OutcomeAlreadyDelivered
	case errors.Is(err, order.ErrDeclined):
		return OutcomeDeclined
	default:
		return OutcomeNotPaid
	}
}
