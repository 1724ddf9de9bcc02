package commands

import (
	"errors"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/pkg/guard"
)

var (
	ErrConfirmPaymentCommandIsNotConstructed = errors.New(
		"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
	)
	ErrDeclinePaymentCommandIsNotConstructed = errors.New(
		"DeclinePaymentCommand must be created via NewDeclinePaymentCommand constructor",
	)
)

// paymentReview is what an operator decision about a single order carries.
type paymentReview struct {
	operatorID kernel.UUID
	orderID    kernel.UUID

	guard guard.ConstructorGuard
}

func newPaymentReview(operatorID, orderID kernel.UUID) (paymentReview, error) {
	review := paymentReview{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		setCommandID(&review.operatorID, "operatorId", operatorID),
		setCommandID(&review.orderID, "orderId", orderID),
	); err != nil {
		return paymentReview{}, err
	}

	return review, nil
}

// OperatorID is the operator making the decision.
func (r paymentReview) OperatorID() kernel.UUID {
	return r.operatorID
}

// OrderID is the order under review.
func (r paymentReview) OrderID() kernel.UUID {
	return r.orderID
}

// ConfirmPaymentCommand accepts the evidence of one order.
type ConfirmPaymentCommand struct {
	paymentReview
}

// NewConfirmPaymentCommand rejects zero ids. Ownership of the order's product
// is checked by the handler.
func NewConfirmPaymentCommand(operatorID, orderID kernel.UUID) (ConfirmPaymentCommand, error) {
	review, err := newPaymentReview(operatorID, orderID)
	if err != nil {
		return ConfirmPaymentCommand{}, err
	}
	return ConfirmPaymentCommand{paymentReview: review}, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// DeclinePaymentCommand rejects the evidence of one order.
type DeclinePaymentCommand struct {
	paymentReview
}

// NewDeclinePaymentCommand rejects zero ids.
func NewDeclinePaymentCommand(operatorID, orderID kernel.UUID) (DeclinePaymentCommand, error) {
	review, err := newPaymentReview(operatorID, orderID)
	if err != nil {
		return DeclinePaymentCommand{}, err
	}
	return DeclinePaymentCommand{paymentReview: review}, nil
}

func (c DeclinePaymentCommand) Validate() error {
	return c.guard.Validate(ErrDeclinePaymentCommandIsNotConstructed)
}
