package commands

import (
	"context"

	"bookdesk/internal/core/domain/model/order"
)

// reviewTransition applies an operator decision to the aggregate and reports
// whether it changed anything.
type reviewTransition func(o *order.Order) (bool, error)

// ConfirmPaymentCommandHandler moves an order to PAID and issues its
// redemption code. Confirming an already PAID order succeeds without a write.
//
// Example:
//
//	cmd, _ := NewConfirmPaymentCommand(operatorID, orderID)
//	err := handler.Handle(ctx, cmd)
//	var denied *errs.AccessDeniedError
//	if errors.As(err, &denied) {
//	    // the product belongs to another operator
//	}
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewConfirmPaymentCommandHandler(uowFactory OrderUoWFactory) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{uowFactory: uowFactory}
}

func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, command ConfirmPaymentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	return reviewPayment(ctx, h.uowFactory, command.paymentReview, (*order.Order).Confirm)
}

// DeclinePaymentCommandHandler moves an order to DECLINED. A code issued by an
// earlier confirm stays on the order.
type DeclinePaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDeclinePaymentCommandHandler(uowFactory OrderUoWFactory) DeclinePaymentCommandHandler {
	return DeclinePaymentCommandHandler{uowFactory: uowFactory}
}

func (h DeclinePaymentCommandHandler) Handle(ctx context.Context, command DeclinePaymentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	return reviewPayment(ctx, h.uowFactory, command.paymentReview, (*order.Order).Decline)
}

// reviewPayment runs the compare-and-set loop shared by confirm and decline.
// A lost race re-reads the order and re-applies the transition.
func reviewPayment(
	ctx context.Context, uowFactory OrderUoWFactory, review paymentReview, apply reviewTransition,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	for attempt := 0; attempt < maxAttempts; attempt++ {
		o, err := orderRepo.Get(ctx, review.OrderID())
		if err != nil {
			return err
		}

		if attempt == 0 {
			if _, err = ownedProduct(ctx, uow.ProductRepository(), o.ProductID(), review.OperatorID()); err != nil {
				return err
			}
		}

		expected := o.Status()
		changed, err := apply(o)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}

		updated, err := orderRepo.UpdateIfStatus(ctx, o, expected)
		if err != nil {
			return err
		}
		if updated {
			return uow.Commit(ctx)
		}
	}

	return ErrConcurrentUpdate
}
