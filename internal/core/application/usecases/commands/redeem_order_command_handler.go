package commands

import (
	"context"
	"errors"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/order"
	"bookdesk/internal/core/domain/services"
	"bookdesk/internal/pkg/errs"
)

// RedemptionResult tells the desk what happened to a scanned code. OrderID,
// StudentName and ProductName are empty for OutcomeNotFound.
type RedemptionResult struct {
	Outcome     services.Outcome
	OrderID     kernel.UUID
	StudentName string
	ProductName string
	Message     string
}

// RedeemOrderCommandHandler hands the goods over for a PAID order exactly once.
// The PAID -> DELIVERED write is conditional on the status still being PAID,
// so of several desks scanning one code at the same moment only one sees
// OutcomeDelivered and the rest see OutcomeAlreadyDelivered.
//
// Errors are returned only for store failures.
type RedeemOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.RedemptionPolicy
}

func NewRedeemOrderCommandHandler(uowFactory OrderUoWFactory) RedeemOrderCommandHandler {
	return RedeemOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewRedemptionPolicy(),
	}
}

func (h RedeemOrderCommandHandler) Handle(ctx context.Context, command RedeemOrderCommand) (RedemptionResult, error) {
	if err := command.Validate(); err != nil {
		return RedemptionResult{}, err
	}

	code, err := kernel.UUIDFromString(command.Code())
	if err != nil {
		return notFound(), nil
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return RedemptionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetByRedemptionCode(ctx, code)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return notFound(), nil
	}
	if err != nil {
		return RedemptionResult{}, err
	}

	p, err := uow.ProductRepository().Get(ctx, o.ProductID())
	if err != nil {
		return RedemptionResult{}, err
	}
	if !h.policy.InScope(p, command.Scope()) {
		return notFound(), nil
	}

	s, err := uow.StudentRepository().Get(ctx, o.StudentID())
	if err != nil {
		return RedemptionResult{}, err
	}

	result := RedemptionResult{
		OrderID:     o.ID(),
		StudentName: s.Name(),
		ProductName: p.Name(),
	}

	for range maxAttempts {
		outcome := h.policy.Redeem(o)
		if outcome != services.OutcomeDelivered {
			return result.with(outcome), nil
		}

		delivered, err := orderRepo.UpdateIfStatus(ctx, o, order.Paid)
		if err != nil {
			return RedemptionResult{}, err
		}
		if delivered {
			if err = uow.Commit(ctx); err != nil {
				return RedemptionResult{}, err
			}
			return result.with(services.OutcomeDelivered), nil
		}

		// Another writer moved the order first.
		o, err = orderRepo.Get(ctx, result.OrderID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(), nil
		}
		if err != nil {
			return RedemptionResult{}, err
		}
		if o.Status() != order.Paid {
			return result.with(h.policy.Classify(o.Status())), nil
		}
	}

	return RedemptionResult{}, ErrConcurrentUpdate
}

func (r RedemptionResult) with(outcome services.Outcome) RedemptionResult {
	r.Outcome = outcome
	r.Message = outcome.Message()
	return r
}

func notFound() RedemptionResult {
	return RedemptionResult{}.with(services.OutcomeNotFound)
}
