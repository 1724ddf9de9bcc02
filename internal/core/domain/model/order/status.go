package order

import (
	"errors"
	"fmt"
	"strings"

	"bookdesk/internal/pkg/errs"
)

// Refinements carried as the cause of a TransitionIsInvalidError. Callers can
// match them with errors.Is to tell the redemption outcomes apart.
var (
	ErrAlreadyDelivered = errors.New("order is already delivered")
	ErrAlreadyPaid      = errors.New("order is already paid")
	ErrNotPaid          = errors.New("order is not paid")
	ErrDeclined         = errors.New("order payment was declined")
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	            submit            confirm           redeem
//	(no row) ─────────> PENDING ─────────> PAID ──────────> DELIVERED
//	                     ^  │               │
//	            resubmit │  │ decline       │ decline
//	                     │  v               v
//	                    DECLINED <──────────┘
//	                        └────── confirm ──────> PAID
//
// Operators may additionally force any status through an override, and
// Unpaid stands for "no row" at the API boundary.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	Unpaid
	PendingConfirmation
	Paid
	Declined
	Delivered
)

var statusLiterals = map[Status]string{
	Unpaid:              "UNPAID",
	PendingConfirmation: "PENDING_CONFIRMATION",
	Paid:                "PAID",
	Declined:            "DECLINED",
	Delivered:           "DELIVERED",
}

// ParseStatus accepts the five API literals, case-insensitively.
func ParseStatus(literal string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(literal))
	for s, l := range statusLiterals {
		if l == normalized {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not one of UNPAID, PENDING_CONFIRMATION, PAID, DECLINED, DELIVERED", literal),
	)
}

// String returns the wire literal, or "UNKNOWN".
func (s Status) String() string {
	if l, ok := statusLiterals[s]; ok {
		return l
	}
	return "UNKNOWN"
}

// Validate accepts any of the five API statuses.
func (s Status) Validate() error {
	if _, ok := statusLiterals[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ValidateStored rejects statuses that cannot live in an order row.
func (s Status) ValidateStored() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s == Unpaid {
		return errs.NewValueIsInvalidErrorWithCause("status", errors.New("UNPAID is represented by the absence of an order"))
	}
	return nil
}

// RequiresRedemptionCode reports whether an order in this status must carry a code.
func (s Status) RequiresRedemptionCode() bool {
	return s == Paid || s == Delivered
}

// SubmitEvidence moves to PendingConfirmation. A paid or delivered order
// cannot be sent back for review by the student.
func (s Status) SubmitEvidence() (Status, error) {
	switch s {
	case Unpaid, PendingConfirmation, Declined:
		return PendingConfirmation, nil
	case Paid:
		return s, errs.NewTransitionIsInvalidErrorWithCause(s.String(), PendingConfirmation.String(), ErrAlreadyPaid)
	case Delivered:
		return s, errs.NewTransitionIsInvalidErrorWithCause(s.String(), PendingConfirmation.String(), ErrAlreadyDelivered)
	default:
		return s, errs.NewTransitionIsInvalidError(s.String(), PendingConfirmation.String())
	}
}

// Confirm moves to Paid. Confirming a paid order is a no-op.
func (s Status) Confirm() (Status, error) {
	switch s {
	case PendingConfirmation, Declined, Paid:
		return Paid, nil
	case Delivered:
		return s, errs.NewTransitionIsInvalidErrorWithCause(s.String(), Paid.String(), ErrAlreadyDelivered)
	default:
		return s, errs.NewTransitionIsInvalidErrorWithCause(s.String(), Paid.String(), ErrNotPaid)
	}
}

// Decline moves to Declined. Declining a declined order is a no-op.
func (s Status) Decline() (Status, error) {
	switch s {
	case PendingConfirmation, Paid, Declined:
		return Declined, nil
	case Delivered:
		return s, errs.NewTransitionIsInvalidErrorWithCause(s.String(), Declined.String(), ErrAlreadyDelivered)
	default:
		return s, errs.NewTransitionIsInvalidError(s.String(), Declined.String())
	}
}

// Redeem moves Paid to Delivered. Every other status yields a
// TransitionIsInvalidError whose cause names the reason.
func (s Status) Redeem() (Status, error) {
	var cause error
	switch s {
	case Paid:
		return Delivered, nil
	case Delivered:
		cause = ErrAlreadyDelivered
	case Declined:
		cause = ErrDeclined
	default:
		cause = ErrNotPaid
	}
	return s, errs.NewTransitionIsInvalidErrorWithCause(s.String(), Delivered.String(), cause)
}
