package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/pkg/errs"
	"bookdesk/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned by Validate for an Order built as a literal.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is a student's purchase of one product. There is at most one Order per
// (student, product) pair; the store enforces it with a unique index.
//
// Invariants:
//   - status is one of the four stored statuses
//   - PAID and DELIVERED orders carry a redemption code
//   - a redemption code, once assigned, is never replaced
type Order struct {
	id              kernel.UUID
	studentID       kernel.UUID
	productID       kernel.UUID
	status          Status
	evidenceRef     string
	activationPhone string
	redemptionCode  *kernel.UUID
	createdAt       time.Time

	guard guard.ConstructorGuard
}

// NewOrder opens a PENDING_CONFIRMATION order for a student's first evidence submission.
// activationPhone may be empty.
func NewOrder(
	id, studentID, productID kernel.UUID,
	evidenceRef, activationPhone string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:          PendingConfirmation,
		activationPhone: strings.TrimSpace(activationPhone),
		createdAt:       now,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setID(&o.id, "id", id),
		setID(&o.studentID, "studentId", studentID),
		setID(&o.productID, "productId", productID),
		o.setEvidenceRef(evidenceRef),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// NewOverride builds the candidate row for an operator setting a status
// directly. When the target needs a redemption code a fresh one is attached;
// the store keeps an existing code in preference to it.
func NewOverride(studentID, productID kernel.UUID, target Status, now time.Time) (*Order, error) {
	if err := target.ValidateStored(); err != nil {
		return nil, err
	}

	o := &Order{
		id:        kernel.NewUUID(),
		status:    target,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		setID(&o.studentID, "studentId", studentID),
		setID(&o.productID, "productId", productID),
	); err != nil {
		return nil, err
	}
	if target.RequiresRedemptionCode() {
		o.assignRedemptionCode()
	}

	return o, nil
}

// RestoreOrder rebuilds an order read from the store and checks its invariants.
func RestoreOrder(
	id, studentID, productID kernel.UUID,
	status Status,
	evidenceRef, activationPhone string,
	redemptionCode *kernel.UUID,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:          status,
		evidenceRef:     evidenceRef,
		activationPhone: activationPhone,
		createdAt:       createdAt,
		guard:           guard.NewConstructorGuard(),
	}

	err := errors.Join(
		setID(&o.id, "id", id),
		setID(&o.studentID, "studentId", studentID),
		setID(&o.productID, "productId", productID),
		status.ValidateStored(),
	)
	if err != nil {
		return nil, err
	}

	if redemptionCode != nil {
		if err = redemptionCode.Validate(); err != nil {
			return nil, err
		}
		code := *redemptionCode
		o.redemptionCode = &code
	}
	if status.RequiresRedemptionCode() && o.redemptionCode == nil {
		return nil, errs.NewValueIsRequiredErrorWithCause(
			"redemptionCode",
			fmt.Errorf("%s order has no redemption code", status),
		)
	}

	return o, nil
}

// Validate reports whether o was built by a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID is the order id. It is stable across overrides of the same pair.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// StudentID is the buying student.
func (o *Order) StudentID() kernel.UUID {
	return o.studentID
}

// ProductID is the product being bought.
func (o *Order) ProductID() kernel.UUID {
	return o.productID
}

// Status is the stored status. It is never Unpaid, which means no order exists.
func (o *Order) Status() Status {
	return o.status
}

// EvidenceRef is the object storage key of the latest payment proof, or empty
// for an order created by an operator override.
func (o *Order) EvidenceRef() string {
	return o.evidenceRef
}

// ActivationPhone is the phone the student asked to activate on, possibly empty.
func (o *Order) ActivationPhone() string {
	return o.activationPhone
}

// CreatedAt is the time of the latest evidence submission and orders the
// review queue.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// RedemptionCode returns a copy of the code, or nil before the order is first paid.
func (o *Order) RedemptionCode() *kernel.UUID {
	if o.redemptionCode == nil {
		return nil
	}
	code := *o.redemptionCode
	return &code
}

// SubmitEvidence records a (re)submitted payment proof. The evidence reference
// is replaced, the activation phone only when a new one is given, and the
// order is moved to the back of the review queue by refreshing createdAt.
func (o *Order) SubmitEvidence(evidenceRef, activationPhone string, now time.Time) error {
	next, err := o.status.SubmitEvidence()
	if err != nil {
		return err
	}
	if err = o.setEvidenceRef(evidenceRef); err != nil {
		return err
	}

	if phone := strings.TrimSpace(activationPhone); phone != "" {
		o.activationPhone = phone
	}
	o.status = next
	o.createdAt = now
	return nil
}

// Confirm accepts the payment. It reports whether anything changed so callers
// can skip the write for an order that is already PAID.
func (o *Order) Confirm() (bool, error) {
	next, err := o.status.Confirm()
	if err != nil {
		return false, err
	}

	changed := next != o.status
	o.status = next
	if o.redemptionCode == nil {
		o.assignRedemptionCode()
		changed = true
	}
	return changed, nil
}

// Decline rejects the payment. The redemption code, if any, is kept so a later
// confirm hands the student the same QR.
func (o *Order) Decline() (bool, error) {
	next, err := o.status.Decline()
	if err != nil {
		return false, err
	}

	changed := next != o.status
	o.status = next
	return changed, nil
}

// Redeem hands the goods over. Only a PAID order can be redeemed.
func (o *Order) Redeem() error {
	next, err := o.status.Redeem()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

func (o *Order) assignRedemptionCode() {
	code := kernel.NewUUID()
	o.redemptionCode = &code
}

func (o *Order) setEvidenceRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return errs.NewValueIsRequiredError("evidenceRef")
	}
	o.evidenceRef = ref
	return nil
}

func setID(dst *kernel.UUID, name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	*dst = id
	return nil
}
