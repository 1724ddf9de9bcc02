package product

import (
	"errors"
	"strings"
	"time"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/pkg/errs"
	"bookdesk/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Class ids run from first to fifth grade.
const (
	MinClassID = 1
	MaxClassID = 5
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")

// PaymentOptions describes how students can pay for a product.
type PaymentOptions struct {
	PhoneNumber         string
	AcceptsVodafoneCash bool
	AcceptsInstapay     bool
}

// DefaultPaymentOptions accepts both wallets.
func DefaultPaymentOptions(phone string) PaymentOptions {
	return PaymentOptions{PhoneNumber: phone, AcceptsVodafoneCash: true, AcceptsInstapay: true}
}

// Product is owned by exactly one operator. Only the owner may confirm,
// decline, redeem or override orders for it.
type Product struct {
	id        kernel.UUID
	ownerID   kernel.UUID
	name      string
	price     decimal.Decimal
	classID   int
	kind      Kind
	payment   PaymentOptions
	isActive  bool
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewProduct creates an active product.
func NewProduct(
	id, ownerID kernel.UUID,
	name string,
	price decimal.Decimal,
	classID int,
	kind Kind,
	payment PaymentOptions,
	now time.Time,
) (*Product, error) {
	p := &Product{
		kind:      kind,
		payment:   payment,
		isActive:  true,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}
	p.payment.PhoneNumber = strings.TrimSpace(payment.PhoneNumber)

	if err := errors.Join(
		p.validate(id, ownerID, name, price, classID),
		validateKind(kind),
	); err != nil {
		return nil, err
	}

	p.id = id
	p.ownerID = ownerID
	p.name = strings.TrimSpace(name)
	p.price = price
	p.classID = classID
	return p, nil
}

// RestoreProduct rebuilds a product read from the store.
func RestoreProduct(
	id, ownerID kernel.UUID,
	name string,
	price decimal.Decimal,
	classID int,
	kind Kind,
	payment PaymentOptions,
	isActive bool,
	createdAt time.Time,
) (*Product, error) {
	p, err := NewProduct(id, ownerID, name, price, classID, kind, payment, createdAt)
	if err != nil {
		return nil, err
	}
	p.isActive = isActive
	return p, nil
}

func (p *Product) validate(id, ownerID kernel.UUID, name string, price decimal.Decimal, classID int) error {
	var problems []error
	if id.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("id"))
	}
	if ownerID.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("ownerId"))
	}
	if strings.TrimSpace(name) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("name"))
	}
	if price.IsNegative() {
		problems = append(problems, errs.NewValueIsOutOfRangeError("price", price.String(), 0, "unbounded"))
	}
	if classID < MinClassID || classID > MaxClassID {
		problems = append(problems, errs.NewValueIsOutOfRangeError("classId", classID, MinClassID, MaxClassID))
	}
	return errors.Join(problems...)
}

func validateKind(k Kind) error {
	if k != KindBook && k != KindCourse {
		return errs.NewValueIsInvalidError("kind")
	}
	return nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) OwnerID() kernel.UUID {
	return p.ownerID
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Price() decimal.Decimal {
	return p.price
}

func (p *Product) ClassID() int {
	return p.classID
}

func (p *Product) Kind() Kind {
	return p.kind
}

func (p *Product) Payment() PaymentOptions {
	return p.payment
}

func (p *Product) IsActive() bool {
	return p.isActive
}

func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

// IsOwnedBy reports whether operatorID may manage this product.
func (p *Product) IsOwnedBy(operatorID kernel.UUID) bool {
	return !operatorID.IsZero() && p.ownerID.IsEqual(operatorID)
}

// EnsureOwnedBy returns an AccessDeniedError for anyone but the owner.
func (p *Product) EnsureOwnedBy(operatorID kernel.UUID) error {
	if !p.IsOwnedBy(operatorID) {
		return errs.NewAccessDeniedError(operatorID.String(), "product "+p.id.String())
	}
	return nil
}
