package commands

import (
	"errors"
	"strings"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/pkg/errs"
	"bookdesk/internal/pkg/guard"
)

var ErrSubmitEvidenceCommandIsNotConstructed = errors.New(
	"SubmitEvidenceCommand must be created via NewSubmitEvidenceCommand constructor",
)

// SubmitEvidenceCommand carries a student's payment proof for a product.
// The evidence reference is an object-storage key or an absolute URL.
//
// Example:
//
//	cmd, err := NewSubmitEvidenceCommand(studentID, productID, "payments/1700000000000-ab12.jpg", "")
//	if err != nil {
//	    return err
//	}
//	orderID, err := handler.Handle(ctx, cmd)
type SubmitEvidenceCommand struct { //nolint:recvcheck //using for validation
	studentID       kernel.UUID
	productID       kernel.UUID
	evidenceRef     string
	activationPhone string

	guard guard.ConstructorGuard
}

// NewSubmitEvidenceCommand validates ids and requires a non-empty evidence reference.
// activationPhone is optional.
func NewSubmitEvidenceCommand(
	studentID, productID kernel.UUID, evidenceRef, activationPhone string,
) (SubmitEvidenceCommand, error) {
	cmd := SubmitEvidenceCommand{
		activationPhone: strings.TrimSpace(activationPhone),
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setCommandID(&cmd.studentID, "studentId", studentID),
		setCommandID(&cmd.productID, "productId", productID),
		cmd.setEvidenceRef(evidenceRef),
	); err != nil {
		return SubmitEvidenceCommand{}, err
	}

	return cmd, nil
}

func (c SubmitEvidenceCommand) Validate() error {
	return c.guard.Validate(ErrSubmitEvidenceCommandIsNotConstructed)
}

func (c SubmitEvidenceCommand) StudentID() kernel.UUID {
	return c.studentID
}

func (c SubmitEvidenceCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c SubmitEvidenceCommand) EvidenceRef() string {
	return c.evidenceRef
}

func (c SubmitEvidenceCommand) ActivationPhone() string {
	return c.activationPhone
}

func (c *SubmitEvidenceCommand) setEvidenceRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return errs.NewValueIsRequiredError("evidenceRef")
	}

	c.evidenceRef = ref
	return nil
}

// setCommandID copies id into dst when it is a constructed, non-nil UUID.
func setCommandID(dst *kernel.UUID, name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}

	*dst = id
	return nil
}
