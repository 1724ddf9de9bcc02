package product

import (
	"fmt"
	"strings"

	"bookdesk/internal/pkg/errs"
)

// Kind tells how a product reaches the student.
type Kind string

const (
	KindBook   Kind = "BOOK"
	KindCourse Kind = "COURSE"
)

// ParseKind defaults an empty literal to KindBook.
func ParseKind(literal string) (Kind, error) {
	switch k := Kind(strings.ToUpper(strings.TrimSpace(literal))); k {
	case "":
		return KindBook, nil
	case KindBook, KindCourse:
		return k, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not BOOK or COURSE", literal))
	}
}

func (k Kind) String() string {
	return string(k)
}

// NeedsActivationPhone reports whether students must leave a phone number for activation.
func (k Kind) NeedsActivationPhone() bool {
	return k == KindCourse
}
