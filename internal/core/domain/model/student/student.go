// Package student holds the read-only roster the order engine checks against.
package student

import (
	"errors"
	"fmt"
	"strings"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/product"
	"bookdesk/internal/pkg/errs"
)

// MinSeatIDLength filters header rows and stray cells out of roster imports.
const MinSeatIDLength = 3

// Student is identified by id internally and by seatId on printed rosters.
type Student struct {
	id      kernel.UUID
	name    string
	seatID  string
	classID int
}

// NewStudent validates a roster entry.
func NewStudent(id kernel.UUID, name, seatID string, classID int) (*Student, error) {
	name = strings.TrimSpace(name)
	seatID = strings.TrimSpace(seatID)

	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("id", err))
	}
	if name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("name"))
	}
	if len(seatID) < MinSeatIDLength {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"seatId", fmt.Errorf("%q is shorter than %d characters", seatID, MinSeatIDLength)))
	}
	if classID < product.MinClassID || classID > product.MaxClassID {
		problems = append(problems, errs.NewValueIsOutOfRangeError("classId", classID, product.MinClassID, product.MaxClassID))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Student{id: id, name: name, seatID: seatID, classID: classID}, nil
}

func (s *Student) ID() kernel.UUID {
	return s.id
}

func (s *Student) Name() string {
	return s.name
}

func (s *Student) SeatID() string {
	return s.seatID
}

func (s *Student) ClassID() int {
	return s.classID
}

// CanBuy reports whether p is offered to this student's class.
func (s *Student) CanBuy(p *product.Product) bool {
	return p.ClassID() == s.classID && p.IsActive()
}
