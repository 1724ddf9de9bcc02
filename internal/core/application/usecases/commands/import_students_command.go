package commands

import (
	"errors"

	"bookdesk/internal/pkg/errs"
	"bookdesk/internal/pkg/guard"
)

var ErrImportStudentsCommandIsNotConstructed = errors.New(
	"ImportStudentsCommand must be created via NewImportStudentsCommand constructor",
)

// StudentRecord is one roster row as it appears in the import file.
type StudentRecord struct {
	Name    string `yaml:"name"`
	SeatID  string `yaml:"seatId"`
	ClassID int    `yaml:"classId"`
}

// ImportStudentsCommand loads a roster. Rows are matched to existing students by seat id.
type ImportStudentsCommand struct {
	records []StudentRecord

	guard guard.ConstructorGuard
}

func NewImportStudentsCommand(records []StudentRecord) (ImportStudentsCommand, error) {
	if len(records) == 0 {
		return ImportStudentsCommand{}, errs.NewValueIsRequiredError("records")
	}

	return ImportStudentsCommand{
		records: append([]StudentRecord(nil), records...),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ImportStudentsCommand) Validate() error {
	return c.guard.Validate(ErrImportStudentsCommandIsNotConstructed)
}

func (c ImportStudentsCommand) Records() []StudentRecord {
	return append([]StudentRecord(nil), c.records...)
}
