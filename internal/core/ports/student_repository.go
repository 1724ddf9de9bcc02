package ports

import (
	"context"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/student"
)

type StudentRepository interface {
	// Get returns an ObjectNotFoundError when id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*student.Student, error)

	// CountExisting returns how many of ids belong to known students.
	CountExisting(ctx context.Context, ids []kernel.UUID) (int64, error)

	// UpsertBySeatID inserts the student or updates name and class of the
	// student already holding that seat id. It returns the stored id.
	UpsertBySeatID(ctx context.Context, s *student.Student) (kernel.UUID, error)
}
