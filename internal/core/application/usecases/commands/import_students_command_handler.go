package commands

import (
	"context"
	"log/slog"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/student"
)

// ImportReport counts what an import did with the roster rows.
type ImportReport struct {
	Imported int
	Skipped  int
}

// ImportStudentsCommandHandler upserts a roster in one transaction. Rows that
// fail validation, such as header lines with a short seat id, are skipped.
type ImportStudentsCommandHandler struct {
	uowFactory RosterUoWFactory
	logger     *slog.Logger
}

func NewImportStudentsCommandHandler(uowFactory RosterUoWFactory, logger *slog.Logger) ImportStudentsCommandHandler {
	return ImportStudentsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "import_students"),
	}
}

func (h ImportStudentsCommandHandler) Handle(ctx context.Context, command ImportStudentsCommand) (ImportReport, error) {
	if err := command.Validate(); err != nil {
		return ImportReport{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ImportReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var report ImportReport
	studentRepo := uow.StudentRepository()
	for i, record := range command.Records() {
		s, err := student.NewStudent(kernel.NewUUID(), record.Name, record.SeatID, record.ClassID)
		if err != nil {
			h.logger.DebugContext(ctx, "skipping roster row", "row", i+1, "error", err)
			report.Skipped++
			continue
		}

		if _, err = studentRepo.UpsertBySeatID(ctx, s); err != nil {
			return ImportReport{}, err
		}
		report.Imported++
	}

	if err := uow.Commit(ctx); err != nil {
		return ImportReport{}, err
	}

	return report, nil
}
