package http

import (
	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// maxEvidenceBytes caps an uploaded payment screenshot.
const maxEvidenceBytes = 10 << 20

func pathID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func parseIDs(name string, raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromString(r)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
