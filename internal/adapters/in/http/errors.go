package http

import (
	"errors"
	"net/http"

	"bookdesk/internal/core/application/usecases/commands"
	"bookdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Response is the envelope every mutating endpoint and every error uses.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, gorm.ErrForeignKeyViolated):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrTransitionIsInvalid), errors.Is(err, commands.ErrConcurrentUpdate),
		errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrStorageFailure):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail answers with the status err maps to. Internal errors are logged and
// their text is not sent to the client.
func (s *Server) fail(c echo.Context, err error) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		return failure(c, status, errors.New("internal error"))
	}
	return failure(c, status, err)
}

func failure(c echo.Context, status int, err error) error {
	return c.JSON(status, Response{Success: false, Error: err.Error()})
}

func badRequest(c echo.Context, err error) error {
	return failure(c, http.StatusBadRequest, err)
}
