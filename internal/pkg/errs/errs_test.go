package errs_test

import (
	"errors"
	"testing"

	"bookdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "123")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("student", "s-1", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: student, ID is: s-1 (cause: record not found)",
			err.Error())
	})

	t.Run("numeric identifiers are printed plainly", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("class", 456)
		assert.Equal(t, "object not found: 456", err.Error())
	})
}

func TestValueErrors(t *testing.T) {
	t.Run("invalid", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("status", errors.New("FOO is not a status"))
		assert.Equal(t, "value is invalid: status (cause: FOO is not a status)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("required", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("evidenceRef")
		assert.Equal(t, "value is required: evidenceRef", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("out of range", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("classId", 9, 1, 5)
		assert.Equal(t, "value is invalid: 9 is classId, min value is 1, max value is 5", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("name", "a\nb", 1, 3)
		assert.NotContains(t, err.Error(), "\n")
		assert.Contains(t, err.Error(), "a b")
	})
}

func TestTransitionIsInvalidError(t *testing.T) {
	refinement := errors.New("order is already delivered")

	t.Run("matches kind and refinement", func(t *testing.T) {
		err := errs.NewTransitionIsInvalidErrorWithCause("DELIVERED", "DELIVERED", refinement)

		require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
		require.ErrorIs(t, err, refinement)
		assert.Equal(t,
			"transition is invalid: DELIVERED -> DELIVERED (cause: order is already delivered)",
			err.Error())
	})

	t.Run("errors.As through wrapping", func(t *testing.T) {
		wrapped := errors.Join(errors.New("context"), errs.NewTransitionIsInvalidError("PAID", "PENDING_CONFIRMATION"))

		var target *errs.TransitionIsInvalidError
		require.ErrorAs(t, wrapped, &target)
		assert.Equal(t, "PAID", target.From)
	})
}

func TestAccessDeniedAndStorageFailure(t *testing.T) {
	denied := errs.NewAccessDeniedError("op-1", "product p-9")
	require.ErrorIs(t, denied, errs.ErrAccessDenied)
	assert.Equal(t, "access denied: op-1 may not act on product p-9", denied.Error())

	cause := errors.New("bucket unreachable")
	failure := errs.NewStorageFailureError("put", "payments/1.jpg", cause)
	require.ErrorIs(t, failure, errs.ErrStorageFailure)
	require.ErrorIs(t, failure, cause)
}
