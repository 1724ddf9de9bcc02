package guard_test

import (
	"errors"
	"testing"

	"bookdesk/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("command not constructed")

	t.Run("constructed guard passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns the supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero value falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInValue(t *testing.T) {
	type redemptionRequest struct {
		code  string
		guard guard.ConstructorGuard
	}
	errRequest := errors.New("redemptionRequest must be created via constructor")

	newRequest := func(code string) redemptionRequest {
		return redemptionRequest{code: code, guard: guard.NewConstructorGuard()}
	}

	require.NoError(t, newRequest("abc").guard.Validate(errRequest))

	var literal redemptionRequest
	require.ErrorIs(t, literal.guard.Validate(errRequest), errRequest)
}
