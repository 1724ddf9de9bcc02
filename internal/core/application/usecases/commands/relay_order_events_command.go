package commands

import (
	"errors"

	"bookdesk/internal/pkg/errs"
	"bookdesk/internal/pkg/guard"
)

// DefaultRelayBatchSize is how many outbox rows one relay run claims.
const DefaultRelayBatchSize = 100

var ErrRelayOrderEventsCommandIsNotConstructed = errors.New(
	"RelayOrderEventsCommand must be created via NewRelayOrderEventsCommand constructor",
)

type RelayOrderEventsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewRelayOrderEventsCommand(batchSize int) (RelayOrderEventsCommand, error) {
	if batchSize <= 0 {
		return RelayOrderEventsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}

	return RelayOrderEventsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RelayOrderEventsCommand) Validate() error {
	return c.guard.Validate(ErrRelayOrderEventsCommandIsNotConstructed)
}

func (c RelayOrderEventsCommand) BatchSize() int {
	return c.batchSize
}
