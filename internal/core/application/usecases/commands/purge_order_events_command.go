package commands

import (
	"errors"
	"time"

	"bookdesk/internal/pkg/errs"
	"bookdesk/internal/pkg/guard"
)

// DefaultOutboxRetention is how long relayed events stay in the outbox.
const DefaultOutboxRetention = 7 * 24 * time.Hour

var ErrPurgeOrderEventsCommandIsNotConstructed = errors.New(
	"PurgeOrderEventsCommand must be created via NewPurgeOrderEventsCommand constructor",
)

type PurgeOrderEventsCommand struct {
	retention time.Duration

	guard guard.ConstructorGuard
}

func NewPurgeOrderEventsCommand(retention time.Duration) (PurgeOrderEventsCommand, error) {
	if retention <= 0 {
		return PurgeOrderEventsCommand{}, errs.NewValueIsOutOfRangeError("retention", retention, "1ns", "unbounded")
	}

	return PurgeOrderEventsCommand{
		retention: retention,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PurgeOrderEventsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeOrderEventsCommandIsNotConstructed)
}

func (c PurgeOrderEventsCommand) Retention() time.Duration {
	return c.retention
}
