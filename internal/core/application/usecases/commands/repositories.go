// Package commands holds the operations that change state. Each command is
// built through a constructor that validates its input, and each handler runs
// its work inside one unit of work.
package commands

import (
	"context"
	"errors"

	"bookdesk/internal/core/ports"
)

// maxAttempts bounds compare-and-set retries when another writer changes the
// same order between our read and our conditional update.
const maxAttempts = 3

// ErrConcurrentUpdate is returned when every compare-and-set attempt lost a race.
var ErrConcurrentUpdate = errors.New("order was modified concurrently, try again")

// Narrow unit of work views. The Postgres unit of work satisfies all of them;
// handlers declare only what they touch.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	StudentRepoFactory interface {
		StudentRepository() ports.StudentRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW serves the order lifecycle commands.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		StudentRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CatalogUoW serves product management.
	CatalogUoW interface {
		TxManager
		ProductRepoFactory
		OrderRepoFactory
	}

	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	// RosterUoW serves student imports.
	RosterUoW interface {
		TxManager
		StudentRepoFactory
	}

	RosterUoWFactory interface {
		Create() RosterUoW
	}

	// OutboxUoW serves the event relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
