package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction. Repositories obtained after Begin run
// inside it; status changes they report are written to the outbox on Commit,
// in the same transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error

	// Rollback is safe to defer: it returns an error, which callers ignore,
	// when the transaction is already finished.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ProductRepository() ProductRepository
	StudentRepository() StudentRepository
	OutboxRepository() OutboxRepository
}
