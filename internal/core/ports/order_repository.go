// Package ports declares what the application core needs from the outside
// world: persistence, object storage, messaging and scan de-duplication.
package ports

import (
	"context"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates. Every write that changes a stored
// status is reported to the unit of work so the change reaches the outbox.
//
// Writes never replace an existing redemption code: the store applies
// COALESCE(redemption_code, <new>) on every update.
type OrderRepository interface {
	// Get returns an ObjectNotFoundError when id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByStudentAndProduct returns an ObjectNotFoundError when the student has no order for the product.
	GetByStudentAndProduct(ctx context.Context, studentID, productID kernel.UUID) (*order.Order, error)

	// GetByRedemptionCode returns an ObjectNotFoundError for an unknown code.
	GetByRedemptionCode(ctx context.Context, code kernel.UUID) (*order.Order, error)

	// AddIfAbsent inserts a new order unless the (student, product) pair already
	// has one, in which case it returns false and writes nothing.
	AddIfAbsent(ctx context.Context, aggregate *order.Order) (bool, error)

	// UpdateIfStatus writes aggregate only if the stored status still equals
	// expected. It returns false when another writer got there first.
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) (bool, error)

	// Upsert inserts candidate or, when the pair already has an order, overwrites
	// its status while keeping any existing redemption code. It returns the stored row.
	// An event is tracked only when the stored status actually changes.
	Upsert(ctx context.Context, candidate *order.Order) (*order.Order, error)

	// Remove deletes the pair's order and reports whether there was one.
	Remove(ctx context.Context, studentID, productID kernel.UUID) (bool, error)

	// RemoveForStudents deletes the product's orders of the listed students in one statement.
	RemoveForStudents(ctx context.Context, productID kernel.UUID, studentIDs []kernel.UUID) (int64, error)

	// RemoveAllForProduct deletes every order of a product.
	RemoveAllForProduct(ctx context.Context, productID kernel.UUID) (int64, error)

	// ConfirmAllPending moves every PENDING_CONFIRMATION order of the product to
	// PAID in one statement, assigning codes where missing.
	ConfirmAllPending(ctx context.Context, productID kernel.UUID) (int64, error)
}
