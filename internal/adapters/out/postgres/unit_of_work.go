// Package postgres implements the unit of work over GORM and wires the
// per-aggregate repositories to the active transaction.
//
// Order status changes reported by the order repository are kept in memory
// until Commit, which writes them to the outbox table inside the same
// transaction. A rolled back unit of work therefore never publishes anything.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if _, err := uow.OrderRepository().UpdateIfStatus(ctx, o, order.PendingConfirmation); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"bookdesk/internal/adapters/out/postgres/orderrepo"
	"bookdesk/internal/adapters/out/postgres/outboxrepo"
	"bookdesk/internal/adapters/out/postgres/productrepo"
	"bookdesk/internal/adapters/out/postgres/studentrepo"
	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/order"
	"bookdesk/internal/core/ports"

	"gorm.io/gorm"
)

type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork is not safe for concurrent use; create one per command.
type GormUnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	changes []order.StatusChanged
}

// Begin opens a READ COMMITTED transaction. Calling Begin twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	uow.changes = uow.changes[:0]
	return nil
}

// Commit writes tracked status changes to the outbox and commits. If the
// outbox write fails the transaction is rolled back.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.flushOutbox(ctx); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.changes = nil
	return err
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.changes = nil
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.conn())
}

func (uow *GormUnitOfWork) StudentRepository() ports.StudentRepository {
	return studentrepo.NewGormStudentRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackStatusChange is called by the order repository after each write that
// changed a stored status.
func (uow *GormUnitOfWork) TrackStatusChange(event order.StatusChanged) {
	uow.changes = append(uow.changes, event)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) flushOutbox(ctx context.Context) error {
	if len(uow.changes) == 0 {
		return nil
	}

	messages := make([]ports.OutboxMessage, 0, len(uow.changes))
	for _, change := range uow.changes {
		payload, err := json.Marshal(change)
		if err != nil {
			return fmt.Errorf("encode %s for order %s: %w", order.StatusChangedEventType, change.OrderID, err)
		}
		messages = append(messages, ports.OutboxMessage{
			ID:          kernel.NewUUID(),
			AggregateID: change.OrderID,
			EventType:   order.StatusChangedEventType,
			Payload:     payload,
			CreatedAt:   change.OccurredAt,
		})
	}

	return outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, messages...)
}
