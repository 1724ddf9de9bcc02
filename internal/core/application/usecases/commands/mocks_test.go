package commands_test

import (
	"context"
	"testing"
	"time"

	"bookdesk/internal/core/application/usecases/commands"
	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/order"
	"bookdesk/internal/core/domain/model/product"
	"bookdesk/internal/core/domain/model/student"
	"bookdesk/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockOrderRepository) GetByStudentAndProduct(
	ctx context.Context, studentID, productID kernel.UUID,
) (*order.Order, error) {
	args := m.Called(ctx, studentID, productID)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockOrderRepository) GetByRedemptionCode(ctx context.Context, code kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, code)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockOrderRepository) AddIfAbsent(ctx context.Context, o *order.Order) (bool, error) {
	args := m.Called(ctx, o)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) UpdateIfStatus(ctx context.Context, o *order.Order, expected order.Status) (bool, error) {
	args := m.Called(ctx, o, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Upsert(ctx context.Context, candidate *order.Order) (*order.Order, error) {
	args := m.Called(ctx, candidate)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockOrderRepository) Remove(ctx context.Context, studentID, productID kernel.UUID) (bool, error) {
	args := m.Called(ctx, studentID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) RemoveForStudents(
	ctx context.Context, productID kernel.UUID, studentIDs []kernel.UUID,
) (int64, error) {
	args := m.Called(ctx, productID, studentIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) RemoveAllForProduct(ctx context.Context, productID kernel.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) ConfirmAllPending(ctx context.Context, productID kernel.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func orderOrNil(v any) *order.Order {
	if v == nil {
		return nil
	}
	return v.(*order.Order)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Remove(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockStudentRepository struct{ mock.Mock }

func (m *MockStudentRepository) Get(ctx context.Context, id kernel.UUID) (*student.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*student.Student), args.Error(1)
}

func (m *MockStudentRepository) CountExisting(ctx context.Context, ids []kernel.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStudentRepository) UpsertBySeatID(ctx context.Context, s *student.Student) (kernel.UUID, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, messages ...ports.OutboxMessage) error {
	return m.Called(ctx, messages).Error(0)
}

func (m *MockOutboxRepository) ClaimUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	return m.Called(ctx, ids, at).Error(0)
}

func (m *MockOutboxRepository) DeletePublishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	return m.Called(ctx, messages).Error(0)
}

// MockUoW satisfies every unit of work view the handlers declare.
type MockUoW struct {
	mock.Mock

	orders   *MockOrderRepository
	products *MockProductRepository
	students *MockStudentRepository
	outbox   *MockOutboxRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:   new(MockOrderRepository),
		products: new(MockProductRepository),
		students: new(MockStudentRepository),
		outbox:   new(MockOutboxRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.orders
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	return m.products
}

func (m *MockUoW) StudentRepository() ports.StudentRepository {
	return m.students
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	return m.outbox
}

// expectTx registers Begin, the deferred Rollback and, when commit is true, Commit.
func (m *MockUoW) expectTx(commit bool) {
	m.On("Begin", mock.Anything).Return(nil).Once()
	if commit {
		m.On("Commit", mock.Anything).Return(nil).Once()
	}
	m.On("Rollback", mock.Anything).Return(nil).Maybe()
}

func (m *MockUoW) assertAll(t *testing.T) {
	t.Helper()
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.products.AssertExpectations(t)
	m.students.AssertExpectations(t)
	m.outbox.AssertExpectations(t)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockCatalogUoWFactory struct{ mock.Mock }

func (m *MockCatalogUoWFactory) Create() commands.CatalogUoW {
	return m.Called().Get(0).(commands.CatalogUoW)
}

type MockRosterUoWFactory struct{ mock.Mock }

func (m *MockRosterUoWFactory) Create() commands.RosterUoW {
	return m.Called().Get(0).(commands.RosterUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	return m.Called().Get(0).(commands.OutboxUoW)
}

func orderFactory(uow *MockUoW) *MockOrderUoWFactory {
	f := new(MockOrderUoWFactory)
	f.On("Create").Return(uow).Once()
	return f
}

func catalogFactory(uow *MockUoW) *MockCatalogUoWFactory {
	f := new(MockCatalogUoWFactory)
	f.On("Create").Return(uow).Once()
	return f
}

func newTestProduct(t *testing.T, ownerID kernel.UUID) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), ownerID, "Math Workbook", decimal.NewFromInt(120), 3,
		product.KindBook, product.DefaultPaymentOptions("01000000000"), time.Now())
	require.NoError(t, err)
	return p
}

func newTestStudent(t *testing.T) *student.Student {
	t.Helper()
	s, err := student.NewStudent(kernel.NewUUID(), "Mona Adel", "30412", 3)
	require.NoError(t, err)
	return s
}

func restoreTestOrder(t *testing.T, studentID, productID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	var code *kernel.UUID
	if status.RequiresRedemptionCode() {
		c := kernel.NewUUID()
		code = &c
	}
	o, err := order.RestoreOrder(kernel.NewUUID(), studentID, productID, status, "payments/1-a.jpg", "", code, time.Now())
	require.NoError(t, err)
	return o
}
