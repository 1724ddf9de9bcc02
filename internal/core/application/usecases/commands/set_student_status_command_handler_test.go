package commands_test

import (
	"errors"
	"slices"
	"testing"

	"bookdesk/internal/core/application/usecases/commands"
	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/order"
	"bookdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetStudentStatusCommandHandler_Handle_UnpaidRemovesOrder(t *testing.T) {
	ctx := t.Context()
	operatorID := kernel.NewUUID()
	p := newTestProduct(t, operatorID)
	s := newTestStudent(t)
	cmd, err := commands.NewSetStudentStatusCommand(operatorID, s.ID(), p.ID(), order.Unpaid)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTx(true)
	uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	uow.students.On("Get", mock.Anything, s.ID()).Return(s, nil).Once()
	uow.orders.On("Remove", mock.Anything, s.ID(), p.ID()).Return(false, nil).Once()

	h := commands.NewSetStudentStatusCommandHandler(orderFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	uow.assertAll(t)
}

func TestSetStudentStatusCommandHandler_Handle_PaidUpsertsWithCandidateCode(t *testing.T) {
	ctx := t.Context()
	operatorID := kernel.NewUUID()
	p := newTestProduct(t, operatorID)
	s := newTestStudent(t)
	cmd, _ := commands.NewSetStudentStatusCommand(operatorID, s.ID(), p.ID(), order.Paid)

	uow := newMockUoW()
	uow.expectTx(true)
	uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	uow.students.On("Get", mock.Anything, s.ID()).Return(s, nil).Once()
	uow.orders.On("Upsert", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.Status() == order.Paid && o.RedemptionCode() != nil &&
			o.StudentID() == s.ID() && o.ProductID() == p.ID()
	})).Return(restoreTestOrder(t, s.ID(), p.ID(), order.Paid), nil).Once()

	h := commands.NewSetStudentStatusCommandHandler(orderFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	uow.assertAll(t)
}

func TestSetStudentStatusCommandHandler_Handle_DeclinedCarriesNoCode(t *testing.T) {
	ctx := t.Context()
	operatorID := kernel.NewUUID()
	p := newTestProduct(t, operatorID)
	s := newTestStudent(t)
	cmd, _ := commands.NewSetStudentStatusCommand(operatorID, s.ID(), p.ID(), order.Declined)

	uow := newMockUoW()
	uow.expectTx(true)
	uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	uow.students.On("Get", mock.Anything, s.ID()).Return(s, nil).Once()
	uow.orders.On("Upsert", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.Status() == order.Declined && o.RedemptionCode() == nil
	})).Return(restoreTestOrder(t, s.ID(), p.ID(), order.Declined), nil).Once()

	h := commands.NewSetStudentStatusCommandHandler(orderFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	uow.assertAll(t)
}

func TestSetStudentStatusCommandHandler_Handle_OtherOperatorIsDenied(t *testing.T) {
	ctx := t.Context()
	p := newTestProduct(t, kernel.NewUUID())
	cmd, _ := commands.NewSetStudentStatusCommand(kernel.NewUUID(), kernel.NewUUID(), p.ID(), order.Paid)

	uow := newMockUoW()
	uow.expectTx(false)
	uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()

	h := commands.NewSetStudentStatusCommandHandler(orderFactory(uow))
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrAccessDenied)
	uow.assertAll(t)
}

func TestNewSetStudentStatusCommand_RejectsUnknownStatus(t *testing.T) {
	_, err := commands.NewSetStudentStatusCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), order.Unknown)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestBulkSetStudentStatusCommandHandler_Handle_UnpaidDeletesInOneStatement(t *testing.T) {
	ctx := t.Context()
	operatorID := kernel.NewUUID()
	p := newTestProduct(t, operatorID)
	a, b := kernel.NewUUID(), kernel.NewUUID()
	cmd, err := commands.NewBulkSetStudentStatusCommand(operatorID, p.ID(), []kernel.UUID{a, b, a}, order.Unpaid)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTx(true)
	uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	uow.students.On("CountExisting", mock.Anything, []kernel.UUID{a, b}).Return(int64(2), nil).Once()
	uow.orders.On("RemoveForStudents", mock.Anything, p.ID(), []kernel.UUID{a, b}).Return(int64(1), nil).Once()

	h := commands.NewBulkSetStudentStatusCommandHandler(orderFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	uow.assertAll(t)
}

func TestBulkSetStudentStatusCommandHandler_Handle_PaidUpsertsEachStudent(t *testing.T) {
	ctx := t.Context()
	operatorID := kernel.NewUUID()
	p := newTestProduct(t, operatorID)
	ids := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}
	cmd, _ := commands.NewBulkSetStudentStatusCommand(operatorID, p.ID(), ids, order.Paid)

	codes := map[kernel.UUID]struct{}{}
	uow := newMockUoW()
	uow.expectTx(true)
	uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	uow.students.On("CountExisting", mock.Anything, ids).Return(int64(3), nil).Once()
	uow.orders.On("Upsert", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			codes[*args.Get(1).(*order.Order).RedemptionCode()] = struct{}{}
		}).
		Return(nil, nil).Times(3)

	h := commands.NewBulkSetStudentStatusCommandHandler(orderFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Len(t, codes, 3)
	uow.assertAll(t)
}

func TestBulkSetStudentStatusCommandHandler_Handle_UpsertsInIDOrder(t *testing.T) {
	ctx := t.Context()
	operatorID := kernel.NewUUID()
	p := newTestProduct(t, operatorID)
	ids := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}
	slices.SortFunc(ids, func(a, b kernel.UUID) int { return b.Compare(a) })
	cmd, err := commands.NewBulkSetStudentStatusCommand(operatorID, p.ID(), ids, order.Delivered)
	require.NoError(t, err)

	var upserted []kernel.UUID
	uow := newMockUoW()
	uow.expectTx(true)
	uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	uow.students.On("CountExisting", mock.Anything, mock.Anything).Return(int64(4), nil).Once()
	uow.orders.On("Upsert", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			upserted = append(upserted, args.Get(1).(*order.Order).StudentID())
		}).
		Return(nil, nil).Times(4)

	h := commands.NewBulkSetStudentStatusCommandHandler(orderFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	require.Len(t, upserted, 4)
	assert.True(t, slices.IsSortedFunc(upserted, kernel.UUID.Compare))
	assert.ElementsMatch(t, ids, upserted)
	uow.assertAll(t)
}

func TestBulkSetStudentStatusCommandHandler_Handle_UnknownStudentAbortsBatch(t *testing.T) {
	ctx := t.Context()
	operatorID := kernel.NewUUID()
	p := newTestProduct(t, operatorID)
	ids := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
	cmd, _ := commands.NewBulkSetStudentStatusCommand(operatorID, p.ID(), ids, order.Delivered)

	uow := newMockUoW()
	uow.expectTx(false)
	uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	uow.students.On("CountExisting", mock.Anything, ids).Return(int64(1), nil).Once()

	h := commands.NewBulkSetStudentStatusCommandHandler(orderFactory(uow))
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
	uow.orders.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	uow.assertAll(t)
}

func TestBulkSetStudentStatusCommandHandler_Handle_StoreFailureRollsBack(t *testing.T) {
	ctx := t.Context()
	operatorID := kernel.NewUUID()
	p := newTestProduct(t, operatorID)
	ids := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
	cmd, _ := commands.NewBulkSetStudentStatusCommand(operatorID, p.ID(), ids, order.Paid)

	uow := newMockUoW()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	uow.students.On("CountExisting", mock.Anything, ids).Return(int64(2), nil).Once()
	uow.orders.On("Upsert", mock.Anything, mock.Anything).Return(nil, nil).Once()
	uow.orders.On("Upsert", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()

	h := commands.NewBulkSetStudentStatusCommandHandler(orderFactory(uow))
	require.EqualError(t, h.Handle(ctx, cmd), "connection reset")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.assertAll(t)
}

func TestNewBulkSetStudentStatusCommand_Validation(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		_, err := commands.NewBulkSetStudentStatusCommand(kernel.NewUUID(), kernel.NewUUID(), nil, order.Paid)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero id in list", func(t *testing.T) {
		_, err := commands.NewBulkSetStudentStatusCommand(kernel.NewUUID(), kernel.NewUUID(),
			[]kernel.UUID{kernel.NewUUID(), {}}, order.Paid)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorContains(t, err, "studentIds[1]")
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		id := kernel.NewUUID()
		cmd, err := commands.NewBulkSetStudentStatusCommand(kernel.NewUUID(), kernel.NewUUID(),
			[]kernel.UUID{id, id, id}, order.Declined)
		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{id}, cmd.StudentIDs())
	})
}

func TestConfirmAllPendingCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	operatorID := kernel.NewUUID()
	p := newTestProduct(t, operatorID)
	cmd, err := commands.NewConfirmAllPendingCommand(operatorID, p.ID())
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTx(true)
	uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	uow.orders.On("ConfirmAllPending", mock.Anything, p.ID()).Return(int64(7), nil).Once()

	h := commands.NewConfirmAllPendingCommandHandler(orderFactory(uow))
	confirmed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, int64(7), confirmed)
	uow.assertAll(t)
}

func TestConfirmAllPendingCommandHandler_Handle_OtherOperatorIsDenied(t *testing.T) {
	ctx := t.Context()
	p := newTestProduct(t, kernel.NewUUID())
	cmd, _ := commands.NewConfirmAllPendingCommand(kernel.NewUUID(), p.ID())

	uow := newMockUoW()
	uow.expectTx(false)
	uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()

	h := commands.NewConfirmAllPendingCommandHandler(orderFactory(uow))
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrAccessDenied)
	uow.assertAll(t)
}
