package commands_test

import (
	"errors"
	"testing"

	"bookdesk/internal/core/application/usecases/commands"
	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/order"
	"bookdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitEvidenceCommandHandler_Handle_CreatesOrder(t *testing.T) {
	ctx := t.Context()
	s := newTestStudent(t)
	p := newTestProduct(t, kernel.NewUUID())
	cmd, err := commands.NewSubmitEvidenceCommand(s.ID(), p.ID(), "payments/1-a.jpg", "")
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTx(true)
	uow.students.On("Get", mock.Anything, s.ID()).Return(s, nil).Once()
	uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	uow.orders.On("GetByStudentAndProduct", mock.Anything, s.ID(), p.ID()).
		Return(nil, errs.NewObjectNotFoundError("order", "pair")).Once()
	uow.orders.On("AddIfAbsent", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.Status() == order.PendingConfirmation && o.RedemptionCode() == nil &&
			o.EvidenceRef() == "payments/1-a.jpg"
	})).Return(true, nil).Once()

	h := commands.NewSubmitEvidenceCommandHandler(orderFactory(uow))
	orderID, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, orderID.IsZero())
	uow.assertAll(t)
}

func TestSubmitEvidenceCommandHandler_Handle_ResubmitsDeclinedOrder(t *testing.T) {
	ctx := t.Context()
	s := newTestStudent(t)
	p := newTestProduct(t, kernel.NewUUID())
	existing := restoreTestOrder(t, s.ID(), p.ID(), order.Declined)
	cmd, _ := commands.NewSubmitEvidenceCommand(s.ID(), p.ID(), "payments/2-b.jpg", "01111111111")

	uow := newMockUoW()
	uow.expectTx(true)
	uow.students.On("Get", mock.Anything, s.ID()).Return(s, nil).Once()
	uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	uow.orders.On("GetByStudentAndProduct", mock.Anything, s.ID(), p.ID()).Return(existing, nil).Once()
	uow.orders.On("UpdateIfStatus", mock.Anything, existing, order.Declined).Return(true, nil).Once()

	h := commands.NewSubmitEvidenceCommandHandler(orderFactory(uow))
	orderID, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, existing.ID(), orderID)
	assert.Equal(t, order.PendingConfirmation, existing.Status())
	assert.Equal(t, "payments/2-b.jpg", existing.EvidenceRef())
	assert.Equal(t, "01111111111", existing.ActivationPhone())
	uow.assertAll(t)
}

func TestSubmitEvidenceCommandHandler_Handle_RetriesWhenInsertLosesRace(t *testing.T) {
	ctx := t.Context()
	s := newTestStudent(t)
	p := newTestProduct(t, kernel.NewUUID())
	winner := restoreTestOrder(t, s.ID(), p.ID(), order.PendingConfirmation)
	cmd, _ := commands.NewSubmitEvidenceCommand(s.ID(), p.ID(), "payments/3-c.jpg", "")

	uow := newMockUoW()
	uow.expectTx(true)
	uow.students.On("Get", mock.Anything, s.ID()).Return(s, nil).Once()
	uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	uow.orders.On("GetByStudentAndProduct", mock.Anything, s.ID(), p.ID()).
		Return(nil, errs.NewObjectNotFoundError("order", "pair")).Once()
	uow.orders.On("AddIfAbsent", mock.Anything, mock.Anything).Return(false, nil).Once()
	uow.orders.On("GetByStudentAndProduct", mock.Anything, s.ID(), p.ID()).Return(winner, nil).Once()
	uow.orders.On("UpdateIfStatus", mock.Anything, winner, order.PendingConfirmation).Return(true, nil).Once()

	h := commands.NewSubmitEvidenceCommandHandler(orderFactory(uow))
	orderID, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, winner.ID(), orderID)
	uow.assertAll(t)
}

func TestSubmitEvidenceCommandHandler_Handle_RejectsPaidOrder(t *testing.T) {
	ctx := t.Context()
	s := newTestStudent(t)
	p := newTestProduct(t, kernel.NewUUID())
	paid := restoreTestOrder(t, s.ID(), p.ID(), order.Paid)
	cmd, _ := commands.NewSubmitEvidenceCommand(s.ID(), p.ID(), "payments/4-d.jpg", "")

	uow := newMockUoW()
	uow.expectTx(false)
	uow.students.On("Get", mock.Anything, s.ID()).Return(s, nil).Once()
	uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	uow.orders.On("GetByStudentAndProduct", mock.Anything, s.ID(), p.ID()).Return(paid, nil).Once()

	h := commands.NewSubmitEvidenceCommandHandler(orderFactory(uow))
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
	require.ErrorIs(t, err, order.ErrAlreadyPaid)
	uow.assertAll(t)
}

func TestSubmitEvidenceCommandHandler_Handle_UnknownStudent(t *testing.T) {
	ctx := t.Context()
	studentID := kernel.NewUUID()
	cmd, _ := commands.NewSubmitEvidenceCommand(studentID, kernel.NewUUID(), "payments/5-e.jpg", "")

	uow := newMockUoW()
	uow.expectTx(false)
	uow.students.On("Get", mock.Anything, studentID).
		Return(nil, errs.NewObjectNotFoundError("student", studentID)).Once()

	h := commands.NewSubmitEvidenceCommandHandler(orderFactory(uow))
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.assertAll(t)
}

func TestSubmitEvidenceCommandHandler_Handle_GivesUpAfterRepeatedRaces(t *testing.T) {
	ctx := t.Context()
	s := newTestStudent(t)
	p := newTestProduct(t, kernel.NewUUID())
	cmd, _ := commands.NewSubmitEvidenceCommand(s.ID(), p.ID(), "payments/6-f.jpg", "")

	uow := newMockUoW()
	uow.expectTx(false)
	uow.students.On("Get", mock.Anything, s.ID()).Return(s, nil).Once()
	uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	uow.orders.On("GetByStudentAndProduct", mock.Anything, s.ID(), p.ID()).
		Return(nil, errs.NewObjectNotFoundError("order", "pair")).Times(3)
	uow.orders.On("AddIfAbsent", mock.Anything, mock.Anything).Return(false, nil).Times(3)

	h := commands.NewSubmitEvidenceCommandHandler(orderFactory(uow))
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrConcurrentUpdate)
	uow.assertAll(t)
}

func TestSubmitEvidenceCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewSubmitEvidenceCommand(kernel.NewUUID(), kernel.NewUUID(), "payments/7-g.jpg", "")

	uow := newMockUoW()
	uow.On("Begin", mock.Anything).Return(errors.New("begin error")).Once()

	h := commands.NewSubmitEvidenceCommandHandler(orderFactory(uow))
	_, err := h.Handle(ctx, cmd)
	require.EqualError(t, err, "begin error")
	uow.assertAll(t)
}

func TestSubmitEvidenceCommandHandler_Handle_NotConstructed(t *testing.T) {
	h := commands.NewSubmitEvidenceCommandHandler(new(MockOrderUoWFactory))
	_, err := h.Handle(t.Context(), commands.SubmitEvidenceCommand{})
	require.ErrorIs(t, err, commands.ErrSubmitEvidenceCommandIsNotConstructed)
}
