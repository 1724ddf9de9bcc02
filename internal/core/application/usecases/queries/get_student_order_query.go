package queries

import (
	"context"
	"errors"
	"time"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/order"
	"bookdesk/internal/pkg/errs"
	"bookdesk/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrGetStudentOrderQueryIsNotConstructed = errors.New(
	"GetStudentOrderQuery must be created via NewGetStudentOrderQuery constructor",
)

type GetStudentOrderQuery struct {
	studentID kernel.UUID
	productID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetStudentOrderQuery(studentID, productID kernel.UUID) (GetStudentOrderQuery, error) {
	var problems []error
	if err := studentID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("studentId", err))
	}
	if err := productID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("productId", err))
	}
	if err := errors.Join(problems...); err != nil {
		return GetStudentOrderQuery{}, err
	}

	return GetStudentOrderQuery{studentID: studentID, productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStudentOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetStudentOrderQueryIsNotConstructed)
}

func (q GetStudentOrderQuery) StudentID() kernel.UUID {
	return q.studentID
}

func (q GetStudentOrderQuery) ProductID() kernel.UUID {
	return q.productID
}

// StudentOrderResponse is the student's view of one order. Found is false and
// Status is UNPAID when there is no order.
type StudentOrderResponse struct {
	Found           bool
	OrderID         kernel.UUID
	Status          string
	EvidenceURL     string
	EvidenceKey     string
	ActivationPhone string
	RedemptionCode  string
	CreatedAt       time.Time
}

type GetStudentOrderQueryHandler struct {
	db       *gorm.DB
	resolver EvidenceResolver
}

func NewGetStudentOrderQueryHandler(db *gorm.DB, resolver EvidenceResolver) GetStudentOrderQueryHandler {
	return GetStudentOrderQueryHandler{db: db, resolver: resolver}
}

func (h GetStudentOrderQueryHandler) Handle(
	ctx context.Context,
	query GetStudentOrderQuery,
) (StudentOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return StudentOrderResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			evidence_ref,
			activation_phone,
			redemption_code,
			created_at
		FROM orders
		WHERE student_id = ? AND product_id = ?
	`, query.StudentID().Google(), query.ProductID().Google()).Rows()
	if err != nil {
		return StudentOrderResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return StudentOrderResponse{}, err
		}
		return StudentOrderResponse{Status: order.Unpaid.String()}, nil
	}

	var (
		response StudentOrderResponse
		rawID    uuid.UUID
		code     uuid.NullUUID
	)
	err = rows.Scan(
		&rawID,
		&response.Status,
		&response.EvidenceKey,
		&response.ActivationPhone,
		&code,
		&response.CreatedAt,
	)
	if err != nil {
		return StudentOrderResponse{}, err
	}
	if response.OrderID, err = toKernel(rawID); err != nil {
		return StudentOrderResponse{}, err
	}

	response.Found = true
	response.RedemptionCode = codeString(code)
	response.EvidenceURL = h.resolver.Resolve(ctx, response.EvidenceKey)

	return response, nil
}
