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

var ErrGetProductStatsQueryIsNotConstructed = errors.New(
	"GetProductStatsQuery must be created via NewGetProductStatsQuery constructor",
)

// GetProductStatsQuery builds an operator's dashboard for one product.
type GetProductStatsQuery struct {
	operatorID kernel.UUID
	productID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetProductStatsQuery(operatorID, productID kernel.UUID) (GetProductStatsQuery, error) {
	var problems []error
	if err := operatorID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("operatorId", err))
	}
	if err := productID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("productId", err))
	}
	if err := errors.Join(problems...); err != nil {
		return GetProductStatsQuery{}, err
	}

	return GetProductStatsQuery{operatorID: operatorID, productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProductStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetProductStatsQueryIsNotConstructed)
}

func (q GetProductStatsQuery) OperatorID() kernel.UUID {
	return q.operatorID
}

func (q GetProductStatsQuery) ProductID() kernel.UUID {
	return q.productID
}

type ProductTotals struct {
	// Sales counts PAID and DELIVERED orders.
	Sales               int
	PendingPickup       int
	PendingConfirmation int
	Delivered           int
	UnpaidStudents      int
}

// OrderLine is one order on the dashboard.
type OrderLine struct {
	OrderID         kernel.UUID
	StudentID       kernel.UUID
	StudentName     string
	SeatID          string
	Status          string
	EvidenceURL     string
	ActivationPhone string
	RedemptionCode  string
	CreatedAt       time.Time
}

// UnpaidStudentLine is a class member who has not paid. Status is UNPAID or DECLINED.
type UnpaidStudentLine struct {
	StudentID kernel.UUID
	Name      string
	SeatID    string
	Status    string
}

type ProductStatsResponse struct {
	Product             ProductResponse
	Totals              ProductTotals
	PendingConfirmation []OrderLine
	PendingPickup       []OrderLine
	Paid                []OrderLine
	UnpaidStudents      []UnpaidStudentLine
}

type GetProductStatsQueryHandler struct {
	db       *gorm.DB
	resolver EvidenceResolver
}

func NewGetProductStatsQueryHandler(db *gorm.DB, resolver EvidenceResolver) GetProductStatsQueryHandler {
	return GetProductStatsQueryHandler{db: db, resolver: resolver}
}

// Handle returns an AccessDeniedError when the product belongs to another operator.
func (h GetProductStatsQueryHandler) Handle(
	ctx context.Context,
	query GetProductStatsQuery,
) (ProductStatsResponse, error) {
	if err := query.Validate(); err != nil {
		return ProductStatsResponse{}, err
	}

	productQuery, err := NewGetProductQuery(query.ProductID())
	if err != nil {
		return ProductStatsResponse{}, err
	}
	p, err := NewGetProductQueryHandler(h.db).Handle(ctx, productQuery)
	if err != nil {
		return ProductStatsResponse{}, err
	}
	if !p.OwnerID.IsEqual(query.OperatorID()) {
		return ProductStatsResponse{}, errs.NewAccessDeniedError(query.OperatorID().String(), "product "+p.ID.String())
	}

	db := h.db.WithContext(ctx)
	lines, evidenceKeys, err := h.orderLines(db, p.ID)
	if err != nil {
		return ProductStatsResponse{}, err
	}
	unpaid, err := h.unpaidStudents(db, p)
	if err != nil {
		return ProductStatsResponse{}, err
	}

	response := ProductStatsResponse{
		Product:             p,
		PendingConfirmation: make([]OrderLine, 0),
		PendingPickup:       make([]OrderLine, 0),
		Paid:                make([]OrderLine, 0),
		UnpaidStudents:      unpaid,
	}

	var pendingKeys []string
	for i, line := range lines {
		switch line.Status {
		case order.PendingConfirmation.String():
			response.PendingConfirmation = append(response.PendingConfirmation, line)
			pendingKeys = append(pendingKeys, evidenceKeys[i])
		case order.Paid.String():
			response.PendingPickup = append(response.PendingPickup, line)
			response.Paid = append(response.Paid, line)
		case order.Delivered.String():
			response.Paid = append(response.Paid, line)
			response.Totals.Delivered++
		}
	}

	for i, url := range h.resolver.ResolveAll(ctx, pendingKeys) {
		response.PendingConfirmation[i].EvidenceURL = url
	}

	response.Totals.PendingConfirmation = len(response.PendingConfirmation)
	response.Totals.PendingPickup = len(response.PendingPickup)
	response.Totals.Sales = len(response.Paid)
	response.Totals.UnpaidStudents = len(unpaid)

	return response, nil
}

// orderLines returns the product's orders newest first with their raw evidence keys.
func (h GetProductStatsQueryHandler) orderLines(db *gorm.DB, productID kernel.UUID) ([]OrderLine, []string, error) {
	rows, err := db.Raw(`
		SELECT
			o.id,
			s.id,
			s.name,
			s.seat_id,
			o.status,
			o.evidence_ref,
			o.activation_phone,
			o.redemption_code,
			o.created_at
		FROM orders o
		JOIN students s ON s.id = o.student_id
		WHERE o.product_id = ?
		ORDER BY o.created_at DESC, s.name
	`, productID.Google()).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var (
		lines []OrderLine
		keys  []string
	)
	for rows.Next() {
		var (
			line                 OrderLine
			rawOrder, rawStudent uuid.UUID
			key                  string
			code                 uuid.NullUUID
		)
		err = rows.Scan(&rawOrder, &rawStudent, &line.StudentName, &line.SeatID, &line.Status,
			&key, &line.ActivationPhone, &code, &line.CreatedAt)
		if err != nil {
			return nil, nil, err
		}
		if line.OrderID, err = toKernel(rawOrder); err != nil {
			return nil, nil, err
		}
		if line.StudentID, err = toKernel(rawStudent); err != nil {
			return nil, nil, err
		}
		line.RedemptionCode = codeString(code)

		lines = append(lines, line)
		keys = append(keys, key)
	}

	return lines, keys, rows.Err()
}

// unpaidStudents lists class members without a PAID, DELIVERED or pending order.
func (h GetProductStatsQueryHandler) unpaidStudents(db *gorm.DB, p ProductResponse) ([]UnpaidStudentLine, error) {
	rows, err := db.Raw(`
		SELECT
			s.id,
			s.name,
			s.seat_id,
			COALESCE(o.status, 'UNPAID')
		FROM students s
		LEFT JOIN orders o ON o.student_id = s.id AND o.product_id = ?
		WHERE s.class_id = ? AND (o.id IS NULL OR o.status = 'DECLINED')
		ORDER BY s.name
	`, p.ID.Google(), p.ClassID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]UnpaidStudentLine, 0)
	for rows.Next() {
		var (
			line  UnpaidStudentLine
			rawID uuid.UUID
		)
		if err = rows.Scan(&rawID, &line.Name, &line.SeatID, &line.Status); err != nil {
			return nil, err
		}
		if line.StudentID, err = toKernel(rawID); err != nil {
			return nil, err
		}
		students = append(students, line)
	}

	return students, rows.Err()
}
