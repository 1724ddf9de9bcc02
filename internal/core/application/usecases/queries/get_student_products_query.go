package queries

import (
	"context"
	"errors"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/pkg/errs"
	"bookdesk/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrGetStudentProductsQueryIsNotConstructed = errors.New(
	"GetStudentProductsQuery must be created via NewGetStudentProductsQuery constructor",
)

// GetStudentProductsQuery lists what a student can buy, with their order status.
type GetStudentProductsQuery struct {
	studentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetStudentProductsQuery(studentID kernel.UUID) (GetStudentProductsQuery, error) {
	if err := studentID.Validate(); err != nil {
		return GetStudentProductsQuery{}, errs.NewValueIsRequiredErrorWithCause("studentId", err)
	}
	return GetStudentProductsQuery{studentID: studentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStudentProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetStudentProductsQueryIsNotConstructed)
}

func (q GetStudentProductsQuery) StudentID() kernel.UUID {
	return q.studentID
}

// StudentProductResponse pairs a product with the student's order for it.
// OrderStatus is UNPAID when the student has no order.
type StudentProductResponse struct {
	Product        ProductResponse
	OrderStatus    string
	RedemptionCode string
}

type GetStudentProductsQueryHandler struct {
	db *gorm.DB
}

func NewGetStudentProductsQueryHandler(db *gorm.DB) GetStudentProductsQueryHandler {
	return GetStudentProductsQueryHandler{db: db}
}

// Handle returns the active products of the student's class sorted by name.
func (h GetStudentProductsQueryHandler) Handle(
	ctx context.Context,
	query GetStudentProductsQuery,
) ([]StudentProductResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	studentID := query.StudentID().Google()

	var known int64
	if err := db.Table("students").Where("id = ?", studentID).Count(&known).Error; err != nil {
		return nil, err
	}
	if known == 0 {
		return nil, errs.NewObjectNotFoundError("studentId", query.StudentID())
	}

	rows, err := db.Raw(`SELECT`+productColumns+`,
			COALESCE(o.status, 'UNPAID'),
			o.redemption_code
		FROM products p
		JOIN students s ON s.class_id = p.class_id
		LEFT JOIN orders o ON o.product_id = p.id AND o.student_id = s.id
		WHERE s.id = ? AND p.is_active
		ORDER BY p.name
	`, studentID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]StudentProductResponse, 0)
	for rows.Next() {
		var (
			item StudentProductResponse
			code uuid.NullUUID
		)
		item.Product, err = scanProduct(rows, &item.OrderStatus, &code)
		if err != nil {
			return nil, err
		}
		item.RedemptionCode = codeString(code)
		products = append(products, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
