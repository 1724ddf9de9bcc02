package orderrepo

import (
	"context"
	"errors"
	"time"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/order"
	"bookdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository. Every write that
// changes a stored status reports a StatusChanged event to the tracker.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker changeTracker
	now     func() time.Time
}

type changeTracker interface {
	TrackStatusChange(event order.StatusChanged)
}

func NewGormOrderRepository(db *gorm.DB, tracker changeTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
		now:     time.Now,
	}
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.take(ctx, errs.NewObjectNotFoundError("order", id.String()), "id = ?", id.Google())
}

func (r *GormOrderRepository) GetByStudentAndProduct(
	ctx context.Context, studentID, productID kernel.UUID,
) (*order.Order, error) {
	return r.take(ctx,
		errs.NewObjectNotFoundError("order", studentID.String()+"/"+productID.String()),
		"student_id = ? AND product_id = ?", studentID.Google(), productID.Google(),
	)
}

func (r *GormOrderRepository) GetByRedemptionCode(ctx context.Context, code kernel.UUID) (*order.Order, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}
	return r.take(ctx, errs.NewObjectNotFoundError("redemptionCode", code.String()), "redemption_code = ?", code.Google())
}

func (r *GormOrderRepository) AddIfAbsent(ctx context.Context, aggregate *order.Order) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.TrackStatusChange(order.NewStatusChanged(aggregate, r.now()))
	return true, nil
}

func (r *GormOrderRepository) UpdateIfStatus(
	ctx context.Context, aggregate *order.Order, expected order.Status,
) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Updates(map[string]any{
			"status":           dto.Status,
			"evidence_ref":     dto.EvidenceRef,
			"activation_phone": dto.ActivationPhone,
			"created_at":       dto.CreatedAt,
			"redemption_code":  gorm.Expr("COALESCE(redemption_code, ?)", dto.RedemptionCode),
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	if aggregate.Status() != expected {
		r.tracker.TrackStatusChange(order.NewStatusChanged(aggregate, r.now()))
	}
	return true, nil
}

// Upsert leaves a conflicting row untouched when it already holds the
// candidate's status. The conflict still locks that row, so the re-read below
// sees what this transaction will commit, and no event is tracked.
func (r *GormOrderRepository) Upsert(ctx context.Context, candidate *order.Order) (*order.Order, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(candidate)
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "student_id"}, {Name: "product_id"}},
				DoUpdates: clause.Set{
					{Column: clause.Column{Name: "status"}, Value: gorm.Expr("EXCLUDED.status")},
					{
						Column: clause.Column{Name: "redemption_code"},
						Value:  gorm.Expr("COALESCE(orders.redemption_code, EXCLUDED.redemption_code)"),
					},
				},
				Where: clause.Where{Exprs: []clause.Expression{
					clause.Expr{SQL: "orders.status <> EXCLUDED.status"},
				}},
			},
			clause.Returning{},
		).
		Create(&dto)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return r.GetByStudentAndProduct(ctx, candidate.StudentID(), candidate.ProductID())
	}

	stored, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackStatusChange(order.NewStatusChanged(stored, r.now()))
	return stored, nil
}

func (r *GormOrderRepository) Remove(ctx context.Context, studentID, productID kernel.UUID) (bool, error) {
	n, err := r.removeWhere(ctx, "student_id = ? AND product_id = ?", studentID.Google(), productID.Google())
	return n > 0, err
}

func (r *GormOrderRepository) RemoveForStudents(
	ctx context.Context, productID kernel.UUID, studentIDs []kernel.UUID,
) (int64, error) {
	if len(studentIDs) == 0 {
		return 0, nil
	}

	raw := make([]uuid.UUID, 0, len(studentIDs))
	for _, id := range studentIDs {
		raw = append(raw, id.Google())
	}
	return r.removeWhere(ctx, "product_id = ? AND student_id IN ?", productID.Google(), raw)
}

func (r *GormOrderRepository) RemoveAllForProduct(ctx context.Context, productID kernel.UUID) (int64, error) {
	return r.removeWhere(ctx, "product_id = ?", productID.Google())
}

func (r *GormOrderRepository) ConfirmAllPending(ctx context.Context, productID kernel.UUID) (int64, error) {
	var confirmed []OrderDTO
	result := r.db.WithContext(ctx).
		Model(&confirmed).
		Clauses(clause.Returning{}).
		Where("product_id = ? AND status = ?", productID.Google(), order.PendingConfirmation.String()).
		Updates(map[string]any{
			"status":          order.Paid.String(),
			"redemption_code": gorm.Expr("COALESCE(redemption_code, gen_random_uuid())"),
		})
	if result.Error != nil {
		return 0, result.Error
	}

	orders, err := toDomainAll(confirmed)
	if err != nil {
		return 0, err
	}
	at := r.now()
	for _, o := range orders {
		r.tracker.TrackStatusChange(order.NewStatusChanged(o, at))
	}

	return result.RowsAffected, nil
}

func (r *GormOrderRepository) take(ctx context.Context, notFound error, query string, args ...any) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).Where(query, args...).Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormOrderRepository) removeWhere(ctx context.Context, query string, args ...any) (int64, error) {
	var removed []OrderDTO
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where(query, args...).
		Delete(&removed)
	if result.Error != nil {
		return 0, result.Error
	}

	orders, err := toDomainAll(removed)
	if err != nil {
		return 0, err
	}
	at := r.now()
	for _, o := range orders {
		r.tracker.TrackStatusChange(order.NewRemoved(o, at))
	}

	return result.RowsAffected, nil
}
