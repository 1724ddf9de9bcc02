package studentrepo

import (
	"context"
	"errors"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/student"
	"bookdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStudentRepository struct {
	db *gorm.DB
}

func NewGormStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

func (r *GormStudentRepository) Get(ctx context.Context, id kernel.UUID) (*student.Student, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StudentDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("student", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormStudentRepository) CountExisting(ctx context.Context, ids []kernel.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Google())
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&StudentDTO{}).Where("id IN ?", raw).Count(&count).Error
	return count, err
}

// UpsertBySeatID keeps the id of a student already holding the seat, so
// re-importing a roster does not orphan their orders.
func (r *GormStudentRepository) UpsertBySeatID(ctx context.Context, s *student.Student) (kernel.UUID, error) {
	dto := fromDomain(s)

	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "seat_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "class_id"}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "id"}}},
		).
		Create(&dto).Error
	if err != nil {
		return kernel.UUID{}, err
	}

	return kernel.UUIDFromGoogle(dto.ID)
}
