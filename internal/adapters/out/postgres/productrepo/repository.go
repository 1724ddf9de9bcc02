package productrepo

import (
	"context"
	"errors"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/product"
	"bookdesk/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormProductRepository) Remove(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ProductDTO{}, "id = ?", id.Google())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", id.String())
	}
	return nil
}
