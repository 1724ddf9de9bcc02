// Package productrepo persists products.
package productrepo

import (
	"time"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name                string          `gorm:"not null"`
	Price               decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ClassID             int             `gorm:"not null;index"`
	Kind                string          `gorm:"type:varchar(16);not null"`
	PaymentPhoneNumber  string          `gorm:"not null"`
	AcceptsVodafoneCash bool            `gorm:"not null"`
	AcceptsInstapay     bool            `gorm:"not null"`
	IsActive            bool            `gorm:"not null;index"`
	CreatedAt           time.Time       `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	payment := p.Payment()
	return ProductDTO{
		ID:                  p.ID().Google(),
		OwnerID:             p.OwnerID().Google(),
		Name:                p.Name(),
		Price:               p.Price(),
		ClassID:             p.ClassID(),
		Kind:                p.Kind().String(),
		PaymentPhoneNumber:  payment.PhoneNumber,
		AcceptsVodafoneCash: payment.AcceptsVodafoneCash,
		AcceptsInstapay:     payment.AcceptsInstapay,
		IsActive:            p.IsActive(),
		CreatedAt:           p.CreatedAt(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromGoogle(dto.OwnerID)
	if err != nil {
		return nil, err
	}
	kind, err := product.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(
		id,
		ownerID,
		dto.Name,
		dto.Price,
		dto.ClassID,
		kind,
		product.PaymentOptions{
			PhoneNumber:         dto.PaymentPhoneNumber,
			AcceptsVodafoneCash: dto.AcceptsVodafoneCash,
			AcceptsInstapay:     dto.AcceptsInstapay,
		},
		dto.IsActive,
		dto.CreatedAt,
	)
}
