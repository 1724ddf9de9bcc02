// Package orderrepo maps order aggregates onto the orders table. The table
// carries the two uniqueness rules the redemption protocol relies on: one row
// per (student, product) and globally unique redemption codes.
package orderrepo

import (
	"time"

	"bookdesk/internal/adapters/out/postgres/productrepo"
	"bookdesk/internal/adapters/out/postgres/studentrepo"
	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StudentID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_orders_student_product,priority:1"`
	ProductID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_orders_student_product,priority:2;index"`
	Status          string     `gorm:"type:varchar(32);not null;index"`
	EvidenceRef     string     `gorm:"not null;default:''"`
	ActivationPhone string     `gorm:"not null;default:''"`
	RedemptionCode  *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CreatedAt       time.Time  `gorm:"not null"`

	Student *studentrepo.StudentDTO `gorm:"foreignKey:StudentID;constraint:OnDelete:RESTRICT"`
	Product *productrepo.ProductDTO `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var code *uuid.UUID
	if c := aggregate.RedemptionCode(); c != nil {
		raw := c.Google()
		code = &raw
	}

	return OrderDTO{
		ID:              aggregate.ID().Google(),
		StudentID:       aggregate.StudentID().Google(),
		ProductID:       aggregate.ProductID().Google(),
		Status:          aggregate.Status().String(),
		EvidenceRef:     aggregate.EvidenceRef(),
		ActivationPhone: aggregate.ActivationPhone(),
		RedemptionCode:  code,
		CreatedAt:       aggregate.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	studentID, err := kernel.UUIDFromGoogle(dto.StudentID)
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromGoogle(dto.ProductID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var code *kernel.UUID
	if dto.RedemptionCode != nil {
		c, codeErr := kernel.UUIDFromGoogle(*dto.RedemptionCode)
		if codeErr != nil {
			return nil, codeErr
		}
		code = &c
	}

	return order.RestoreOrder(id, studentID, productID, status, dto.EvidenceRef, dto.ActivationPhone, code, dto.CreatedAt)
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
