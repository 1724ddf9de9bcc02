// Package outboxrepo stores events written in the same transaction as the
// order changes that caused them, until the relay job publishes them.
package outboxrepo

import (
	"time"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OutboxDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID      `gorm:"type:uuid;not null;index"`
	EventType   string         `gorm:"type:varchar(64);not null"`
	Payload     datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time      `gorm:"not null;index"`
	PublishedAt *time.Time     `gorm:"index"`
}

func (OutboxDTO) TableName() string {
	return "outbox"
}

func fromPort(m ports.OutboxMessage) OutboxDTO {
	return OutboxDTO{
		ID:          m.ID.Google(),
		AggregateID: m.AggregateID.Google(),
		EventType:   m.EventType,
		Payload:     datatypes.JSON(m.Payload),
		CreatedAt:   m.CreatedAt,
	}
}

func toPort(dto OutboxDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFromGoogle(dto.AggregateID)
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:          id,
		AggregateID: aggregateID,
		EventType:   dto.EventType,
		Payload:     []byte(dto.Payload),
		CreatedAt:   dto.CreatedAt,
	}, nil
}
