package outboxrepo

import (
	"context"
	"time"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]OutboxDTO, 0, len(messages))
	for _, m := range messages {
		dtos = append(dtos, fromPort(m))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// ClaimUnpublished must run inside a transaction for the row locks to hold
// until MarkPublished.
func (r *GormOutboxRepository) ClaimUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		m, convErr := toPort(dto)
		if convErr != nil {
			return nil, convErr
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Google())
	}
	return r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("id IN ?", raw).
		Update("published_at", at).Error
}

func (r *GormOutboxRepository) DeletePublishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("published_at IS NOT NULL AND published_at < ?", cutoff).
		Delete(&OutboxDTO{})
	return result.RowsAffected, result.Error
}
