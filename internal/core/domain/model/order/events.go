package order

import (
	"time"

	"bookdesk/internal/core/domain/model/kernel"
)

// StatusChangedEventType names the event on the wire.
const StatusChangedEventType = "order.status_changed"

// StatusChanged is raised for every committed status change. A removed order
// is reported with Status Unpaid. It never carries the redemption code.
type StatusChanged struct {
	OrderID    kernel.UUID `json:"orderId"`
	StudentID  kernel.UUID `json:"studentId"`
	ProductID  kernel.UUID `json:"productId"`
	Status     string      `json:"status"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// NewStatusChanged snapshots o's current status.
func NewStatusChanged(o *Order, at time.Time) StatusChanged {
	return StatusChanged{
		OrderID:    o.ID(),
		StudentID:  o.StudentID(),
		ProductID:  o.ProductID(),
		Status:     o.Status().String(),
		OccurredAt: at.UTC(),
	}
}

// NewRemoved reports o as gone, which the API calls UNPAID.
func NewRemoved(o *Order, at time.Time) StatusChanged {
	e := NewStatusChanged(o, at)
	e.Status = Unpaid.String()
	return e
}
