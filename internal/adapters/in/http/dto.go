package http

import (
	"time"

	"bookdesk/internal/core/application/usecases/queries"
)

type StudentJSON struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	SeatID  string `json:"seatId"`
	ClassID int    `json:"classId"`
}

type ProductJSON struct {
	ID                  string    `json:"id"`
	OwnerID             string    `json:"ownerId"`
	Name                string    `json:"name"`
	Price               string    `json:"price"`
	ClassID             int       `json:"classId"`
	Kind                string    `json:"kind"`
	PaymentPhoneNumber  string    `json:"paymentPhoneNumber"`
	AcceptsVodafoneCash bool      `json:"acceptsVodafoneCash"`
	AcceptsInstapay     bool      `json:"acceptsInstapay"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
}

type StudentProductJSON struct {
	ProductJSON
	OrderStatus    string `json:"orderStatus"`
	RedemptionCode string `json:"redemptionCode,omitempty"`
}

type StudentOrderJSON struct {
	OrderID         string     `json:"orderId,omitempty"`
	Status          string     `json:"status"`
	EvidenceURL     string     `json:"evidenceUrl,omitempty"`
	EvidenceKey     string     `json:"evidenceKey,omitempty"`
	ActivationPhone string     `json:"activationPhone,omitempty"`
	RedemptionCode  string     `json:"redemptionCode,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
}

type OrderLineJSON struct {
	OrderID         string    `json:"orderId"`
	StudentID       string    `json:"studentId"`
	StudentName     string    `json:"studentName"`
	SeatID          string    `json:"seatId"`
	Status          string    `json:"status"`
	EvidenceURL     string    `json:"evidenceUrl,omitempty"`
	ActivationPhone string    `json:"activationPhone,omitempty"`
	RedemptionCode  string    `json:"redemptionCode,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type UnpaidStudentJSON struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	SeatID    string `json:"seatId"`
	Status    string `json:"status"`
}

type TotalsJSON struct {
	Sales               int `json:"sales"`
	PendingPickup       int `json:"pendingPickup"`
	PendingConfirmation int `json:"pendingConfirmation"`
	Delivered           int `json:"delivered"`
	UnpaidStudents      int `json:"unpaidStudents"`
}

type ProductStatsJSON struct {
	Product             ProductJSON         `json:"product"`
	Totals              TotalsJSON          `json:"totals"`
	PendingConfirmation []OrderLineJSON     `json:"pendingConfirmation"`
	PendingPickup       []OrderLineJSON     `json:"pendingPickup"`
	Paid                []OrderLineJSON     `json:"paid"`
	UnpaidStudents      []UnpaidStudentJSON `json:"unpaidStudents"`
}

type CreateProductRequest struct {
	Name                string `json:"name"`
	Price               string `json:"price"`
	ClassID             int    `json:"classId"`
	Kind                string `json:"kind"`
	PaymentPhoneNumber  string `json:"paymentPhoneNumber"`
	AcceptsVodafoneCash *bool  `json:"acceptsVodafoneCash"`
	AcceptsInstapay     *bool  `json:"acceptsInstapay"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type BatchStatusRequest struct {
	StudentIDs []string `json:"studentIds"`
	ProductID  string   `json:"productId"`
	Status     string   `json:"status"`
}

type RedemptionRequest struct {
	Code       string   `json:"code"`
	ProductIDs []string `json:"productIds"`
}

type RedemptionJSON struct {
	Success     bool   `json:"success"`
	Outcome     string `json:"outcome"`
	Message     string `json:"message"`
	OrderID     string `json:"orderId,omitempty"`
	StudentName string `json:"studentName,omitempty"`
	ProductName string `json:"productName,omitempty"`
}

func toProductJSON(p queries.ProductResponse) ProductJSON {
	return ProductJSON{
		ID:                  p.ID.String(),
		OwnerID:             p.OwnerID.String(),
		Name:                p.Name,
		Price:               p.Price.StringFixed(2),
		ClassID:             p.ClassID,
		Kind:                p.Kind,
		PaymentPhoneNumber:  p.PaymentPhoneNumber,
		AcceptsVodafoneCash: p.AcceptsVodafoneCash,
		AcceptsInstapay:     p.AcceptsInstapay,
		IsActive:            p.IsActive,
		CreatedAt:           p.CreatedAt,
	}
}

func toOrderLinesJSON(lines []queries.OrderLine) []OrderLineJSON {
	out := make([]OrderLineJSON, 0, len(lines))
	for _, l := range lines {
		out = append(out, OrderLineJSON{
			OrderID:         l.OrderID.String(),
			StudentID:       l.StudentID.String(),
			StudentName:     l.StudentName,
			SeatID:          l.SeatID,
			Status:          l.Status,
			EvidenceURL:     l.EvidenceURL,
			ActivationPhone: l.ActivationPhone,
			RedemptionCode:  l.RedemptionCode,
			CreatedAt:       l.CreatedAt,
		})
	}
	return out
}

func toStatsJSON(stats queries.ProductStatsResponse) ProductStatsJSON {
	unpaid := make([]UnpaidStudentJSON, 0, len(stats.UnpaidStudents))
	for _, u := range stats.UnpaidStudents {
		unpaid = append(unpaid, UnpaidStudentJSON{
			StudentID: u.StudentID.String(),
			Name:      u.Name,
			SeatID:    u.SeatID,
			Status:    u.Status,
		})
	}

	return ProductStatsJSON{
		Product: toProductJSON(stats.Product),
		Totals: TotalsJSON{
			Sales:               stats.Totals.Sales,
			PendingPickup:       stats.Totals.PendingPickup,
			PendingConfirmation: stats.Totals.PendingConfirmation,
			Delivered:           stats.Totals.Delivered,
			UnpaidStudents:      stats.Totals.UnpaidStudents,
		},
		PendingConfirmation: toOrderLinesJSON(stats.PendingConfirmation),
		PendingPickup:       toOrderLinesJSON(stats.PendingPickup),
		Paid:                toOrderLinesJSON(stats.Paid),
		UnpaidStudents:      unpaid,
	}
}
