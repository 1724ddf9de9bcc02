// Package queries holds the read side. Handlers run plain SQL against the
// store and return flat read models shaped for the HTTP API.
package queries

import (
	"context"
	"database/sql"
	"time"

	"bookdesk/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EvidenceResolver turns stored evidence references into displayable URLs.
type EvidenceResolver interface {
	Resolve(ctx context.Context, ref string) string
	ResolveAll(ctx context.Context, refs []string) []string
}

// ProductResponse is a product as shown in listings and on the payment page.
type ProductResponse struct {
	ID                  kernel.UUID
	OwnerID             kernel.UUID
	Name                string
	Price               decimal.Decimal
	ClassID             int
	Kind                string
	PaymentPhoneNumber  string
	AcceptsVodafoneCash bool
	AcceptsInstapay     bool
	IsActive            bool
	CreatedAt           time.Time
}

const productColumns = `
	p.id,
	p.owner_id,
	p.name,
	p.price,
	p.class_id,
	p.kind,
	p.payment_phone_number,
	p.accepts_vodafone_cash,
	p.accepts_instapay,
	p.is_active,
	p.created_at`

// scanProduct reads productColumns followed by extra destinations.
func scanProduct(rows *sql.Rows, extra ...any) (ProductResponse, error) {
	var (
		p                 ProductResponse
		rawID, rawOwnerID uuid.UUID
	)

	dest := append([]any{
		&rawID,
		&rawOwnerID,
		&p.Name,
		&p.Price,
		&p.ClassID,
		&p.Kind,
		&p.PaymentPhoneNumber,
		&p.AcceptsVodafoneCash,
		&p.AcceptsInstapay,
		&p.IsActive,
		&p.CreatedAt,
	}, extra...)
	if err := rows.Scan(dest...); err != nil {
		return ProductResponse{}, err
	}

	id, err := kernel.UUIDFromGoogle(rawID)
	if err != nil {
		return ProductResponse{}, err
	}
	ownerID, err := kernel.UUIDFromGoogle(rawOwnerID)
	if err != nil {
		return ProductResponse{}, err
	}
	p.ID = id
	p.OwnerID = ownerID

	return p, nil
}

// codeString renders a nullable redemption code.
func codeString(code uuid.NullUUID) string {
	if !code.Valid {
		return ""
	}
	return code.UUID.String()
}

func toKernel(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromGoogle(raw)
}
