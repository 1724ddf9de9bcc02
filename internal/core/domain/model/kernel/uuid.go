package kernel

import (
	"bytes"
	"fmt"

	"bookdesk/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when a zero-value UUID is validated.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromGoogle")

// UUID identifies students, products, orders and operators, and doubles as
// the opaque redemption code printed on a student's pickup QR.
//
// The zero value is invalid. Build one with NewUUID, UUIDFromString or
// UUIDFromGoogle. UUID is comparable and safe to copy.
type UUID struct {
	id uuid.UUID
}

// NewUUID returns a random version 4 UUID.
//
//	code := kernel.NewUUID()
//	fmt.Println(code) // e.g. "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical, braced, urn or hyphen-less forms.
// The nil UUID is rejected.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUIDFromGoogle(id)
}

// UUIDFromGoogle wraps a value coming from the storage layer.
func UUIDFromGoogle(id uuid.UUID) (UUID, error) {
	u := UUID{id: id}
	if err := u.Validate(); err != nil {
		return UUID{}, err
	}
	return u, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Google exposes the underlying value for adapters (GORM DTOs, JSON payloads).
func (u UUID) Google() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Compare orders UUIDs by their bytes, for use with slices.SortFunc.
func (u UUID) Compare(other UUID) int {
	return bytes.Compare(u.id[:], other.id[:])
}

func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
func (u UUID) Validate() error {
	if u.IsZero() {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// MarshalText renders the canonical form, so UUID can sit directly in JSON DTOs.
func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.id.String()), nil
}

// UnmarshalText parses any form accepted by UUIDFromString.
func (u *UUID) UnmarshalText(text []byte) error {
	parsed, err := UUIDFromString(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
