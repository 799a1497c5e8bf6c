// Package domain provides type-safe identifiers and the billing period key shared by
// every ledger layer.
package domain

import (
	"github.com/google/uuid"

	dErrors "meterbill/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a TenantID where a reading ID is expected.
type (
	TenantID        uuid.UUID
	PeriodReadingID uuid.UUID
	TenantReadingID uuid.UUID
)

// New* helpers assign identities at creation time.

func NewTenantID() TenantID               { return TenantID(uuid.New()) }
func NewPeriodReadingID() PeriodReadingID { return PeriodReadingID(uuid.New()) }
func NewTenantReadingID() TenantReadingID { return TenantReadingID(uuid.New()) }

// Parse functions - use at trust boundaries (snapshot import, caller input).

func ParseTenantID(s string) (TenantID, error) {
	id, err := parseUUID(s, "tenant ID")
	return TenantID(id), err
}

func ParsePeriodReadingID(s string) (PeriodReadingID, error) {
	id, err := parseUUID(s, "period reading ID")
	return PeriodReadingID(id), err
}

func ParseTenantReadingID(s string) (TenantReadingID, error) {
	id, err := parseUUID(s, "tenant reading ID")
	return TenantReadingID(id), err
}

func (id TenantID) String() string        { return uuid.UUID(id).String() }
func (id PeriodReadingID) String() string { return uuid.UUID(id).String() }
func (id TenantReadingID) String() string { return uuid.UUID(id).String() }

func (id TenantID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id PeriodReadingID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id TenantReadingID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// Text marshalling keeps IDs as canonical UUID strings in snapshot documents.

func (id TenantID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id PeriodReadingID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id TenantReadingID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *TenantID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *PeriodReadingID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *TenantReadingID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// parseUUID is the shared validation logic.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, "invalid "+label+" format")
	}
	if id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, label+" cannot be nil")
	}
	return id, nil
}
