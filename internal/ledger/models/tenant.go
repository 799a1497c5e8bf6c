package models

import (
	"strings"
	"time"

	id "meterbill/pkg/domain"
	dErrors "meterbill/pkg/domain-errors"
)

const maxLabelLength = 128

// Tenant is an occupant whose sub-meter participates in cost allocation.
type Tenant struct {
	ID        id.TenantID `json:"id"`
	Name      string      `json:"name"`
	Room      string      `json:"room"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TenantUpdate names the only tenant fields a caller may change.
// Nil fields are left untouched.
type TenantUpdate struct {
	Name *string
	Room *string
}

func NewTenant(tenantID id.TenantID, name, room string, now time.Time) (*Tenant, error) {
	name = strings.TrimSpace(name)
	room = strings.TrimSpace(room)
	if err := validateLabels(name, room); err != nil {
		return nil, err
	}
	return &Tenant{
		ID:        tenantID,
		Name:      name,
		Room:      room,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Apply renames or moves the tenant. The ID and active flag are not touched.
func (t *Tenant) Apply(update TenantUpdate, now time.Time) error {
	name, room := t.Name, t.Room
	if update.Name != nil {
		name = strings.TrimSpace(*update.Name)
	}
	if update.Room != nil {
		room = strings.TrimSpace(*update.Room)
	}
	if err := validateLabels(name, room); err != nil {
		return err
	}
	t.Name, t.Room = name, room
	t.UpdatedAt = now
	return nil
}

// ToggleActive flips the active flag and returns the new state.
func (t *Tenant) ToggleActive(now time.Time) bool {
	t.Active = !t.Active
	t.UpdatedAt = now
	return t.Active
}

func validateLabels(name, room string) error {
	if name == "" {
		return dErrors.New(dErrors.CodeValidation, "tenant name is required")
	}
	if len(name) > maxLabelLength {
		return dErrors.New(dErrors.CodeValidation, "tenant name must be 128 characters or less")
	}
	if len(room) > maxLabelLength {
		return dErrors.New(dErrors.CodeValidation, "room must be 128 characters or less")
	}
	return nil
}
