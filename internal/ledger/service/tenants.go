package service

import (
	"context"

	"github.com/google/uuid"

	"meterbill/internal/ledger/models"
	id "meterbill/pkg/domain"
	dErrors "meterbill/pkg/domain-errors"
)

func (s *Service) AddTenant(ctx context.Context, req *models.AddTenantRequest) (*models.Tenant, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := models.NewTenant(id.TenantID(uuid.New()), req.Name, req.Room, s.now())
	if err != nil {
		return nil, err
	}
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.tenants.Create(txCtx, t); err != nil {
			return wrapTenantErr(err, "failed to create tenant")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logEvent(ctx, models.EventTenantAdded, "tenant_id", t.ID.String(), "room", t.Room)
	return t, nil
}

// UpdateTenant renames a tenant or moves them to another room.
func (s *Service) UpdateTenant(ctx context.Context, tenantID id.TenantID, update models.TenantUpdate) (*models.Tenant, error) {
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}

	var tenant *models.Tenant
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		t, err := s.tenants.FindByID(txCtx, tenantID)
		if err != nil {
			return wrapTenantErr(err, "failed to load tenant")
		}
		if err := t.Apply(update, s.now()); err != nil {
			return err
		}
		if err := s.tenants.Update(txCtx, t); err != nil {
			return wrapTenantErr(err, "failed to update tenant")
		}
		tenant = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logEvent(ctx, models.EventTenantUpdated, "tenant_id", tenantID.String())
	return tenant, nil
}

// ToggleTenantActive flips whether the tenant is expected to report readings.
// Inactive tenants keep their history and still take part in allocations of
// periods they already have readings for.
func (s *Service) ToggleTenantActive(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}

	var tenant *models.Tenant
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		t, err := s.tenants.FindByID(txCtx, tenantID)
		if err != nil {
			return wrapTenantErr(err, "failed to load tenant")
		}
		t.ToggleActive(s.now())
		if err := s.tenants.Update(txCtx, t); err != nil {
			return wrapTenantErr(err, "failed to update tenant")
		}
		tenant = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logEvent(ctx, models.EventTenantToggled, "tenant_id", tenantID.String(), "active", tenant.Active)
	return tenant, nil
}

// DeleteTenant removes the tenant record. Their readings stay in place so past
// allocations remain intact.
func (s *Service) DeleteTenant(ctx context.Context, tenantID id.TenantID) error {
	if err := requireTenantID(tenantID); err != nil {
		return err
	}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.tenants.Delete(txCtx, tenantID); err != nil {
			return wrapTenantErr(err, "failed to delete tenant")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logEvent(ctx, models.EventTenantDeleted, "tenant_id", tenantID.String())
	return nil
}

func (s *Service) GetTenant(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}
	t, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, wrapTenantErr(err, "failed to load tenant")
	}
	return t, nil
}

func (s *Service) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	tenants, err := s.tenants.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tenants")
	}
	return tenants, nil
}

func (s *Service) ActiveTenants(ctx context.Context) ([]models.Tenant, error) {
	tenants, err := s.tenants.ListByActive(ctx, true)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list active tenants")
	}
	return tenants, nil
}
