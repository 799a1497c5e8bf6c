package sqlite

import (
	"context"
	"fmt"

	"meterbill/internal/ledger/models"
	id "meterbill/pkg/domain"
)

// TenantStore persists tenants through gorm.
type TenantStore struct {
	l *Ledger
}

func (s *TenantStore) Create(ctx context.Context, tenant *models.Tenant) error {
	if tenant == nil {
		return fmt.Errorf("tenant is required")
	}
	row := toTenantRow(tenant)
	if err := s.l.conn(ctx).Create(&row).Error; err != nil {
		return translate(err, "create tenant "+tenant.ID.String())
	}
	return nil
}

func (s *TenantStore) Update(ctx context.Context, tenant *models.Tenant) error {
	if tenant == nil {
		return fmt.Errorf("tenant is required")
	}
	row := toTenantRow(tenant)
	res := s.l.conn(ctx).Model(&tenantRow{}).Where("id = ?", row.ID).Updates(map[string]any{
		"name":       row.Name,
		"room":       row.Room,
		"active":     row.Active,
		"updated_at": row.UpdatedAt,
	})
	return requireAffected(res, "update tenant")
}

func (s *TenantStore) Delete(ctx context.Context, tenantID id.TenantID) error {
	res := s.l.conn(ctx).Where("id = ?", tenantID.String()).Delete(&tenantRow{})
	return requireAffected(res, "delete tenant")
}

func (s *TenantStore) FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	var row tenantRow
	if err := s.l.conn(ctx).Where("id = ?", tenantID.String()).First(&row).Error; err != nil {
		return nil, translate(err, "find tenant by id")
	}
	t, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns tenants in creation order.
func (s *TenantStore) List(ctx context.Context) ([]models.Tenant, error) {
	var rows []tenantRow
	if err := s.l.conn(ctx).Order("seq").Find(&rows).Error; err != nil {
		return nil, translate(err, "list tenants")
	}
	return toModels(rows, tenantRow.toModel)
}

func (s *TenantStore) ListByActive(ctx context.Context, active bool) ([]models.Tenant, error) {
	var rows []tenantRow
	if err := s.l.conn(ctx).Where("active = ?", active).Order("seq").Find(&rows).Error; err != nil {
		return nil, translate(err, "list tenants by active")
	}
	return toModels(rows, tenantRow.toModel)
}

func (s *TenantStore) Clear(ctx context.Context) error {
	if err := s.l.conn(ctx).Exec("DELETE FROM tenants").Error; err != nil {
		return translate(err, "clear tenants")
	}
	return nil
}
