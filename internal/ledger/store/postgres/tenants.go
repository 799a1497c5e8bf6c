package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"meterbill/internal/ledger/models"
	"meterbill/internal/sentinel"
	id "meterbill/pkg/domain"
)

// TenantStore persists tenants in PostgreSQL.
type TenantStore struct {
	l *Ledger
}

const tenantColumns = `id, name, room, active, created_at, updated_at`

func (s *TenantStore) Create(ctx context.Context, tenant *models.Tenant) error {
	if tenant == nil {
		return fmt.Errorf("tenant is required")
	}
	query := `
		INSERT INTO tenants (id, name, room, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.l.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(tenant.ID),
		tenant.Name,
		tenant.Room,
		tenant.Active,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tenant %s already exists: %w", tenant.ID, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create tenant: %w", err)
	}
	return nil
}

func (s *TenantStore) Update(ctx context.Context, tenant *models.Tenant) error {
	if tenant == nil {
		return fmt.Errorf("tenant is required")
	}
	query := `
		UPDATE tenants
		SET name = $2, room = $3, active = $4, updated_at = $5
		WHERE id = $1
	`
	res, err := s.l.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(tenant.ID),
		tenant.Name,
		tenant.Room,
		tenant.Active,
		tenant.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	return requireAffected(res, "update tenant")
}

func (s *TenantStore) Delete(ctx context.Context, tenantID id.TenantID) error {
	res, err := s.l.execer(ctx).ExecContext(ctx, `DELETE FROM tenants WHERE id = $1`, uuid.UUID(tenantID))
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	return requireAffected(res, "delete tenant")
}

func (s *TenantStore) FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	tenant, err := scanTenant(s.l.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(tenantID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find tenant by id: %w", err)
	}
	return tenant, nil
}

// List returns tenants in creation order.
func (s *TenantStore) List(ctx context.Context) ([]models.Tenant, error) {
	return s.query(ctx, `SELECT `+tenantColumns+` FROM tenants ORDER BY seq`)
}

func (s *TenantStore) ListByActive(ctx context.Context, active bool) ([]models.Tenant, error) {
	return s.query(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE active = $1 ORDER BY seq`, active)
}

func (s *TenantStore) Clear(ctx context.Context) error {
	if _, err := s.l.execer(ctx).ExecContext(ctx, `DELETE FROM tenants`); err != nil {
		return fmt.Errorf("clear tenants: %w", err)
	}
	return nil
}

func (s *TenantStore) query(ctx context.Context, query string, args ...any) ([]models.Tenant, error) {
	rows, err := s.l.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	tenants := make([]models.Tenant, 0)
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, nil
}

func scanTenant(row rowScanner) (*models.Tenant, error) {
	var tenant models.Tenant
	var tenantID uuid.UUID
	if err := row.Scan(&tenantID, &tenant.Name, &tenant.Room, &tenant.Active, &tenant.CreatedAt, &tenant.UpdatedAt); err != nil {
		return nil, err
	}
	tenant.ID = id.TenantID(tenantID)
	return &tenant, nil
}
