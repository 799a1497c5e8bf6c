package memory

import (
	"cmp"
	"context"
	"slices"

	"meterbill/internal/ledger/models"
	"meterbill/internal/sentinel"
	id "meterbill/pkg/domain"
)

// TenantStore keeps tenants in creation order.
type TenantStore struct {
	l *Ledger
}

func (s *TenantStore) Create(ctx context.Context, t *models.Tenant) error {
	defer s.l.write(ctx)()
	st := s.l.state
	if _, exists := st.tenants[t.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	st.tenants[t.ID] = tenantRow{seq: st.next(), tenant: *t}
	return nil
}

func (s *TenantStore) Update(ctx context.Context, t *models.Tenant) error {
	defer s.l.write(ctx)()
	st := s.l.state
	row, ok := st.tenants[t.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	row.tenant = *t
	st.tenants[t.ID] = row
	return nil
}

func (s *TenantStore) Delete(ctx context.Context, tenantID id.TenantID) error {
	defer s.l.write(ctx)()
	if _, ok := s.l.state.tenants[tenantID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.l.state.tenants, tenantID)
	return nil
}

func (s *TenantStore) FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	defer s.l.read(ctx)()
	row, ok := s.l.state.tenants[tenantID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	t := row.tenant
	return &t, nil
}

func (s *TenantStore) List(ctx context.Context) ([]models.Tenant, error) {
	return s.collect(ctx, func(models.Tenant) bool { return true }), nil
}

func (s *TenantStore) ListByActive(ctx context.Context, active bool) ([]models.Tenant, error) {
	return s.collect(ctx, func(t models.Tenant) bool { return t.Active == active }), nil
}

func (s *TenantStore) Clear(ctx context.Context) error {
	defer s.l.write(ctx)()
	clear(s.l.state.tenants)
	return nil
}

func (s *TenantStore) collect(ctx context.Context, keep func(models.Tenant) bool) []models.Tenant {
	defer s.l.read(ctx)()
	rows := make([]tenantRow, 0, len(s.l.state.tenants))
	for _, row := range s.l.state.tenants {
		if keep(row.tenant) {
			rows = append(rows, row)
		}
	}
	slices.SortFunc(rows, func(a, b tenantRow) int { return cmp.Compare(a.seq, b.seq) })
	out := make([]models.Tenant, len(rows))
	for i, row := range rows {
		out[i] = row.tenant
	}
	return out
}
