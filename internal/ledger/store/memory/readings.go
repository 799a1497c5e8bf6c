package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"meterbill/internal/ledger/models"
	"meterbill/internal/sentinel"
	id "meterbill/pkg/domain"
)

// TenantReadingStore enforces one reading per (tenant, period).
type TenantReadingStore struct {
	l *Ledger
}

func keyOf(r *models.TenantPeriodReading) tenantPeriod {
	return tenantPeriod{tenant: r.TenantID, period: r.Period}
}

func (s *TenantReadingStore) Create(ctx context.Context, r *models.TenantPeriodReading) error {
	defer s.l.write(ctx)()
	st := s.l.state
	if _, exists := st.readingIdx[keyOf(r)]; exists {
		return fmt.Errorf("tenant reading for %s already recorded: %w", r.Period, sentinel.ErrAlreadyUsed)
	}
	if _, exists := st.readings[r.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	st.readings[r.ID] = readingRow{seq: st.next(), reading: *r}
	st.readingIdx[keyOf(r)] = r.ID
	return nil
}

func (s *TenantReadingStore) Update(ctx context.Context, r *models.TenantPeriodReading) error {
	defer s.l.write(ctx)()
	st := s.l.state
	row, ok := st.readings[r.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if oldKey := keyOf(&row.reading); oldKey != keyOf(r) {
		if _, taken := st.readingIdx[keyOf(r)]; taken {
			return fmt.Errorf("tenant reading for %s already recorded: %w", r.Period, sentinel.ErrAlreadyUsed)
		}
		delete(st.readingIdx, oldKey)
		st.readingIdx[keyOf(r)] = r.ID
	}
	row.reading = *r
	st.readings[r.ID] = row
	return nil
}

func (s *TenantReadingStore) Delete(ctx context.Context, readingID id.TenantReadingID) error {
	defer s.l.write(ctx)()
	st := s.l.state
	row, ok := st.readings[readingID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(st.readingIdx, keyOf(&row.reading))
	delete(st.readings, readingID)
	return nil
}

func (s *TenantReadingStore) FindByID(ctx context.Context, readingID id.TenantReadingID) (*models.TenantPeriodReading, error) {
	defer s.l.read(ctx)()
	row, ok := s.l.state.readings[readingID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	r := row.reading
	return &r, nil
}

func (s *TenantReadingStore) FindByTenantAndPeriod(ctx context.Context, tenantID id.TenantID, period id.PeriodKey) (*models.TenantPeriodReading, error) {
	defer s.l.read(ctx)()
	readingID, ok := s.l.state.readingIdx[tenantPeriod{tenant: tenantID, period: period}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	r := s.l.state.readings[readingID].reading
	return &r, nil
}

// ListByTenant returns one tenant's readings in history order.
func (s *TenantReadingStore) ListByTenant(ctx context.Context, tenantID id.TenantID) ([]models.TenantPeriodReading, error) {
	rows := s.collect(ctx, func(r models.TenantPeriodReading) bool { return r.TenantID == tenantID })
	slices.SortFunc(rows, func(a, b readingRow) int {
		return byHistory(a.reading.ReadAt, b.reading.ReadAt, a.seq, b.seq)
	})
	return unwrap(rows), nil
}

func (s *TenantReadingStore) ListByPeriodReading(ctx context.Context, periodReadingID id.PeriodReadingID) ([]models.TenantPeriodReading, error) {
	rows := s.collect(ctx, func(r models.TenantPeriodReading) bool { return r.PeriodReadingID == periodReadingID })
	return unwrap(rows), nil
}

func (s *TenantReadingStore) ListByPeriod(ctx context.Context, period id.PeriodKey) ([]models.TenantPeriodReading, error) {
	rows := s.collect(ctx, func(r models.TenantPeriodReading) bool { return r.Period == period })
	return unwrap(rows), nil
}

func (s *TenantReadingStore) List(ctx context.Context) ([]models.TenantPeriodReading, error) {
	rows := s.collect(ctx, func(models.TenantPeriodReading) bool { return true })
	return unwrap(rows), nil
}

func (s *TenantReadingStore) Clear(ctx context.Context) error {
	defer s.l.write(ctx)()
	clear(s.l.state.readings)
	clear(s.l.state.readingIdx)
	return nil
}

// collect returns matching rows in insertion order.
func (s *TenantReadingStore) collect(ctx context.Context, keep func(models.TenantPeriodReading) bool) []readingRow {
	defer s.l.read(ctx)()
	rows := make([]readingRow, 0)
	for _, row := range s.l.state.readings {
		if keep(row.reading) {
			rows = append(rows, row)
		}
	}
	slices.SortFunc(rows, func(a, b readingRow) int { return cmp.Compare(a.seq, b.seq) })
	return rows
}

func unwrap(rows []readingRow) []models.TenantPeriodReading {
	out := make([]models.TenantPeriodReading, len(rows))
	for i, row := range rows {
		out[i] = row.reading
	}
	return out
}
