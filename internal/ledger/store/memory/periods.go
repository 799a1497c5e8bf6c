package memory

import (
	"context"
	"fmt"
	"slices"

	"meterbill/internal/ledger/models"
	"meterbill/internal/sentinel"
	id "meterbill/pkg/domain"
)

// PeriodReadingStore enforces one building reading per period key.
type PeriodReadingStore struct {
	l *Ledger
}

func (s *PeriodReadingStore) Create(ctx context.Context, p *models.PeriodReading) error {
	defer s.l.write(ctx)()
	st := s.l.state
	if _, exists := st.periodIdx[p.Period]; exists {
		return fmt.Errorf("period %s already recorded: %w", p.Period, sentinel.ErrAlreadyUsed)
	}
	if _, exists := st.periods[p.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	st.periods[p.ID] = periodRow{seq: st.next(), reading: *p}
	st.periodIdx[p.Period] = p.ID
	return nil
}

func (s *PeriodReadingStore) Update(ctx context.Context, p *models.PeriodReading) error {
	defer s.l.write(ctx)()
	st := s.l.state
	row, ok := st.periods[p.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if row.reading.Period != p.Period {
		if _, taken := st.periodIdx[p.Period]; taken {
			return fmt.Errorf("period %s already recorded: %w", p.Period, sentinel.ErrAlreadyUsed)
		}
		delete(st.periodIdx, row.reading.Period)
		st.periodIdx[p.Period] = p.ID
	}
	row.reading = *p
	st.periods[p.ID] = row
	return nil
}

func (s *PeriodReadingStore) Delete(ctx context.Context, readingID id.PeriodReadingID) error {
	defer s.l.write(ctx)()
	st := s.l.state
	row, ok := st.periods[readingID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(st.periodIdx, row.reading.Period)
	delete(st.periods, readingID)
	return nil
}

func (s *PeriodReadingStore) FindByID(ctx context.Context, readingID id.PeriodReadingID) (*models.PeriodReading, error) {
	defer s.l.read(ctx)()
	row, ok := s.l.state.periods[readingID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	p := row.reading
	return &p, nil
}

func (s *PeriodReadingStore) FindByPeriod(ctx context.Context, period id.PeriodKey) (*models.PeriodReading, error) {
	defer s.l.read(ctx)()
	readingID, ok := s.l.state.periodIdx[period]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	p := s.l.state.periods[readingID].reading
	return &p, nil
}

// List returns every building reading in history order.
func (s *PeriodReadingStore) List(ctx context.Context) ([]models.PeriodReading, error) {
	defer s.l.read(ctx)()
	rows := make([]periodRow, 0, len(s.l.state.periods))
	for _, row := range s.l.state.periods {
		rows = append(rows, row)
	}
	slices.SortFunc(rows, func(a, b periodRow) int {
		return byHistory(a.reading.ReadAt, b.reading.ReadAt, a.seq, b.seq)
	})
	out := make([]models.PeriodReading, len(rows))
	for i, row := range rows {
		out[i] = row.reading
	}
	return out, nil
}

func (s *PeriodReadingStore) Clear(ctx context.Context) error {
	defer s.l.write(ctx)()
	clear(s.l.state.periods)
	clear(s.l.state.periodIdx)
	return nil
}
