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

// PeriodReadingStore persists building readings, one per period.
type PeriodReadingStore struct {
	l *Ledger
}

const periodColumns = `id, period, read_at, meter_value, total_cost, previous_value, units_consumed, created_at, updated_at`

func (s *PeriodReadingStore) Create(ctx context.Context, p *models.PeriodReading) error {
	if p == nil {
		return fmt.Errorf("period reading is required")
	}
	query := `
		INSERT INTO period_readings (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.l.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(p.ID),
		p.Period.String(),
		p.ReadAt,
		p.MeterValue,
		p.TotalCost,
		p.PreviousValue,
		p.UnitsConsumed,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("period %s already recorded: %w", p.Period, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create period reading: %w", err)
	}
	return nil
}

func (s *PeriodReadingStore) Update(ctx context.Context, p *models.PeriodReading) error {
	if p == nil {
		return fmt.Errorf("period reading is required")
	}
	query := `
		UPDATE period_readings
		SET period = $2, read_at = $3, meter_value = $4, total_cost = $5,
		    previous_value = $6, units_consumed = $7, updated_at = $8
		WHERE id = $1
	`
	res, err := s.l.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(p.ID),
		p.Period.String(),
		p.ReadAt,
		p.MeterValue,
		p.TotalCost,
		p.PreviousValue,
		p.UnitsConsumed,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("period %s already recorded: %w", p.Period, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("update period reading: %w", err)
	}
	return requireAffected(res, "update period reading")
}

func (s *PeriodReadingStore) Delete(ctx context.Context, readingID id.PeriodReadingID) error {
	res, err := s.l.execer(ctx).ExecContext(ctx, `DELETE FROM period_readings WHERE id = $1`, uuid.UUID(readingID))
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("period reading %s still referenced: %w", readingID, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("delete period reading: %w", err)
	}
	return requireAffected(res, "delete period reading")
}

func (s *PeriodReadingStore) FindByID(ctx context.Context, readingID id.PeriodReadingID) (*models.PeriodReading, error) {
	query := `SELECT ` + periodColumns + ` FROM period_readings WHERE id = $1`
	return s.findOne(ctx, query, uuid.UUID(readingID))
}

func (s *PeriodReadingStore) FindByPeriod(ctx context.Context, period id.PeriodKey) (*models.PeriodReading, error) {
	query := `SELECT ` + periodColumns + ` FROM period_readings WHERE period = $1`
	return s.findOne(ctx, query, period.String())
}

// List returns building readings ordered by read time, then insertion.
func (s *PeriodReadingStore) List(ctx context.Context) ([]models.PeriodReading, error) {
	rows, err := s.l.execer(ctx).QueryContext(ctx, `SELECT `+periodColumns+` FROM period_readings ORDER BY read_at, seq`)
	if err != nil {
		return nil, fmt.Errorf("list period readings: %w", err)
	}
	defer rows.Close()

	periods := make([]models.PeriodReading, 0)
	for rows.Next() {
		p, err := scanPeriodReading(rows)
		if err != nil {
			return nil, fmt.Errorf("scan period reading: %w", err)
		}
		periods = append(periods, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list period readings: %w", err)
	}
	return periods, nil
}

func (s *PeriodReadingStore) Clear(ctx context.Context) error {
	if _, err := s.l.execer(ctx).ExecContext(ctx, `DELETE FROM period_readings`); err != nil {
		return fmt.Errorf("clear period readings: %w", err)
	}
	return nil
}

func (s *PeriodReadingStore) findOne(ctx context.Context, query string, arg any) (*models.PeriodReading, error) {
	p, err := scanPeriodReading(s.l.execer(ctx).QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find period reading: %w", err)
	}
	return p, nil
}

func scanPeriodReading(row rowScanner) (*models.PeriodReading, error) {
	var p models.PeriodReading
	var readingID uuid.UUID
	var period string
	if err := row.Scan(&readingID, &period, &p.ReadAt, &p.MeterValue, &p.TotalCost,
		&p.PreviousValue, &p.UnitsConsumed, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	key, err := id.ParsePeriodKey(period)
	if err != nil {
		return nil, fmt.Errorf("stored period %q: %w", period, err)
	}
	p.ID = id.PeriodReadingID(readingID)
	p.Period = key
	return &p, nil
}
