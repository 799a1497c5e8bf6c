package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"meterbill/internal/ledger/models"
	id "meterbill/pkg/domain"
)

// Ledger is the subset of the ledger service the seeder writes through.
type Ledger interface {
	ListTenants(ctx context.Context) ([]models.Tenant, error)
	ListPeriodReadings(ctx context.Context) ([]models.PeriodReading, error)
	AddTenant(ctx context.Context, req *models.AddTenantRequest) (*models.Tenant, error)
	ToggleTenantActive(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	RecordPeriodReading(ctx context.Context, req *models.RecordPeriodReadingRequest, confirmOverwrite bool) (*models.PeriodReading, error)
	RecordTenantReading(ctx context.Context, req *models.RecordTenantReadingRequest) (*models.TenantPeriodReading, error)
}

// Seeder populates an empty ledger with demo tenants and three months of readings
type Seeder struct {
	ledger Ledger
	logger *slog.Logger
	start  id.PeriodKey
}

// New creates a new seeder. The last seeded period is the month before now.
func New(ledger Ledger, logger *slog.Logger, now time.Time) *Seeder {
	return &Seeder{
		ledger: ledger,
		logger: logger,
		start:  id.PeriodOf(now.AddDate(0, -3, 0)),
	}
}

type demoTenant struct {
	name   string
	room   string
	active bool
	// meter holds cumulative sub-meter values, one per seeded period.
	meter []float64
}

var demoTenants = []demoTenant{
	{"Amal Haddad", "1A", true, []float64{40, 72, 101}},
	{"Bruno Costa", "1B", true, []float64{25, 51, 80}},
	{"Chiara Russo", "2A", true, []float64{30, 49, 77}},
	{"Dmitri Volkov", "2B", false, []float64{10, 10, 10}},
}

// Building meter values and invoiced cost per seeded period. The building
// totals run slightly above the tenant sum to leave some common-area usage.
var demoBuilding = []struct {
	meter float64
	cost  float64
}{
	{120, 18.5},
	{230, 21.75},
	{340, 23.1},
}

// SeedAll populates the ledger with demo data. A ledger that already holds
// tenants or period readings is left untouched.
func (s *Seeder) SeedAll(ctx context.Context) error {
	empty, err := s.isEmpty(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect ledger: %w", err)
	}
	if !empty {
		s.logger.InfoContext(ctx, "ledger already has data, skipping demo seed")
		return nil
	}

	s.logger.InfoContext(ctx, "seeding demo data...")

	tenants, err := s.seedTenants(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed tenants: %w", err)
	}

	periods, err := s.seedReadings(ctx, tenants)
	if err != nil {
		return fmt.Errorf("failed to seed readings: %w", err)
	}

	s.logger.InfoContext(ctx, "demo data seeded successfully",
		"tenants", len(tenants),
		"periods", periods,
	)
	return nil
}

func (s *Seeder) isEmpty(ctx context.Context) (bool, error) {
	tenants, err := s.ledger.ListTenants(ctx)
	if err != nil {
		return false, err
	}
	periods, err := s.ledger.ListPeriodReadings(ctx)
	if err != nil {
		return false, err
	}
	return len(tenants) == 0 && len(periods) == 0, nil
}

func (s *Seeder) seedTenants(ctx context.Context) ([]*models.Tenant, error) {
	tenants := make([]*models.Tenant, 0, len(demoTenants))
	for _, t := range demoTenants {
		tenant, err := s.ledger.AddTenant(ctx, &models.AddTenantRequest{Name: t.name, Room: t.room})
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, nil
}

// seedReadings records every period's building meter before its tenant
// readings, then deactivates tenants that moved out.
func (s *Seeder) seedReadings(ctx context.Context, tenants []*models.Tenant) (int, error) {
	period := s.start
	for i, b := range demoBuilding {
		readAt := period.Start().Add(24 * time.Hour)
		_, err := s.ledger.RecordPeriodReading(ctx, &models.RecordPeriodReadingRequest{
			Period:     period,
			ReadAt:     readAt,
			MeterValue: &b.meter,
			TotalCost:  &b.cost,
		}, false)
		if err != nil {
			return i, fmt.Errorf("period %s: %w", period, err)
		}

		for j, tenant := range tenants {
			value := demoTenants[j].meter[i]
			_, err := s.ledger.RecordTenantReading(ctx, &models.RecordTenantReadingRequest{
				TenantID:   tenant.ID,
				Period:     period,
				ReadAt:     readAt,
				MeterValue: &value,
			})
			if err != nil {
				return i, fmt.Errorf("period %s tenant %s: %w", period, tenant.Name, err)
			}
		}
		period = period.Next()
	}

	for j, tenant := range tenants {
		if demoTenants[j].active {
			continue
		}
		if _, err := s.ledger.ToggleTenantActive(ctx, tenant.ID); err != nil {
			return len(demoBuilding), err
		}
	}
	return len(demoBuilding), nil
}
