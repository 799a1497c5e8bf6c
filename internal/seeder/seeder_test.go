package seeder

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meterbill/internal/ledger/models"
	"meterbill/internal/ledger/service"
	"meterbill/internal/ledger/store/memory"
	id "meterbill/pkg/domain"
)

func newLedger() *service.Service {
	mem := memory.New()
	return service.New(mem.Tenants(), mem.PeriodReadings(), mem.TenantReadings(), service.WithTx(mem))
}

func TestSeedAll(t *testing.T) {
	ctx := context.Background()
	ledger := newLedger()
	now := time.Date(2026, time.April, 15, 9, 0, 0, 0, time.UTC)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, New(ledger, logger, now).SeedAll(ctx))

	tenants, err := ledger.ListTenants(ctx)
	require.NoError(t, err)
	assert.Len(t, tenants, len(demoTenants))

	active, err := ledger.ActiveTenants(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 3)

	periods, err := ledger.ListPeriodReadings(ctx)
	require.NoError(t, err)
	require.Len(t, periods, 3)
	assert.Equal(t, id.PeriodKey{Year: 2026, Month: time.January}, periods[0].Period)
	assert.Equal(t, id.PeriodKey{Year: 2026, Month: time.March}, periods[2].Period)

	t.Run("later periods consume against the previous month", func(t *testing.T) {
		report, err := ledger.SummarizePeriod(ctx, id.PeriodKey{Year: 2026, Month: time.February})
		require.NoError(t, err)
		assert.InDelta(t, 110.0, report.Summary.BuildingUnits, 1e-9)
		assert.InDelta(t, 77.0, report.Summary.TotalTenantUnits, 1e-9)
		assert.InDelta(t, 21.75, report.Summary.TotalTenantCost, 1e-9)
		assert.False(t, report.Summary.HasDiscrepancy)
	})

	t.Run("seeding twice leaves the ledger untouched", func(t *testing.T) {
		require.NoError(t, New(ledger, logger, now).SeedAll(ctx))
		tenants, err := ledger.ListTenants(ctx)
		require.NoError(t, err)
		assert.Len(t, tenants, len(demoTenants))
	})
}

func TestSeedAllSkipsLedgerWithData(t *testing.T) {
	ctx := context.Background()
	ledger := newLedger()
	_, err := ledger.AddTenant(ctx, &models.AddTenantRequest{Name: "Existing"})
	require.NoError(t, err)

	require.NoError(t, New(ledger, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Now()).SeedAll(ctx))

	periods, err := ledger.ListPeriodReadings(ctx)
	require.NoError(t, err)
	assert.Empty(t, periods)
}
