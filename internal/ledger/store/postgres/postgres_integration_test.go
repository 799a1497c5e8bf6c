//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meterbill/internal/ledger/models"
	"meterbill/internal/ledger/service"
	"meterbill/internal/ledger/store/storetest"
	id "meterbill/pkg/domain"
	dErrors "meterbill/pkg/domain-errors"
	"meterbill/pkg/testutil"
	"meterbill/pkg/testutil/containers"
)

func openLedger(t *testing.T) *Ledger {
	t.Helper()
	pg := containers.GetManager().GetPostgres(t)
	require.NoError(t, pg.TruncateLedger(context.Background()))
	return New(pg.DB)
}

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storetest.Backend {
		l := openLedger(t)
		return storetest.Backend{Tenants: l.Tenants(), Periods: l.PeriodReadings(), Readings: l.TenantReadings(), Tx: l}
	})
}

func TestMigrateIsIdempotent(t *testing.T) {
	l := openLedger(t)
	require.NoError(t, l.Migrate(context.Background()))
}

func TestPeriodWithReadingsCannotBeDeleted(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t)

	period := testutil.NewPeriodReadingBuilder().Build()
	require.NoError(t, l.PeriodReadings().Create(ctx, period))
	require.NoError(t, l.TenantReadings().Create(ctx, testutil.NewTenantReadingBuilder(period).Build()))

	err := l.PeriodReadings().Delete(ctx, period.ID)
	require.Error(t, err)
}

func TestServiceOnPostgres(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t)
	svc := service.New(l.Tenants(), l.PeriodReadings(), l.TenantReadings(), service.WithTx(l))
	jan := testutil.Period(2026, time.January)

	_, err := svc.RecordPeriodReading(ctx, &models.RecordPeriodReadingRequest{
		Period: jan, MeterValue: testutil.Float(120), TotalCost: testutil.Float(100),
	}, false)
	require.NoError(t, err)

	var tenantIDs []id.TenantID
	for _, units := range []float64{30, 70} {
		tenant, err := svc.AddTenant(ctx, &models.AddTenantRequest{Name: "Tenant"})
		require.NoError(t, err)
		tenantIDs = append(tenantIDs, tenant.ID)
		_, err = svc.RecordTenantReading(ctx, &models.RecordTenantReadingRequest{
			TenantID: tenant.ID, Period: jan, MeterValue: testutil.Float(units),
		})
		require.NoError(t, err)
	}

	report, err := svc.SummarizePeriod(ctx, jan)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, report.Summary.CommonAreaUnits, 1e-9)
	assert.InDelta(t, 100.0, report.Summary.TotalTenantCost, 1e-9)
	assert.False(t, report.Summary.HasDiscrepancy)

	_, err = svc.RecordPeriodReading(ctx, &models.RecordPeriodReadingRequest{
		Period: jan, MeterValue: testutil.Float(150), TotalCost: testutil.Float(50),
	}, false)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))

	snapshot, err := svc.Export(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Import(ctx, snapshot))

	history, err := svc.TenantHistory(ctx, tenantIDs[1])
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.InDelta(t, 70.0, history[0].ProportionalCost, 1e-9)
}

func TestRowsWrittenOutsideTheStore(t *testing.T) {
	ctx := context.Background()
	pg := containers.GetManager().GetPostgres(t)
	require.NoError(t, pg.TruncateLedger(ctx))
	l := New(pg.DB)

	tenantID := pg.CreateTestTenant(ctx, t)
	tenant, err := l.Tenants().FindByID(ctx, tenantID)
	require.NoError(t, err)
	assert.True(t, tenant.Active)

	period := testutil.NewPeriodReadingBuilder().Build()
	require.NoError(t, l.PeriodReadings().Create(ctx, period))

	var stored string
	require.NoError(t, pg.QueryRow(ctx, `SELECT period FROM period_readings WHERE id = $1`, uuid.UUID(period.ID)).Scan(&stored))
	assert.Equal(t, period.Period.String(), stored)

	_, err = pg.Exec(ctx, `INSERT INTO tenant_readings (id, tenant_id, period_reading_id, period, read_at, meter_value, previous_value, units_consumed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), 5, 6, -1, NOW(), NOW())`,
		uuid.New(), uuid.UUID(tenantID), uuid.UUID(period.ID), period.Period.String())
	assert.Error(t, err, "negative units violate the check constraint")
}
