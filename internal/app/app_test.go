package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meterbill/internal/ledger/models"
	"meterbill/internal/platform/config"
	"meterbill/pkg/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenMemory(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	l, err := Open(ctx, config.Default(), WithLogger(quietLogger()), WithRegistry(reg))
	require.NoError(t, err)
	defer l.Close()

	_, err = l.RecordPeriodReading(ctx, &models.RecordPeriodReadingRequest{
		Period: testutil.Period(2026, time.January), MeterValue: testutil.Float(120), TotalCost: testutil.Float(18.5),
	}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, promtest.CollectAndCount(l.Registry, "meterbill_readings_recorded_total"))
	assert.Same(t, reg, l.Registry)
}

func TestOpenSQLiteRoundsCosts(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Store = config.StoreSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "ledger.db")
	cfg.CostPrecision = 2

	var logs bytes.Buffer
	l, err := Open(ctx, cfg, WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))))
	require.NoError(t, err)
	defer l.Close()
	assert.Contains(t, logs.String(), `"store":"sqlite"`)

	jan := testutil.Period(2026, time.January)
	_, err = l.RecordPeriodReading(ctx, &models.RecordPeriodReadingRequest{
		Period: jan, MeterValue: testutil.Float(90), TotalCost: testutil.Float(10),
	}, false)
	require.NoError(t, err)

	var total float64
	for _, name := range []string{"A", "B", "C"} {
		tenant, err := l.AddTenant(ctx, &models.AddTenantRequest{Name: name})
		require.NoError(t, err)
		_, err = l.RecordTenantReading(ctx, &models.RecordTenantReadingRequest{
			TenantID: tenant.ID, Period: jan, MeterValue: testutil.Float(30),
		})
		require.NoError(t, err)
	}
	readings, err := l.PeriodTenantReadings(ctx, jan)
	require.NoError(t, err)
	for _, r := range readings {
		total += r.ProportionalCost
	}
	assert.InDelta(t, 10.0, total, 1e-9)

	require.NoError(t, l.Close())
	require.NoError(t, l.Close(), "close is idempotent")
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Store = config.StorePostgres

	_, err := Open(context.Background(), cfg, WithLogger(quietLogger()))
	assert.ErrorContains(t, err, "METERBILL_DATABASE_URL")
}

func TestOpenSeedsDemoData(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Store = config.StoreSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "ledger.db")
	cfg.SeedDemo = true

	l, err := Open(ctx, cfg, WithLogger(quietLogger()))
	require.NoError(t, err)
	periods, err := l.ListPeriodReadings(ctx)
	require.NoError(t, err)
	assert.Len(t, periods, 3)
	require.NoError(t, l.Close())

	reopened, err := Open(ctx, cfg, WithLogger(quietLogger()))
	require.NoError(t, err)
	defer reopened.Close()
	tenants, err := reopened.ListTenants(ctx)
	require.NoError(t, err)
	assert.Len(t, tenants, 4, "reopening a seeded ledger does not seed again")
}
