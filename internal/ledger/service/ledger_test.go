package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	ledgermetrics "meterbill/internal/ledger/metrics"
	"meterbill/internal/ledger/models"
	"meterbill/internal/ledger/store/memory"
	id "meterbill/pkg/domain"
	dErrors "meterbill/pkg/domain-errors"
	"meterbill/pkg/testutil"
)

var (
	jan = testutil.Period(2026, time.January)
	feb = testutil.Period(2026, time.February)
	mar = testutil.Period(2026, time.March)
)

// LedgerSuite runs the service against the in-memory ledger.
type LedgerSuite struct {
	suite.Suite
	ledger  *memory.Ledger
	metrics *ledgermetrics.Metrics
	service *Service
	ctx     context.Context
}

func (s *LedgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.ledger = memory.New()
	s.metrics = ledgermetrics.New(prometheus.NewRegistry())
	s.service = newLedgerService(s.ledger, WithMetrics(s.metrics))
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func newLedgerService(l *memory.Ledger, opts ...Option) *Service {
	opts = append([]Option{WithTx(l)}, opts...)
	return New(l.Tenants(), l.PeriodReadings(), l.TenantReadings(), opts...)
}

func (s *LedgerSuite) addTenant(name string) *models.Tenant {
	t, err := s.service.AddTenant(s.ctx, &models.AddTenantRequest{Name: name, Room: name + "-room"})
	s.Require().NoError(err)
	return t
}

func (s *LedgerSuite) recordPeriod(period id.PeriodKey, meter, cost float64) *models.PeriodReading {
	p, err := s.service.RecordPeriodReading(s.ctx, &models.RecordPeriodReadingRequest{
		Period:     period,
		MeterValue: testutil.Float(meter),
		TotalCost:  testutil.Float(cost),
	}, false)
	s.Require().NoError(err)
	return p
}

func (s *LedgerSuite) recordTenant(tenantID id.TenantID, period id.PeriodKey, meter float64) *models.TenantPeriodReading {
	r, err := s.service.RecordTenantReading(s.ctx, &models.RecordTenantReadingRequest{
		TenantID:   tenantID,
		Period:     period,
		MeterValue: testutil.Float(meter),
	})
	s.Require().NoError(err)
	return r
}

func (s *LedgerSuite) readingOf(tenantID id.TenantID, period id.PeriodKey) models.TenantPeriodReading {
	readings, err := s.service.PeriodTenantReadings(s.ctx, period)
	s.Require().NoError(err)
	for _, r := range readings {
		if r.TenantID == tenantID {
			return r
		}
	}
	s.FailNow("no reading for tenant", tenantID.String())
	return models.TenantPeriodReading{}
}

func (s *LedgerSuite) TestFirstBuildingReading() {
	p := s.recordPeriod(jan, 120, 18.5)

	s.Equal(0.0, p.PreviousValue)
	s.Equal(120.0, p.UnitsConsumed)
	s.Equal(18.5, p.TotalCost)
	s.Equal(jan.Start(), p.ReadAt)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.ReadingsRecorded.WithLabelValues("building", ledgermetrics.OutcomeCreated)))
}

func (s *LedgerSuite) TestBuildingHistoryResolvesEarlierPeriodsOnly() {
	s.recordPeriod(jan, 100, 10)
	s.recordPeriod(mar, 300, 10)
	febReading := s.recordPeriod(feb, 180, 10)

	s.Equal(100.0, febReading.PreviousValue, "back-filled period resolves against january, not march")
	s.Equal(80.0, febReading.UnitsConsumed)

	s.Run("negative building consumption is kept", func() {
		apr := s.recordPeriod(testutil.Period(2026, time.April), 250, 10)
		s.Equal(300.0, apr.PreviousValue)
		s.Equal(-50.0, apr.UnitsConsumed)
	})
}

func (s *LedgerSuite) TestOverwriteRequiresConfirmation() {
	s.recordPeriod(jan, 100, 10)
	original := s.recordPeriod(feb, 150, 20)

	_, err := s.service.RecordPeriodReading(s.ctx, &models.RecordPeriodReadingRequest{
		Period: feb, MeterValue: testutil.Float(170), TotalCost: testutil.Float(25),
	}, false)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	periods, err := s.service.ListPeriodReadings(s.ctx)
	s.Require().NoError(err)
	s.Len(periods, 2)

	corrected, err := s.service.RecordPeriodReading(s.ctx, &models.RecordPeriodReadingRequest{
		Period: feb, MeterValue: testutil.Float(170), TotalCost: testutil.Float(25),
	}, true)
	s.Require().NoError(err)
	s.Equal(original.ID, corrected.ID)
	s.Equal(100.0, corrected.PreviousValue)
	s.Equal(70.0, corrected.UnitsConsumed)
	s.Equal(25.0, corrected.TotalCost)

	periods, err = s.service.ListPeriodReadings(s.ctx)
	s.Require().NoError(err)
	s.Len(periods, 2)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.ReadingsRecorded.WithLabelValues("building", ledgermetrics.OutcomeCorrected)))
}

func (s *LedgerSuite) TestProportionalSplit() {
	a := s.addTenant("Alice")
	b := s.addTenant("Bob")
	s.recordPeriod(jan, 100, 100)

	s.recordTenant(a.ID, jan, 30)
	s.recordTenant(b.ID, jan, 70)

	ra, rb := s.readingOf(a.ID, jan), s.readingOf(b.ID, jan)
	s.InDelta(0.3, ra.Proportion, 1e-12)
	s.InDelta(0.7, rb.Proportion, 1e-12)
	s.InDelta(30.0, ra.ProportionalCost, 1e-9)
	s.InDelta(70.0, rb.ProportionalCost, 1e-9)
	s.InDelta(100.0, ra.ProportionalCost+rb.ProportionalCost, 1e-9)
}

func (s *LedgerSuite) TestZeroConsumptionLeavesCostUnallocated() {
	a := s.addTenant("Alice")
	b := s.addTenant("Bob")
	s.recordPeriod(jan, 10, 50)

	s.recordTenant(a.ID, jan, 0)
	s.recordTenant(b.ID, jan, 0)

	s.Equal(0.0, s.readingOf(a.ID, jan).ProportionalCost)
	s.Equal(0.0, s.readingOf(b.ID, jan).ProportionalCost)

	alloc, err := s.service.ReconcilePeriod(s.ctx, jan)
	s.Require().NoError(err)
	s.True(alloc.Unallocated())
	s.Greater(promtest.ToFloat64(s.metrics.UnallocatedCost), 0.0)
}

func (s *LedgerSuite) TestAutoReconcileOnEveryChange() {
	a := s.addTenant("Alice")
	b := s.addTenant("Bob")
	s.recordPeriod(jan, 100, 60)

	first := s.recordTenant(a.ID, jan, 20)
	s.InDelta(60.0, first.ProportionalCost, 1e-9, "a lone tenant carries the full cost")

	s.recordTenant(b.ID, jan, 40)
	s.InDelta(20.0, s.readingOf(a.ID, jan).ProportionalCost, 1e-9)
	s.InDelta(40.0, s.readingOf(b.ID, jan).ProportionalCost, 1e-9)

	s.Run("cost correction reallocates", func() {
		_, err := s.service.RecordPeriodReading(s.ctx, &models.RecordPeriodReadingRequest{
			Period: jan, MeterValue: testutil.Float(100), TotalCost: testutil.Float(90),
		}, true)
		s.Require().NoError(err)
		s.InDelta(30.0, s.readingOf(a.ID, jan).ProportionalCost, 1e-9)
		s.InDelta(60.0, s.readingOf(b.ID, jan).ProportionalCost, 1e-9)
	})

	s.Run("resubmission replaces the reading", func() {
		again := s.recordTenant(a.ID, jan, 50)
		s.Equal(first.ID, again.ID)
		s.Equal(50.0, again.UnitsConsumed)
		s.InDelta(50.0, again.ProportionalCost, 1e-9)

		readings, err := s.service.PeriodTenantReadings(s.ctx, jan)
		s.Require().NoError(err)
		s.Len(readings, 2)
	})

	s.Run("deleting a reading reallocates the rest", func() {
		s.Require().NoError(s.service.DeleteTenantReading(s.ctx, first.ID))
		s.InDelta(90.0, s.readingOf(b.ID, jan).ProportionalCost, 1e-9)
		s.InDelta(1.0, s.readingOf(b.ID, jan).Proportion, 1e-12)
	})
}

func (s *LedgerSuite) TestTenantHistoryAndClamp() {
	a := s.addTenant("Alice")
	s.recordPeriod(jan, 100, 10)
	s.recordPeriod(feb, 200, 10)

	s.recordTenant(a.ID, jan, 50)
	r := s.recordTenant(a.ID, feb, 40)

	s.Equal(50.0, r.PreviousValue)
	s.Equal(0.0, r.UnitsConsumed, "tenant consumption never goes negative")

	history, err := s.service.TenantHistory(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(jan, history[0].Period)
	s.Equal(feb, history[1].Period)
}

func (s *LedgerSuite) TestTenantReadingPreconditions() {
	a := s.addTenant("Alice")

	_, err := s.service.RecordTenantReading(s.ctx, &models.RecordTenantReadingRequest{
		TenantID: a.ID, Period: jan, MeterValue: testutil.Float(5),
	})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	s.recordPeriod(jan, 100, 10)
	_, err = s.service.RecordTenantReading(s.ctx, &models.RecordTenantReadingRequest{
		TenantID: id.NewTenantID(), Period: jan, MeterValue: testutil.Float(5),
	})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.service.RecordTenantReading(s.ctx, &models.RecordTenantReadingRequest{
		TenantID: a.ID, Period: jan,
	})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *LedgerSuite) TestSummarizePeriod() {
	a := s.addTenant("Alice")
	b := s.addTenant("Bob")
	c := s.addTenant("Carol")
	s.recordPeriod(jan, 120, 24)
	s.recordTenant(a.ID, jan, 40)
	s.recordTenant(b.ID, jan, 60)

	report, err := s.service.SummarizePeriod(s.ctx, jan)
	s.Require().NoError(err)
	s.InDelta(20.0, report.Summary.CommonAreaUnits, 1e-9)
	s.False(report.Summary.HasDiscrepancy)
	s.InDelta(100.0, report.Summary.TotalTenantUnits, 1e-9)
	s.InDelta(0.2, report.Summary.CostPerUnit, 1e-9)
	s.Equal([]id.TenantID{c.ID}, report.MissingTenantIDs)

	s.Run("inactive tenants are not reported missing", func() {
		_, err := s.service.ToggleTenantActive(s.ctx, c.ID)
		s.Require().NoError(err)
		report, err := s.service.SummarizePeriod(s.ctx, jan)
		s.Require().NoError(err)
		s.Empty(report.MissingTenantIDs)
	})

	s.Run("tenant total above building is a discrepancy", func() {
		s.recordTenant(c.ID, jan, 30)
		alloc, err := s.service.ReconcilePeriod(s.ctx, jan)
		s.Require().NoError(err)
		s.True(alloc.Summary.HasDiscrepancy)
		s.Equal(0.0, alloc.Summary.CommonAreaUnits)
		s.GreaterOrEqual(promtest.ToFloat64(s.metrics.Discrepancies), 1.0)
	})
}

func (s *LedgerSuite) TestDeletePeriodReading() {
	a := s.addTenant("Alice")
	s.recordPeriod(jan, 100, 10)
	r := s.recordTenant(a.ID, jan, 10)

	err := s.service.DeletePeriodReading(s.ctx, jan)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	s.Require().NoError(s.service.DeleteTenantReading(s.ctx, r.ID))
	s.Require().NoError(s.service.DeletePeriodReading(s.ctx, jan))

	_, err = s.service.GetPeriodReading(s.ctx, jan)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *LedgerSuite) TestLatestPeriodReading() {
	_, err := s.service.LatestPeriodReading(s.ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	s.recordPeriod(mar, 300, 10)
	s.recordPeriod(jan, 100, 10)

	latest, err := s.service.LatestPeriodReading(s.ctx)
	s.Require().NoError(err)
	s.Equal(mar, latest.Period)
}

func (s *LedgerSuite) TestTenantManagement() {
	t := s.addTenant("Alice")
	s.True(t.Active)

	renamed, err := s.service.UpdateTenant(s.ctx, t.ID, models.TenantUpdate{Name: strPtr("Alicia")})
	s.Require().NoError(err)
	s.Equal("Alicia", renamed.Name)
	s.Equal("Alice-room", renamed.Room)

	_, err = s.service.UpdateTenant(s.ctx, t.ID, models.TenantUpdate{Name: strPtr("  ")})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	toggled, err := s.service.ToggleTenantActive(s.ctx, t.ID)
	s.Require().NoError(err)
	s.False(toggled.Active)

	active, err := s.service.ActiveTenants(s.ctx)
	s.Require().NoError(err)
	s.Empty(active)

	all, err := s.service.ListTenants(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *LedgerSuite) TestDeleteTenantKeepsHistory() {
	t := s.addTenant("Alice")
	s.recordPeriod(jan, 100, 10)
	s.recordTenant(t.ID, jan, 30)

	s.Require().NoError(s.service.DeleteTenant(s.ctx, t.ID))

	_, err := s.service.GetTenant(s.ctx, t.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	history, err := s.service.TenantHistory(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Len(history, 1)
	s.InDelta(10.0, history[0].ProportionalCost, 1e-9)
}

func (s *LedgerSuite) TestExportImport() {
	a := s.addTenant("Alice")
	b := s.addTenant("Bob")
	s.recordPeriod(jan, 100, 100)
	s.recordTenant(a.ID, jan, 30)
	s.recordTenant(b.ID, jan, 70)

	snapshot, err := s.service.Export(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.SnapshotVersion, snapshot.Version)

	encoded, err := json.Marshal(snapshot)
	s.Require().NoError(err)
	var decoded models.Snapshot
	s.Require().NoError(json.Unmarshal(encoded, &decoded))

	target := newLedgerService(memory.New())
	s.Require().NoError(target.Import(s.ctx, &decoded))

	s.Run("restored ledger matches", func() {
		restored, err := target.Export(s.ctx)
		s.Require().NoError(err)
		s.Len(restored.Data.Tenants, 2)
		s.Len(restored.Data.PeriodReadings, 1)
		s.Len(restored.Data.TenantReadings, 2)
		costs := map[id.TenantID]float64{}
		for _, r := range restored.Data.TenantReadings {
			costs[r.TenantID] = r.ProportionalCost
		}
		s.InDelta(30.0, costs[a.ID], 1e-9)
		s.InDelta(70.0, costs[b.ID], 1e-9)

		report, err := target.SummarizePeriod(s.ctx, jan)
		s.Require().NoError(err)
		s.InDelta(100.0, report.Summary.TotalTenantCost, 1e-9)
	})

	s.Run("newer snapshot version is rejected", func() {
		future := decoded
		future.Version = models.SnapshotVersion + 1
		err := target.Import(s.ctx, &future)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("duplicate records abort the import and keep prior state", func() {
		broken := decoded
		broken.Data.Tenants = append([]models.Tenant{}, decoded.Data.Tenants...)
		broken.Data.Tenants = append(broken.Data.Tenants, decoded.Data.Tenants[0])

		err := target.Import(s.ctx, &broken)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		tenants, err := target.ListTenants(s.ctx)
		s.Require().NoError(err)
		s.Len(tenants, 2)
	})

	s.Run("clear all", func() {
		s.Require().NoError(target.ClearAll(s.ctx))
		snap, err := target.Export(s.ctx)
		s.Require().NoError(err)
		s.Empty(snap.Data.Tenants)
		s.Empty(snap.Data.PeriodReadings)
		s.Empty(snap.Data.TenantReadings)
	})
}

func TestRoundedAllocation(t *testing.T) {
	ctx := context.Background()
	l := memory.New()
	svc := newLedgerService(l, WithCostPrecision(2))

	_, err := svc.RecordPeriodReading(ctx, &models.RecordPeriodReadingRequest{
		Period: jan, MeterValue: testutil.Float(30), TotalCost: testutil.Float(10),
	}, false)
	require.NoError(t, err)

	for _, name := range []string{"A", "B", "C"} {
		tenant, err := svc.AddTenant(ctx, &models.AddTenantRequest{Name: name})
		require.NoError(t, err)
		_, err = svc.RecordTenantReading(ctx, &models.RecordTenantReadingRequest{
			TenantID: tenant.ID, Period: jan, MeterValue: testutil.Float(10),
		})
		require.NoError(t, err)
	}

	alloc, err := svc.ReconcilePeriod(ctx, jan)
	require.NoError(t, err)

	var sum float64
	costs := make([]float64, 0, len(alloc.Readings))
	for _, r := range alloc.Readings {
		sum += r.ProportionalCost
		costs = append(costs, r.ProportionalCost)
	}
	assert.InDelta(t, 10.0, sum, 1e-9)
	assert.Equal(t, []float64{3.34, 3.33, 3.33}, costs)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newLedgerService(memory.New())
	_, err := svc.AddTenant(ctx, &models.AddTenantRequest{Name: "Alice"})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
}

func strPtr(s string) *string { return &s }
