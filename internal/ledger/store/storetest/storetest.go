// Package storetest holds the behavioural contract every ledger store backend
// must satisfy. Backend test files call Run with a factory for a fresh, empty ledger.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meterbill/internal/ledger/service"
	"meterbill/internal/sentinel"
	"meterbill/pkg/testutil"
)

// Backend is one opened ledger.
type Backend struct {
	Tenants  service.TenantStore
	Periods  service.PeriodReadingStore
	Readings service.TenantReadingStore
	Tx       service.StoreTx
}

// Run executes the contract. open must return an empty ledger on every call.
func Run(t *testing.T, open func(t *testing.T) Backend) {
	t.Run("tenants", func(t *testing.T) { testTenants(t, open(t)) })
	t.Run("period readings", func(t *testing.T) { testPeriods(t, open(t)) })
	t.Run("tenant readings", func(t *testing.T) { testReadings(t, open(t)) })
	t.Run("transactions", func(t *testing.T) { testTx(t, open(t)) })
}

func testTenants(t *testing.T, b Backend) {
	ctx := context.Background()
	first := testutil.NewTenantBuilder().WithName("Amal").Build()
	second := testutil.NewTenantBuilder().WithName("Badr").Inactive().Build()
	require.NoError(t, b.Tenants.Create(ctx, first))
	require.NoError(t, b.Tenants.Create(ctx, second))

	assert.ErrorIs(t, b.Tenants.Create(ctx, first), sentinel.ErrAlreadyUsed)

	all, err := b.Tenants.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)

	active, err := b.Tenants.ListByActive(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, first.ID, active[0].ID)

	first.Room = "4C"
	require.NoError(t, b.Tenants.Update(ctx, first))
	found, err := b.Tenants.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "4C", found.Room)
	assert.True(t, found.Active)

	ghost := testutil.NewTenantBuilder().Build()
	assert.ErrorIs(t, b.Tenants.Update(ctx, ghost), sentinel.ErrNotFound)
	assert.ErrorIs(t, b.Tenants.Delete(ctx, ghost.ID), sentinel.ErrNotFound)
	_, err = b.Tenants.FindByID(ctx, ghost.ID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, b.Tenants.Delete(ctx, second.ID))
	require.NoError(t, b.Tenants.Clear(ctx))
	all, err = b.Tenants.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func testPeriods(t *testing.T, b Backend) {
	ctx := context.Background()
	feb := testutil.NewPeriodReadingBuilder().ForPeriod(testutil.Period(2026, time.February)).WithMeter(180, 100).Build()
	jan := testutil.NewPeriodReadingBuilder().ForPeriod(testutil.Period(2026, time.January)).Build()
	require.NoError(t, b.Periods.Create(ctx, feb))
	require.NoError(t, b.Periods.Create(ctx, jan))

	dup := testutil.NewPeriodReadingBuilder().ForPeriod(feb.Period).Build()
	assert.ErrorIs(t, b.Periods.Create(ctx, dup), sentinel.ErrAlreadyUsed)

	found, err := b.Periods.FindByPeriod(ctx, feb.Period)
	require.NoError(t, err)
	assert.Equal(t, feb.ID, found.ID)
	assert.Equal(t, feb.Period, found.Period)
	assert.Equal(t, 80.0, found.UnitsConsumed)
	assert.Equal(t, 100.0, found.PreviousValue)

	_, err = b.Periods.FindByPeriod(ctx, testutil.Period(2030, time.May))
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	all, err := b.Periods.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, jan.ID, all[0].ID, "history is ordered by read time")
	assert.Equal(t, feb.ID, all[1].ID)

	feb.TotalCost = 42.5
	require.NoError(t, b.Periods.Update(ctx, feb))
	found, err = b.Periods.FindByID(ctx, feb.ID)
	require.NoError(t, err)
	assert.Equal(t, 42.5, found.TotalCost)

	require.NoError(t, b.Periods.Delete(ctx, feb.ID))
	assert.ErrorIs(t, b.Periods.Delete(ctx, feb.ID), sentinel.ErrNotFound)
	again := testutil.NewPeriodReadingBuilder().ForPeriod(feb.Period).Build()
	assert.NoError(t, b.Periods.Create(ctx, again), "deleting frees the period key")
}

func testReadings(t *testing.T, b Backend) {
	ctx := context.Background()
	jan := testutil.NewPeriodReadingBuilder().ForPeriod(testutil.Period(2026, time.January)).Build()
	feb := testutil.NewPeriodReadingBuilder().ForPeriod(testutil.Period(2026, time.February)).Build()
	require.NoError(t, b.Periods.Create(ctx, jan))
	require.NoError(t, b.Periods.Create(ctx, feb))

	febReading := testutil.NewTenantReadingBuilder(feb).WithMeter(80, 50).Build()
	janReading := testutil.NewTenantReadingBuilder(jan).WithMeter(50, 0).Build()
	other := testutil.NewTenantReadingBuilder(feb).WithTenantID(testutil.TestIDs.TenantID2).Build()
	require.NoError(t, b.Readings.Create(ctx, febReading))
	require.NoError(t, b.Readings.Create(ctx, janReading))
	require.NoError(t, b.Readings.Create(ctx, other))

	dup := testutil.NewTenantReadingBuilder(feb).Build()
	assert.ErrorIs(t, b.Readings.Create(ctx, dup), sentinel.ErrAlreadyUsed)

	history, err := b.Readings.ListByTenant(ctx, testutil.TestIDs.TenantID1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, janReading.ID, history[0].ID)
	assert.Equal(t, febReading.ID, history[1].ID)

	byOwner, err := b.Readings.ListByPeriodReading(ctx, feb.ID)
	require.NoError(t, err)
	require.Len(t, byOwner, 2)
	assert.Equal(t, febReading.ID, byOwner[0].ID, "period readings keep insertion order")

	byKey, err := b.Readings.ListByPeriod(ctx, feb.Period)
	require.NoError(t, err)
	assert.Len(t, byKey, 2)

	found, err := b.Readings.FindByTenantAndPeriod(ctx, testutil.TestIDs.TenantID2, feb.Period)
	require.NoError(t, err)
	assert.Equal(t, other.ID, found.ID)
	_, err = b.Readings.FindByTenantAndPeriod(ctx, testutil.TestIDs.TenantID3, feb.Period)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	febReading.ApplyShare(0.5, 12.25, time.Now())
	require.NoError(t, b.Readings.Update(ctx, febReading))
	found, err = b.Readings.FindByID(ctx, febReading.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.25, found.ProportionalCost)
	assert.Equal(t, 0.5, found.Proportion)
	assert.Equal(t, 30.0, found.UnitsConsumed)

	require.NoError(t, b.Readings.Delete(ctx, other.ID))
	assert.ErrorIs(t, b.Readings.Delete(ctx, other.ID), sentinel.ErrNotFound)

	all, err := b.Readings.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, b.Readings.Clear(ctx))
	all, err = b.Readings.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func testTx(t *testing.T, b Backend) {
	ctx := context.Background()
	boom := errors.New("boom")
	tenant := testutil.NewTenantBuilder().Build()
	period := testutil.NewPeriodReadingBuilder().Build()

	err := b.Tx.RunInTx(ctx, func(txCtx context.Context) error {
		require.NoError(t, b.Tenants.Create(txCtx, tenant))
		require.NoError(t, b.Periods.Create(txCtx, period))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = b.Tenants.FindByID(ctx, tenant.ID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound, "rolled back tenant must not be visible")
	_, err = b.Periods.FindByPeriod(ctx, period.Period)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	err = b.Tx.RunInTx(ctx, func(txCtx context.Context) error {
		return b.Tx.RunInTx(txCtx, func(inner context.Context) error {
			return b.Tenants.Create(inner, tenant)
		})
	})
	require.NoError(t, err)
	_, err = b.Tenants.FindByID(ctx, tenant.ID)
	assert.NoError(t, err, "nested transactions commit with the outer one")
}
