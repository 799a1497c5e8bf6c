// Package memory keeps the ledger in process memory. Transactions snapshot the
// whole ledger on begin and restore it when the transaction function fails.
package memory

import (
	"cmp"
	"context"
	"sync"
	"time"

	"meterbill/internal/ledger/models"
	id "meterbill/pkg/domain"
	dErrors "meterbill/pkg/domain-errors"
)

type txKey struct{}

type tenantPeriod struct {
	tenant id.TenantID
	period id.PeriodKey
}

type tenantRow struct {
	seq    int64
	tenant models.Tenant
}

type periodRow struct {
	seq     int64
	reading models.PeriodReading
}

type readingRow struct {
	seq     int64
	reading models.TenantPeriodReading
}

type state struct {
	seq        int64
	tenants    map[id.TenantID]tenantRow
	periods    map[id.PeriodReadingID]periodRow
	periodIdx  map[id.PeriodKey]id.PeriodReadingID
	readings   map[id.TenantReadingID]readingRow
	readingIdx map[tenantPeriod]id.TenantReadingID
}

func newState() *state {
	return &state{
		tenants:    make(map[id.TenantID]tenantRow),
		periods:    make(map[id.PeriodReadingID]periodRow),
		periodIdx:  make(map[id.PeriodKey]id.PeriodReadingID),
		readings:   make(map[id.TenantReadingID]readingRow),
		readingIdx: make(map[tenantPeriod]id.TenantReadingID),
	}
}

func (s *state) clone() *state {
	c := &state{
		seq:        s.seq,
		tenants:    make(map[id.TenantID]tenantRow, len(s.tenants)),
		periods:    make(map[id.PeriodReadingID]periodRow, len(s.periods)),
		periodIdx:  make(map[id.PeriodKey]id.PeriodReadingID, len(s.periodIdx)),
		readings:   make(map[id.TenantReadingID]readingRow, len(s.readings)),
		readingIdx: make(map[tenantPeriod]id.TenantReadingID, len(s.readingIdx)),
	}
	for k, v := range s.tenants {
		c.tenants[k] = v
	}
	for k, v := range s.periods {
		c.periods[k] = v
	}
	for k, v := range s.periodIdx {
		c.periodIdx[k] = v
	}
	for k, v := range s.readings {
		c.readings[k] = v
	}
	for k, v := range s.readingIdx {
		c.readingIdx[k] = v
	}
	return c
}

func (s *state) next() int64 {
	s.seq++
	return s.seq
}

// Ledger owns the shared state behind the three entity stores.
type Ledger struct {
	mu    sync.RWMutex
	state *state

	tenants  *TenantStore
	periods  *PeriodReadingStore
	readings *TenantReadingStore
}

// New creates an empty in-memory ledger.
func New() *Ledger {
	l := &Ledger{state: newState()}
	l.tenants = &TenantStore{l: l}
	l.periods = &PeriodReadingStore{l: l}
	l.readings = &TenantReadingStore{l: l}
	return l
}

func (l *Ledger) Tenants() *TenantStore               { return l.tenants }
func (l *Ledger) PeriodReadings() *PeriodReadingStore { return l.periods }
func (l *Ledger) TenantReadings() *TenantReadingStore { return l.readings }

// Close is a no-op; it lets the in-memory ledger stand in for durable backends.
func (l *Ledger) Close() error { return nil }

// RunInTx runs fn with exclusive access to the ledger. Any error returned by fn
// discards every write fn made. Nested calls join the outer transaction.
func (l *Ledger) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if l.inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	saved := l.state.clone()
	committed := false
	defer func() {
		if !committed {
			l.state = saved
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, l)); err != nil {
		return err
	}
	committed = true
	return nil
}

func (l *Ledger) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Ledger)
	return ok && owner == l
}

// read and write take the ledger lock unless ctx already holds it through RunInTx.

func (l *Ledger) read(ctx context.Context) func() {
	if l.inTx(ctx) {
		return func() {}
	}
	l.mu.RLock()
	return l.mu.RUnlock
}

func (l *Ledger) write(ctx context.Context) func() {
	if l.inTx(ctx) {
		return func() {}
	}
	l.mu.Lock()
	return l.mu.Unlock
}

// byHistory orders readings by read time, then insertion.
func byHistory(aAt, bAt time.Time, aSeq, bSeq int64) int {
	if c := aAt.Compare(bAt); c != 0 {
		return c
	}
	return cmp.Compare(aSeq, bSeq)
}
