// Package app opens a ledger from configuration: it picks the store backend,
// wires the reconciliation service and owns the backend's lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	ledgermetrics "meterbill/internal/ledger/metrics"
	"meterbill/internal/ledger/service"
	"meterbill/internal/ledger/store/memory"
	"meterbill/internal/ledger/store/postgres"
	"meterbill/internal/ledger/store/sqlite"
	"meterbill/internal/platform/config"
	"meterbill/internal/platform/database"
	"meterbill/internal/platform/logger"
	"meterbill/internal/seeder"
)

// Ledger is an opened ledger. Close releases the store backend.
type Ledger struct {
	*service.Service
	Registry *prometheus.Registry
	Logger   *slog.Logger

	close func() error
}

type options struct {
	logger   *slog.Logger
	registry *prometheus.Registry
	tracer   trace.Tracer
}

type Option func(*options)

// WithLogger replaces the JSON stdout logger built from the configured level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegistry registers ledger metrics on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) { o.registry = reg }
}

func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// backend is the store triple plus lifecycle every store package provides.
type backend struct {
	tx       service.StoreTx
	tenants  service.TenantStore
	periods  service.PeriodReadingStore
	readings service.TenantReadingStore
	close    func() error
}

// Open validates cfg and opens the configured store.
func Open(ctx context.Context, cfg config.Ledger, opts ...Option) (*Ledger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.New(cfg.LogLevel)
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
	}

	svcOpts := []service.Option{
		service.WithLogger(o.logger),
		service.WithMetrics(ledgermetrics.New(o.registry)),
		service.WithCostPrecision(cfg.CostPrecision),
	}
	if o.tracer != nil {
		svcOpts = append(svcOpts, service.WithTracer(o.tracer))
	}

	var (
		l   *Ledger
		err error
	)
	switch cfg.Store {
	case config.StoreMemory:
		mem := memory.New()
		l = wire(backend{mem, mem.Tenants(), mem.PeriodReadings(), mem.TenantReadings(), mem.Close}, svcOpts)
	case config.StorePostgres:
		l, err = openPostgres(ctx, cfg, svcOpts)
	case config.StoreSQLite:
		var lite *sqlite.Ledger
		lite, err = sqlite.Open(cfg.SQLitePath)
		if err == nil {
			l = wire(backend{lite, lite.Tenants(), lite.PeriodReadings(), lite.TenantReadings(), lite.Close}, svcOpts)
		}
	default:
		err = fmt.Errorf("unknown store %q", cfg.Store)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store, err)
	}

	l.Registry = o.registry
	l.Logger = o.logger
	if cfg.SeedDemo {
		if err := seeder.New(l.Service, o.logger, time.Now()).SeedAll(ctx); err != nil {
			return nil, errors.Join(fmt.Errorf("seed demo data: %w", err), l.Close())
		}
	}
	o.logger.InfoContext(ctx, "ledger opened", "store", cfg.Store, "cost_precision", cfg.CostPrecision)
	return l, nil
}

func openPostgres(ctx context.Context, cfg config.Ledger, svcOpts []service.Option) (*Ledger, error) {
	db, err := database.Open(ctx, database.DefaultConfig(cfg.DatabaseURL))
	if err != nil {
		return nil, err
	}
	pg := postgres.New(db, postgres.WithTxTimeout(cfg.TxTimeout))
	if err := pg.Migrate(ctx); err != nil {
		return nil, errors.Join(err, pg.Close())
	}
	return wire(backend{pg, pg.Tenants(), pg.PeriodReadings(), pg.TenantReadings(), pg.Close}, svcOpts), nil
}

func wire(b backend, svcOpts []service.Option) *Ledger {
	opts := append([]service.Option{service.WithTx(b.tx)}, svcOpts...)
	return &Ledger{
		Service: service.New(b.tenants, b.periods, b.readings, opts...),
		close:   b.close,
	}
}

// Close releases the store. It is safe to call more than once.
func (l *Ledger) Close() error {
	if l.close == nil {
		return nil
	}
	err := l.close()
	l.close = nil
	return err
}
