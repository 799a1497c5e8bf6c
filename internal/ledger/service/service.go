package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	ledgermetrics "meterbill/internal/ledger/metrics"
	"meterbill/internal/ledger/models"
	id "meterbill/pkg/domain"
)

// Store interfaces define persistence contracts.

type TenantStore interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	Update(ctx context.Context, tenant *models.Tenant) error
	Delete(ctx context.Context, tenantID id.TenantID) error
	FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	List(ctx context.Context) ([]models.Tenant, error)
	ListByActive(ctx context.Context, active bool) ([]models.Tenant, error)
	Clear(ctx context.Context) error
}

type PeriodReadingStore interface {
	Create(ctx context.Context, reading *models.PeriodReading) error
	Update(ctx context.Context, reading *models.PeriodReading) error
	Delete(ctx context.Context, readingID id.PeriodReadingID) error
	FindByID(ctx context.Context, readingID id.PeriodReadingID) (*models.PeriodReading, error)
	FindByPeriod(ctx context.Context, period id.PeriodKey) (*models.PeriodReading, error)
	List(ctx context.Context) ([]models.PeriodReading, error)
	Clear(ctx context.Context) error
}

type TenantReadingStore interface {
	Create(ctx context.Context, reading *models.TenantPeriodReading) error
	Update(ctx context.Context, reading *models.TenantPeriodReading) error
	Delete(ctx context.Context, readingID id.TenantReadingID) error
	FindByID(ctx context.Context, readingID id.TenantReadingID) (*models.TenantPeriodReading, error)
	FindByTenantAndPeriod(ctx context.Context, tenantID id.TenantID, period id.PeriodKey) (*models.TenantPeriodReading, error)
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]models.TenantPeriodReading, error)
	ListByPeriodReading(ctx context.Context, periodReadingID id.PeriodReadingID) ([]models.TenantPeriodReading, error)
	ListByPeriod(ctx context.Context, period id.PeriodKey) ([]models.TenantPeriodReading, error)
	List(ctx context.Context) ([]models.TenantPeriodReading, error)
	Clear(ctx context.Context) error
}

// Service is the ledger's reconciliation entry point. Every mutation runs inside
// one StoreTx so previous-reading resolution, writes and cost write-back commit together.
type Service struct {
	tenants  TenantStore
	periods  PeriodReadingStore
	readings TenantReadingStore
	tx       StoreTx
	logger   *slog.Logger
	metrics  *ledgermetrics.Metrics
	tracer   trace.Tracer
	now      func() time.Time

	roundCosts bool
	costPlaces int32
}

func New(tenants TenantStore, periods PeriodReadingStore, readings TenantReadingStore, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	s := &Service{
		tenants:    tenants,
		periods:    periods,
		readings:   readings,
		tx:         cfg.tx,
		logger:     cfg.logger,
		metrics:    cfg.metrics,
		tracer:     cfg.tracer,
		now:        cfg.now,
		roundCosts: cfg.roundCosts,
		costPlaces: cfg.costPlaces,
	}
	if s.tx == nil {
		s.tx = newInMemoryStoreTx()
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("meterbill/ledger")
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}
