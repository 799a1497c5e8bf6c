package service

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	ledgermetrics "meterbill/internal/ledger/metrics"
)

// serviceConfig holds optional dependencies for the service.
type serviceConfig struct {
	tx         StoreTx
	logger     *slog.Logger
	metrics    *ledgermetrics.Metrics
	tracer     trace.Tracer
	now        func() time.Time
	roundCosts bool
	costPlaces int32
}

// Option configures a service.
type Option func(c *serviceConfig)

// WithTx sets the transaction boundary shared with the stores. Without it the
// service only serializes mutations and cannot roll back partial writes.
func WithTx(tx StoreTx) Option {
	return func(c *serviceConfig) {
		c.tx = tx
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

func WithMetrics(m *ledgermetrics.Metrics) Option {
	return func(c *serviceConfig) {
		c.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(c *serviceConfig) {
		c.tracer = t
	}
}

// WithClock overrides time.Now for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *serviceConfig) {
		c.now = now
	}
}

// WithCostPrecision settles allocated costs in steps of places decimal digits so
// they sum to the rounded total. A negative value keeps raw costs.
func WithCostPrecision(places int32) Option {
	return func(c *serviceConfig) {
		c.roundCosts = places >= 0
		c.costPlaces = places
	}
}
