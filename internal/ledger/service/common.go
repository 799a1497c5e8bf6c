package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"meterbill/internal/sentinel"
	id "meterbill/pkg/domain"
	dErrors "meterbill/pkg/domain-errors"
)

// ID validation helpers reduce repetition in service methods.

func requireTenantID(tenantID id.TenantID) error {
	if tenantID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "tenant ID required")
	}
	return nil
}

func requireTenantReadingID(readingID id.TenantReadingID) error {
	if readingID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "tenant reading ID required")
	}
	return nil
}

func requirePeriod(period id.PeriodKey) error {
	if period.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "period is required")
	}
	return nil
}

// Error wrapping helpers translate sentinel errors to domain errors.

func wrapTenantErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "tenant not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}

func wrapPeriodErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "period not found")
	}
	if errors.Is(err, sentinel.ErrAlreadyUsed) {
		return dErrors.New(dErrors.CodeConflict, "period already recorded")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}

func wrapReadingErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "tenant reading not found")
	}
	if errors.Is(err, sentinel.ErrAlreadyUsed) {
		return dErrors.New(dErrors.CodeConflict, "tenant already has a reading for this period")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}

// logEvent writes a structured ledger event when a logger is configured.
func (s *Service) logEvent(ctx context.Context, event string, attrs ...any) {
	if s.logger == nil {
		return
	}
	s.logger.InfoContext(ctx, event, append([]any{"event", event}, attrs...)...)
}

func (s *Service) logWarn(ctx context.Context, event string, attrs ...any) {
	if s.logger == nil {
		return
	}
	s.logger.WarnContext(ctx, event, append([]any{"event", event}, attrs...)...)
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan completes the span, recording any error.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func periodAttr(period id.PeriodKey) slog.Attr {
	return slog.String("period", period.String())
}
