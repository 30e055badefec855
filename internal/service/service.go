// Package service holds the employee and vaccine use cases. It validates
// input, resolves employee identifiers, reads the vaccine catalog through the
// cache and builds the anonymized views returned to callers.
package service

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-vaccination-registry/internal/metrics"
)

const tracerName = "github.com/goliatone/go-vaccination-registry/internal/service"

// deps are the ambient collaborators shared by both services.
type deps struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*deps)

func WithLogger(logger *slog.Logger) Option {
	return func(d *deps) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *deps) {
		d.metrics = m
	}
}

// WithTracer replaces the tracer taken from the global provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(d *deps) {
		if tracer != nil {
			d.tracer = tracer
		}
	}
}

func newDeps(opts []Option) deps {
	d := deps{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func (d deps) start(ctx context.Context, name string) (context.Context, trace.Span) {
	return d.tracer.Start(ctx, name)
}

// end closes span, marking it failed when err is set.
func end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, TextCode(err))
	}
	span.End()
}

// internal logs err with its operation and wraps it as an Internal failure.
func (d deps) internal(ctx context.Context, err error, op string) error {
	d.logger.ErrorContext(ctx, "operation failed", "op", op, "error", err)
	return wrapInternal(err, op+" failed")
}
