package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records request metrics for the session core.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordRequest records an outbound request with duration and error status.
	RecordRequest(ctx context.Context, meta RequestMeta, duration time.Duration, err error)

	// RecordUnauthorized records a session-invalid signal observed by
	// the pipeline or the workspace fetch.
	RecordUnauthorized(ctx context.Context, source string)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter             metric.Meter
	totalCount        metric.Int64Counter
	errorCount        metric.Int64Counter
	durationHist      metric.Float64Histogram
	unauthorizedCount metric.Int64Counter
}

// NewMetrics creates a Metrics instance with the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	totalCount, err := meter.Int64Counter(
		"session.request.total",
		metric.WithDescription("Total number of outbound requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"session.request.errors",
		metric.WithDescription("Total number of failed outbound requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"session.request.duration_ms",
		metric.WithDescription("Outbound request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	unauthorizedCount, err := meter.Int64Counter(
		"session.unauthorized.total",
		metric.WithDescription("Total number of session-invalid signals"),
		metric.WithUnit("{signal}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:             meter,
		totalCount:        totalCount,
		errorCount:        errorCount,
		durationHist:      durationHist,
		unauthorizedCount: unauthorizedCount,
	}, nil
}

// RecordRequest records metrics for one outbound request.
func (m *metricsImpl) RecordRequest(ctx context.Context, meta RequestMeta, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", meta.Method),
		attribute.String("http.path", meta.Path),
	}

	opt := metric.WithAttributes(attrs...)

	// Always increment total counter
	m.totalCount.Add(ctx, 1, opt)

	// Increment error counter on failure
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}

	// Record duration in milliseconds
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordUnauthorized records one session-invalid signal.
func (m *metricsImpl) RecordUnauthorized(ctx context.Context, source string) {
	m.unauthorizedCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", source),
	))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordRequest(ctx context.Context, meta RequestMeta, duration time.Duration, err error) {
}

func (m *noopMetrics) RecordUnauthorized(ctx context.Context, source string) {}

// NoopMetrics returns a metrics implementation that discards everything.
func NoopMetrics() Metrics { return &noopMetrics{} }
