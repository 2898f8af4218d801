package telemetry

import (
	"context"
	"time"
)

// Instrument ties tracing, metrics, and logging together around one
// outbound request.
//
// Contract:
//   - Concurrency: Start is safe for concurrent use; each returned done
//     function must be called exactly once.
//   - Errors: the error passed to done is recorded and never modified.
type Instrument struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewInstrument creates an Instrument from individual components.
func NewInstrument(tracer Tracer, metrics Metrics, logger Logger) *Instrument {
	return &Instrument{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// NewInstrumentFromObserver creates an Instrument from an Observer.
func NewInstrumentFromObserver(obs Observer) (*Instrument, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewInstrument(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// Noop returns an Instrument that records nothing.
func Noop() *Instrument {
	return NewInstrument(NewNoopTracer(), NoopMetrics(), NoopLogger())
}

// Start opens a span for the request and returns a done function that
// ends the span, records metrics, and logs the outcome.
func (i *Instrument) Start(ctx context.Context, meta RequestMeta) (context.Context, func(err error)) {
	ctx, span := i.tracer.StartSpan(ctx, meta)
	start := time.Now()

	done := func(err error) {
		duration := time.Since(start)

		i.tracer.EndSpan(span, err)
		i.metrics.RecordRequest(ctx, meta, duration, err)

		reqLogger := i.logger.WithRequest(meta)
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}

		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			reqLogger.Error(ctx, "request failed", fields...)
		} else {
			reqLogger.Debug(ctx, "request completed", fields...)
		}
	}

	return ctx, done
}

// Unauthorized records a session-invalid signal from the given source
// ("pipeline" or "workspace").
func (i *Instrument) Unauthorized(ctx context.Context, source string) {
	i.metrics.RecordUnauthorized(ctx, source)
	i.logger.Warn(ctx, "session invalid, forcing redirect", Field{Key: "source", Value: source})
}

// Logger exposes the underlying logger for non-request logging.
func (i *Instrument) Logger() Logger {
	return i.logger
}
