package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records bus metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordTrigger records a Trigger call and whether it was queued.
	RecordTrigger(ctx context.Context, eventType string, queued bool)

	// RecordDispatch records one fan-out of an event to its listeners.
	RecordDispatch(ctx context.Context, eventType string, listeners int, duration time.Duration, err error)

	// RecordDrain records a backlog flush performed by Start.
	RecordDrain(ctx context.Context, drained int, duration time.Duration, err error)

	// RecordWarning records a fired not-started warning.
	RecordWarning(ctx context.Context)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	triggers        metric.Int64Counter
	dispatches      metric.Int64Counter
	dispatchLatency metric.Float64Histogram
	listenerErrors  metric.Int64Counter
	drainSize       metric.Int64Histogram
	drainLatency    metric.Float64Histogram
	warnings        metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("message")

	triggers, err := meter.Int64Counter("message.trigger.count",
		metric.WithDescription("Number of triggered events"),
	)
	if err != nil {
		return nil, err
	}

	dispatches, err := meter.Int64Counter("message.dispatch.count",
		metric.WithDescription("Number of event dispatches"),
	)
	if err != nil {
		return nil, err
	}

	dispatchLatency, err := meter.Float64Histogram("message.dispatch.latency_ms",
		metric.WithDescription("Time spent running all listeners for one event"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	listenerErrors, err := meter.Int64Counter("message.dispatch.errors",
		metric.WithDescription("Number of dispatches that returned a listener error"),
	)
	if err != nil {
		return nil, err
	}

	drainSize, err := meter.Int64Histogram("message.drain.size",
		metric.WithDescription("Number of queued events flushed by one Start"),
	)
	if err != nil {
		return nil, err
	}

	drainLatency, err := meter.Float64Histogram("message.drain.latency_ms",
		metric.WithDescription("Backlog flush latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	warnings, err := meter.Int64Counter("message.warning.count",
		metric.WithDescription("Number of not-started warnings emitted"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		triggers:        triggers,
		dispatches:      dispatches,
		dispatchLatency: dispatchLatency,
		listenerErrors:  listenerErrors,
		drainSize:       drainSize,
		drainLatency:    drainLatency,
		warnings:        warnings,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordTrigger records a Trigger call.
func (m *otelMetrics) RecordTrigger(ctx context.Context, eventType string, queued bool) {
	m.triggers.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_type", eventType),
		attribute.Bool("queued", queued),
	))
}

// RecordDispatch records one dispatch.
func (m *otelMetrics) RecordDispatch(ctx context.Context, eventType string, listeners int, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("event_type", eventType),
		attribute.Int("listeners", listeners),
	}

	m.dispatches.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.dispatchLatency.Record(ctx, Milliseconds(duration), metric.WithAttributes(attrs...))

	if err != nil {
		m.listenerErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordDrain records a backlog flush.
func (m *otelMetrics) RecordDrain(ctx context.Context, drained int, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
	}
	m.drainSize.Record(ctx, int64(drained), metric.WithAttributes(attrs...))
	m.drainLatency.Record(ctx, Milliseconds(duration), metric.WithAttributes(attrs...))
}

// RecordWarning records a fired warning.
func (m *otelMetrics) RecordWarning(ctx context.Context) {
	m.warnings.Add(ctx, 1)
}
