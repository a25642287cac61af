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

// MetricsRecorder records substitution metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRun records one completed or failed substitution.
	RecordRun(ctx context.Context, success bool, inputBytes, references, undefined int, duration time.Duration)
}

type otelMetrics struct {
	runs       metric.Int64Counter
	latency    metric.Float64Histogram
	inputBytes metric.Int64Histogram
	references metric.Int64Counter
	undefined  metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("varsubst")

	runs, err := meter.Int64Counter("varsubst.runs",
		metric.WithDescription("Number of substitution runs"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("varsubst.latency_ms",
		metric.WithDescription("Substitution latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	inputBytes, err := meter.Int64Histogram("varsubst.input_bytes",
		metric.WithDescription("Template size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	references, err := meter.Int64Counter("varsubst.references",
		metric.WithDescription("Number of variable references scanned"),
	)
	if err != nil {
		return nil, err
	}

	undefined, err := meter.Int64Counter("varsubst.undefined",
		metric.WithDescription("Number of distinct undefined names per run"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		runs:       runs,
		latency:    latency,
		inputBytes: inputBytes,
		references: references,
		undefined:  undefined,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function.
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordRun records a substitution run.
func (m *otelMetrics) RecordRun(ctx context.Context, success bool, inputBytes, references, undefined int, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.Bool("success", success))

	m.runs.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	m.inputBytes.Record(ctx, int64(inputBytes), attrs)
	m.references.Add(ctx, int64(references), attrs)
	m.undefined.Add(ctx, int64(undefined), attrs)
}
