package observe

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// otelRecorder implements Recorder using OpenTelemetry.
type otelRecorder struct {
	builds       metric.Int64Counter
	buildErrors  metric.Int64Counter
	buildLatency metric.Float64Histogram
	memoLookups  metric.Int64Counter
}

var (
	defaultRecorder     *otelRecorder
	defaultRecorderOnce sync.Once
	defaultRecorderErr  error
)

// getDefaultRecorder returns the default OTel recorder instance.
// Lazily initializes the instruments on first call.
func getDefaultRecorder() (*otelRecorder, error) {
	defaultRecorderOnce.Do(func() {
		defaultRecorder, defaultRecorderErr = newOtelRecorder()
	})
	return defaultRecorder, defaultRecorderErr
}

// newOtelRecorder creates the instruments on the global meter provider.
func newOtelRecorder() (*otelRecorder, error) {
	meter := otel.Meter("sdi")

	builds, err := meter.Int64Counter("sdi.builds",
		metric.WithDescription("Number of producer invocations"),
	)
	if err != nil {
		return nil, err
	}

	buildErrors, err := meter.Int64Counter("sdi.build.errors",
		metric.WithDescription("Number of failed producer invocations"),
	)
	if err != nil {
		return nil, err
	}

	buildLatency, err := meter.Float64Histogram("sdi.build.latency_ms",
		metric.WithDescription("Producer latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	memoLookups, err := meter.Int64Counter("sdi.memo.lookups",
		metric.WithDescription("Number of memoized-cache lookups"),
	)
	if err != nil {
		return nil, err
	}

	return &otelRecorder{
		builds:       builds,
		buildErrors:  buildErrors,
		buildLatency: buildLatency,
		memoLookups:  memoLookups,
	}, nil
}

// NewRecorder returns a Recorder backed by OpenTelemetry.
// If instrument creation fails, it returns the no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewRecorder() Recorder {
	r, err := getDefaultRecorder()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return Noop{}
	}
	return r
}

// RecordBuild records one producer invocation.
func (r *otelRecorder) RecordBuild(ctx context.Context, key string, source Source, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("key", key),
		attribute.String("source", string(source)),
	}

	r.builds.Add(ctx, 1, metric.WithAttributes(attrs...))
	r.buildLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		r.buildErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordMemo records one memoized-cache lookup.
func (r *otelRecorder) RecordMemo(ctx context.Context, key string, hit bool) {
	attrs := []attribute.KeyValue{
		attribute.String("key", key),
		attribute.Bool("hit", hit),
	}
	r.memoLookups.Add(ctx, 1, metric.WithAttributes(attrs...))
}
