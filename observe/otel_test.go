package observe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest installs a manual-reader meter provider and returns the
// reader plus a cleanup function restoring the previous provider.
func setupMetricsTest(t *testing.T) (*sdkmetric.ManualReader, func()) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	original := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	cleanup := func() {
		otel.SetMeterProvider(original)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	}
	return reader, cleanup
}

// collectMetrics collects all metrics from the reader.
func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)
	return &rm
}

// findMetric finds a metric by name in the collected data.
func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumInt64 totals all data points of an int64 sum metric.
func sumInt64(t *testing.T, m *metricdata.Metrics) int64 {
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

// TestNewOtelRecorder_CreatesInstruments verifies instrument creation against
// a real SDK meter provider.
func TestNewOtelRecorder_CreatesInstruments(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	r, err := newOtelRecorder()
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.NotNil(t, r.builds)
	assert.NotNil(t, r.buildErrors)
	assert.NotNil(t, r.buildLatency)
	assert.NotNil(t, r.memoLookups)
}

// TestRecordBuild_Success verifies a successful build increments the build
// counter and records latency, without touching the error counter.
func TestRecordBuild_Success(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	r, err := newOtelRecorder()
	require.NoError(t, err)

	r.RecordBuild(context.Background(), "db", SourceRoot, 5*time.Millisecond, nil)

	rm := collectMetrics(t, reader)

	builds := findMetric(rm, "sdi.builds")
	require.NotNil(t, builds)
	assert.Equal(t, int64(1), sumInt64(t, builds))

	latency := findMetric(rm, "sdi.build.latency_ms")
	require.NotNil(t, latency)

	assert.Nil(t, findMetric(rm, "sdi.build.errors"))
}

// TestRecordBuild_Error verifies a failed build also increments the error
// counter.
func TestRecordBuild_Error(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	r, err := newOtelRecorder()
	require.NoError(t, err)

	r.RecordBuild(context.Background(), "db", SourceOverride, time.Millisecond, errors.New("boom"))

	rm := collectMetrics(t, reader)

	buildErrors := findMetric(rm, "sdi.build.errors")
	require.NotNil(t, buildErrors)
	assert.Equal(t, int64(1), sumInt64(t, buildErrors))
}

// TestRecordMemo verifies memo lookups are counted.
func TestRecordMemo(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	r, err := newOtelRecorder()
	require.NoError(t, err)

	r.RecordMemo(context.Background(), "db", true)
	r.RecordMemo(context.Background(), "db", false)

	rm := collectMetrics(t, reader)

	lookups := findMetric(rm, "sdi.memo.lookups")
	require.NotNil(t, lookups)
	assert.Equal(t, int64(2), sumInt64(t, lookups))
}

// TestNoop_ImplementsRecorder verifies the no-op recorder satisfies the
// interface and does nothing observable.
func TestNoop_ImplementsRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder = Noop{}
	r.RecordBuild(context.Background(), "k", SourceRoot, 0, nil)
	r.RecordMemo(context.Background(), "k", false)
}
