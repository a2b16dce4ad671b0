package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/kizora/invoicer/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetup_AllDisabled(t *testing.T) {
	ctx := context.Background()

	tel, err := Setup(ctx, config.TelemetryConfig{ServiceName: "invoicer"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, tel.Tracer.IsEnabled())
	assert.False(t, tel.Meter.IsEnabled())
	assert.False(t, tel.Logs.IsEnabled())
	assert.False(t, tel.Profiler.IsEnabled())
	assert.False(t, tel.Tracer.IsSpanProfilesEnabled())
	require.NotNil(t, tel.Metrics)

	tel.Metrics.RecordRender(ctx, "standard", RenderModeLive, time.Millisecond)
	assert.NoError(t, tel.Shutdown(ctx))
}

func TestNewProfiler_Validation(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "invoicer"}, zap.NewNop())
	assert.ErrorContains(t, err, "server address is required")

	_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, zap.NewNop())
	assert.ErrorContains(t, err, "application name is required")

	p, err := NewProfiler(ProfilerConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewSampler(t *testing.T) {
	assert.Contains(t, newSampler(1).Description(), "AlwaysOn")
	assert.Contains(t, newSampler(0).Description(), "AlwaysOff")
	assert.Contains(t, newSampler(0.25).Description(), "TraceIDRatioBased")
}

func TestLoggerProvider_ZapCoreDisabled(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), LogsConfig{}, zap.NewNop())
	require.NoError(t, err)

	core := lp.ZapCore(zapcore.InfoLevel)
	assert.False(t, core.Enabled(zapcore.ErrorLevel))

	var nilProvider *LoggerProvider
	assert.False(t, nilProvider.IsEnabled())
}

func TestLevelFilterCore(t *testing.T) {
	inner, recorded := observer.New(zapcore.DebugLevel)
	core := &levelFilterCore{Core: inner, minLevel: zapcore.WarnLevel}
	l := zap.New(core).With(zap.String("k", "v"))

	l.Info("dropped")
	l.Warn("kept")

	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, "kept", recorded.All()[0].Message)
	assert.Equal(t, "v", recorded.All()[0].ContextMap()["k"])
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestInvoiceMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	ctx := context.Background()

	m, err := NewInvoiceMetrics(provider.Meter("test"))
	require.NoError(t, err)

	m.RecordRender(ctx, "modern", RenderModeLive, 2*time.Millisecond)
	m.RecordRender(ctx, "modern", RenderModeExport, 3*time.Millisecond)
	m.RecordExport(ctx, "modern", true)
	m.RecordImportGroup(ctx, "exact", 3)
	m.RecordImportGroup(ctx, "none", 2)

	got := collect(t, reader)
	assert.Equal(t, int64(2), sumOf(t, got["invoice_renders_total"]))
	assert.Equal(t, int64(1), sumOf(t, got["invoice_exports_total"]))
	assert.Equal(t, int64(2), sumOf(t, got["invoice_import_groups_total"]))
	assert.Equal(t, int64(3), sumOf(t, got["invoice_import_rows_total"]))

	hist, ok := got["invoice_render_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)
}

func TestInvoiceMetrics_NilIsNoop(t *testing.T) {
	var m *InvoiceMetrics
	ctx := context.Background()
	assert.NotPanics(t, func() {
		m.RecordRender(ctx, "standard", RenderModeLive, time.Millisecond)
		m.RecordExport(ctx, "standard", false)
		m.RecordImportGroup(ctx, "exact", 1)
	})

	_, err := NewInvoiceMetrics(nil)
	assert.ErrorIs(t, err, ErrMeterNil)
}
