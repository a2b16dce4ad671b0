package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return recorder
}

func TestStartServiceSpan(t *testing.T) {
	recorder := withRecorder(t)

	ctx, span := StartServiceSpan(context.Background(), "invoice", "export",
		attribute.String(SpanAttrProjectID, "p-1"))
	assert.NotEmpty(t, GetTraceID(ctx))
	RecordError(span, errors.New("render failed"))
	RecordError(span, nil)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "invoice.export", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String(SpanAttrProjectID, "p-1"))
	assert.Len(t, spans[0].Events(), 1)
}

func TestGetTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}

type tracedRow struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	return db
}

func TestDBTracingPlugin_Disabled(t *testing.T) {
	db := openTestDB(t)
	p := NewDBTracingPlugin(DBTracingConfig{}, nil)

	require.NoError(t, p.RegisterOtelGorm(db))
	assert.Equal(t, 200*time.Millisecond, p.config.SlowQueryThresh)
}

func TestDBTracingPlugin_AnnotatesSpans(t *testing.T) {
	recorder := withRecorder(t)
	db := openTestDB(t)

	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.DBSystem = "sqlite"
	cfg.SlowQueryThresh = time.Nanosecond
	require.NoError(t, NewDBTracingPlugin(cfg, zap.NewNop()).RegisterOtelGorm(db))

	ctx, parent := otel.Tracer("test").Start(context.Background(), "request")
	require.NoError(t, db.WithContext(ctx).Create(&tracedRow{Name: "Asha"}).Error)
	var missing tracedRow
	err := db.WithContext(ctx).First(&missing, 999).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	parent.End()

	var dbSpans []sdktrace.ReadOnlySpan
	for _, s := range recorder.Ended() {
		if s.Name() != "request" {
			dbSpans = append(dbSpans, s)
		}
	}
	require.NotEmpty(t, dbSpans)

	create := dbSpans[0]
	assert.Contains(t, create.Attributes(), attribute.Bool("db.slow_query", true))
	assert.Contains(t, create.Attributes(), attribute.Int64("db.rows_affected", 1))
	for _, s := range dbSpans {
		assert.NotEqual(t, codes.Error, s.Status().Code, "record not found must not mark %s failed", s.Name())
	}
}

func TestDBTracingPlugin_DoubleRegistrationFails(t *testing.T) {
	db := openTestDB(t)
	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	p := NewDBTracingPlugin(cfg, zap.NewNop())

	require.NoError(t, p.RegisterOtelGorm(db))
	assert.Error(t, p.RegisterOtelGorm(db))
}
