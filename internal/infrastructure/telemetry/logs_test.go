package telemetry

import (
	"context"
	"sync"
	"testing"

	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type exportedRecord struct {
	body     string
	severity otellog.Severity
	attrs    map[string]string
}

// recordingExporter keeps what the provider exports.
type recordingExporter struct {
	mu      sync.Mutex
	records []exportedRecord
}

func (e *recordingExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range records {
		rec := exportedRecord{body: r.Body().AsString(), severity: r.Severity(), attrs: map[string]string{}}
		r.WalkAttributes(func(kv otellog.KeyValue) bool {
			rec.attrs[kv.Key] = kv.Value.String()
			return true
		})
		e.records = append(e.records, rec)
	}
	return nil
}

func (e *recordingExporter) Shutdown(context.Context) error   { return nil }
func (e *recordingExporter) ForceFlush(context.Context) error { return nil }

func (e *recordingExporter) all() []exportedRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]exportedRecord(nil), e.records...)
}

func recordingProvider(exp *recordingExporter) *LoggerProvider {
	return &LoggerProvider{
		provider: sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exp))),
		logger:   zap.NewNop(),
		config:   LogsConfig{Enabled: true, ServiceName: "zuha-store"},
	}
}

func TestNewLoggerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	lp, err := NewLoggerProvider(ctx, LogsConfig{Enabled: false, ServiceName: "zuha-store"}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, lp.IsEnabled())
	assert.False(t, lp.ZapCore("zuha-store", zapcore.InfoLevel).Enabled(zapcore.ErrorLevel))
	assert.NoError(t, lp.ForceFlush(ctx))
	assert.NoError(t, lp.Shutdown(ctx))
}

func TestLoggerProvider_ZapCoreExports(t *testing.T) {
	ctx := context.Background()
	exp := &recordingExporter{}
	lp := recordingProvider(exp)
	t.Cleanup(func() { _ = lp.Shutdown(ctx) })

	log, err := logger.New(logger.Config{
		Level:  "debug",
		Format: "json",
		Output: "stderr",
		Cores:  []zapcore.Core{lp.ZapCore("zuha-store", zapcore.InfoLevel)},
	})
	require.NoError(t, err)

	log.Debug("below the export level")
	log.With(zap.String("cart_session", "s1")).Warn("Cart persist failed", zap.String("operation", "add_item"))
	require.NoError(t, lp.ForceFlush(ctx))

	records := exp.all()
	require.Len(t, records, 1)
	assert.Equal(t, "Cart persist failed", records[0].body)
	assert.Equal(t, otellog.SeverityWarn, records[0].severity)
	assert.Equal(t, "add_item", records[0].attrs["operation"])
	assert.Equal(t, "s1", records[0].attrs["cart_session"])
}

func TestLevelFilterCore(t *testing.T) {
	lp := recordingProvider(&recordingExporter{})
	core := lp.ZapCore("zuha-store", zapcore.WarnLevel)

	assert.False(t, core.Enabled(zapcore.InfoLevel))
	assert.True(t, core.Enabled(zapcore.WarnLevel))
	assert.True(t, core.With([]zapcore.Field{zap.String("k", "v")}).Enabled(zapcore.ErrorLevel))
	assert.Nil(t, core.Check(zapcore.Entry{Level: zapcore.InfoLevel}, nil))
}
