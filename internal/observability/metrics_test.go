package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/replay-go/internal/conf"
)

func TestNewCaptureMetricsRegisters(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	m, err := NewCaptureMetrics(registry)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Same(t, registry, m.Registry())

	// Registering the same metric names twice must fail.
	_, err = NewCaptureMetrics(registry)
	assert.Error(t, err)
}

func TestCaptureMetricsRecording(t *testing.T) {
	t.Parallel()

	m, err := NewCaptureMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.RecordChunkWritten(160)
	m.RecordChunkWritten(160)
	assert.InDelta(t, 2, testutil.ToFloat64(m.chunksWrittenTotal), 0.001)
	assert.InDelta(t, 320, testutil.ToFloat64(m.samplesWrittenTotal), 0.001)

	m.RecordSnapshot("success", 0.001)
	m.RecordSnapshot("empty", 0.0001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.snapshotsTotal.WithLabelValues("success")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.snapshotsTotal.WithLabelValues("empty")), 0.001)

	m.UpdateBufferFill(0.75)
	assert.InDelta(t, 0.75, testutil.ToFloat64(m.bufferFillRatioGauge), 0.001)

	m.UpdateWindowSeconds(30)
	assert.InDelta(t, 30, testutil.ToFloat64(m.windowSecondsGauge), 0.001)

	m.RecordExport("success", 12.5)
	m.RecordExport("error", 0)
	assert.InDelta(t, 12.5, testutil.ToFloat64(m.exportedSecondsTotal), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.exportedClipsTotal.WithLabelValues("success")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.exportedClipsTotal.WithLabelValues("error")), 0.001)

	m.RecordDeviceRestart()
	assert.InDelta(t, 1, testutil.ToFloat64(m.deviceRestartsTotal), 0.001)
}

func TestNewEndpointRequiresEnabled(t *testing.T) {
	t.Parallel()

	m, err := NewCaptureMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	settings := &conf.Settings{}
	_, err = NewEndpoint(settings, m)
	assert.Error(t, err, "metrics disabled in settings must be rejected")

	settings.Metrics.Enabled = true
	settings.Metrics.Addr = ":0"
	endpoint, err := NewEndpoint(settings, m)
	require.NoError(t, err)
	assert.Equal(t, ":0", endpoint.listenAddress)
}
