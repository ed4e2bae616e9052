// Package observability provides Prometheus metrics for the rolling capture
// pipeline and the HTTP endpoint that exposes them.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CaptureMetrics contains Prometheus metrics for capture and export operations.
type CaptureMetrics struct {
	registry *prometheus.Registry

	chunksWrittenTotal   prometheus.Counter
	samplesWrittenTotal  prometheus.Counter
	snapshotsTotal       *prometheus.CounterVec
	snapshotDuration     prometheus.Histogram
	bufferFillRatioGauge prometheus.Gauge
	windowSecondsGauge   prometheus.Gauge
	exportedClipsTotal   *prometheus.CounterVec
	exportedSecondsTotal prometheus.Counter
	deviceRestartsTotal  prometheus.Counter
}

// NewCaptureMetrics creates capture metrics and registers them on the given
// registry.
func NewCaptureMetrics(registry *prometheus.Registry) (*CaptureMetrics, error) {
	m := &CaptureMetrics{
		registry: registry,
		chunksWrittenTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "replay_capture_chunks_written_total",
			Help: "Total number of audio chunks written to the ring buffer",
		}),
		samplesWrittenTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "replay_capture_samples_written_total",
			Help: "Total number of audio samples written to the ring buffer",
		}),
		snapshotsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "replay_snapshots_total",
			Help: "Total number of snapshot extractions",
		}, []string{"status"}), // status: success, empty, error
		snapshotDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "replay_snapshot_duration_seconds",
			Help:    "Time taken to extract and linearize a snapshot",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8), // 0.1ms to ~1.6s
		}),
		bufferFillRatioGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "replay_buffer_fill_ratio",
			Help: "Fraction of the capture window currently buffered, 0 to 1",
		}),
		windowSecondsGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "replay_window_seconds",
			Help: "Configured trailing window length in seconds",
		}),
		exportedClipsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "replay_exported_clips_total",
			Help: "Total number of clip files written",
		}, []string{"status"}), // status: success, error
		exportedSecondsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "replay_exported_seconds_total",
			Help: "Total seconds of audio exported to clip files",
		}),
		deviceRestartsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "replay_device_restarts_total",
			Help: "Total number of capture device restarts",
		}),
	}

	collectors := []prometheus.Collector{
		m.chunksWrittenTotal,
		m.samplesWrittenTotal,
		m.snapshotsTotal,
		m.snapshotDuration,
		m.bufferFillRatioGauge,
		m.windowSecondsGauge,
		m.exportedClipsTotal,
		m.exportedSecondsTotal,
		m.deviceRestartsTotal,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// RecordChunkWritten counts one producer chunk of the given sample count.
// Bounded atomic adds only, safe to call from the audio callback.
func (m *CaptureMetrics) RecordChunkWritten(sampleCount int) {
	m.chunksWrittenTotal.Inc()
	m.samplesWrittenTotal.Add(float64(sampleCount))
}

// RecordSnapshot counts a snapshot extraction with its outcome and duration.
func (m *CaptureMetrics) RecordSnapshot(status string, seconds float64) {
	m.snapshotsTotal.WithLabelValues(status).Inc()
	m.snapshotDuration.Observe(seconds)
}

// UpdateBufferFill sets the current fill ratio of the capture window.
func (m *CaptureMetrics) UpdateBufferFill(ratio float64) {
	m.bufferFillRatioGauge.Set(ratio)
}

// UpdateWindowSeconds sets the configured window length gauge.
func (m *CaptureMetrics) UpdateWindowSeconds(seconds float64) {
	m.windowSecondsGauge.Set(seconds)
}

// RecordExport counts a clip export and, on success, the exported duration.
func (m *CaptureMetrics) RecordExport(status string, seconds float64) {
	m.exportedClipsTotal.WithLabelValues(status).Inc()
	if status == "success" {
		m.exportedSecondsTotal.Add(seconds)
	}
}

// RecordDeviceRestart counts a capture device restart.
func (m *CaptureMetrics) RecordDeviceRestart() {
	m.deviceRestartsTotal.Inc()
}

// Registry returns the registry the metrics are registered on.
func (m *CaptureMetrics) Registry() *prometheus.Registry {
	return m.registry
}
