package myaudio

import (
	"sync/atomic"

	"github.com/tphakala/replay-go/internal/observability"
)

// captureMetrics is held behind an atomic pointer instead of a mutex because
// the producer path reads it inside the audio callback, which must not lock.
var captureMetrics atomic.Pointer[observability.CaptureMetrics]

// SetCaptureMetrics installs the metrics sink for capture operations.
// Pass nil to disable metrics collection.
func SetCaptureMetrics(m *observability.CaptureMetrics) {
	captureMetrics.Store(m)
}

func getCaptureMetrics() *observability.CaptureMetrics {
	return captureMetrics.Load()
}
