package myaudio

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tphakala/replay-go/internal/errors"
)

// minWindowSeconds is the floor for the trailing window length.
const minWindowSeconds = 1.0

// maxCaptureSamples caps buffer allocations at 1 GiB of float32 samples.
const maxCaptureSamples = 1 << 28

// Clip is a chronologically ordered copy of the capture window, the handoff
// to the encoder.
type Clip struct {
	PCM        []float32
	SampleRate int
	Duration   time.Duration
}

// RollingCapture owns the ring buffer lifecycle: start/stop of the producer,
// window resizing, and snapshot export.
//
// Control-path methods (Start, Stop, SetWindowSeconds, ExportSnapshot) are
// safe to call from multiple non-real-time goroutines; they share a mutex
// the producer path never touches. ProcessAudio is the real-time producer
// entry point and must be driven by a single audio callback at a time, which
// the audio source guarantees.
type RollingCapture struct {
	mu            sync.Mutex
	buf           atomic.Pointer[RingBuffer]
	windowSeconds float64
	pendingWindow float64 // deferred window change, 0 when none
	sampleRate    int
	running       bool
}

// NewRollingCapture creates a capture session with the given trailing window
// length. Values below one second are clamped. The ring buffer itself is not
// allocated until Start, when the source's sample rate is known.
func NewRollingCapture(windowSeconds float64) *RollingCapture {
	return &RollingCapture{
		windowSeconds: clampWindow(windowSeconds),
	}
}

func clampWindow(sec float64) float64 {
	if sec < minWindowSeconds {
		return minWindowSeconds
	}
	return sec
}

// Start allocates a fresh ring buffer sized for the source's sample rate and
// marks the session running. Any previously buffered audio is discarded. A
// pending window change recorded while running is applied here.
//
// Returns ErrCaptureAlreadyRunning if the session is already running and
// ErrCaptureBufferTooLarge if the window would require a pathological
// allocation; in the latter case no usable buffer exists afterwards.
func (rc *RollingCapture) Start(sourceSampleRate int) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.running {
		return ErrCaptureAlreadyRunning
	}
	if sourceSampleRate <= 0 {
		return errors.Newf("invalid sample rate: %d Hz, must be greater than 0", sourceSampleRate).
			Component("myaudio").
			Category(errors.CategoryValidation).
			Context("operation", "start_capture").
			Build()
	}

	if rc.pendingWindow > 0 {
		rc.windowSeconds = rc.pendingWindow
		rc.pendingWindow = 0
	}

	capacity := int(math.Round(float64(sourceSampleRate) * rc.windowSeconds))
	if capacity < 1 {
		capacity = 1
	}
	if capacity > maxCaptureSamples {
		rc.buf.Store(nil)
		return ErrCaptureBufferTooLarge
	}

	rc.buf.Store(NewRingBuffer(capacity))
	rc.sampleRate = sourceSampleRate
	rc.running = true
	return nil
}

// Stop marks the session stopped. Idempotent. The buffer contents are
// retained so a snapshot can still be exported after stopping. The caller is
// responsible for detaching the audio source before the next Start.
func (rc *RollingCapture) Stop() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.running = false
}

// IsRunning reports whether the producer is currently attached.
func (rc *RollingCapture) IsRunning() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.running
}

// SampleRate returns the sample rate of the active or most recent session,
// 0 before the first Start.
func (rc *RollingCapture) SampleRate() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.sampleRate
}

// WindowSeconds returns the effective trailing window length.
func (rc *RollingCapture) WindowSeconds() float64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.windowSeconds
}

// PendingWindowSeconds returns a deferred window change waiting for the next
// Start, 0 when none is pending.
func (rc *RollingCapture) PendingWindowSeconds() float64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.pendingWindow
}

// SetWindowSeconds changes the trailing window length, clamped to a minimum
// of one second. While stopped the ring buffer is reallocated immediately and
// prior contents are discarded. While running the live buffer is left alone
// to avoid racing the producer; the value is recorded and applied at the next
// Start, and deferred returns true so callers can surface that.
func (rc *RollingCapture) SetWindowSeconds(sec float64) (deferred bool) {
	sec = clampWindow(sec)

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.running {
		rc.pendingWindow = sec
		return true
	}

	rc.windowSeconds = sec
	rc.pendingWindow = 0
	if rc.sampleRate > 0 {
		capacity := int(math.Round(float64(rc.sampleRate) * rc.windowSeconds))
		if capacity < 1 {
			capacity = 1
		}
		if capacity > maxCaptureSamples {
			// No usable buffer until a Start with a sane window succeeds.
			rc.buf.Store(nil)
		} else {
			rc.buf.Store(NewRingBuffer(capacity))
		}
	}
	return false
}

// ProcessAudio is the producer entry point: the audio source delivers each
// converted mono float32 chunk here. No locks, no allocation, no error
// channel; chunks arriving while no buffer exists are dropped.
func (rc *RollingCapture) ProcessAudio(samples []float32) {
	buf := rc.buf.Load()
	if buf == nil {
		return
	}
	buf.Write(samples)
}

// BufferFill returns the fraction of the capture window currently buffered,
// in [0, 1]. Returns 0 when no buffer has been allocated yet.
func (rc *RollingCapture) BufferFill() float64 {
	buf := rc.buf.Load()
	if buf == nil {
		return 0
	}
	return float64(buf.Len()) / float64(buf.Capacity())
}

// ExportSnapshot linearizes the buffered window into a Clip for the encoder.
// Callable whether running or stopped; returns ErrCaptureBufferEmpty when
// nothing has been captured yet.
func (rc *RollingCapture) ExportSnapshot() (Clip, error) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	start := time.Now()

	buf := rc.buf.Load()
	if buf == nil {
		if m := getCaptureMetrics(); m != nil {
			m.RecordSnapshot("empty", time.Since(start).Seconds())
		}
		return Clip{}, ErrCaptureBufferEmpty
	}

	samples, err := buf.Snapshot()
	if err != nil {
		if m := getCaptureMetrics(); m != nil {
			m.RecordSnapshot("empty", time.Since(start).Seconds())
		}
		return Clip{}, err
	}

	if m := getCaptureMetrics(); m != nil {
		m.RecordSnapshot("success", time.Since(start).Seconds())
	}

	return Clip{
		PCM:        samples,
		SampleRate: rc.sampleRate,
		Duration:   time.Duration(float64(len(samples)) / float64(rc.sampleRate) * float64(time.Second)),
	}, nil
}
