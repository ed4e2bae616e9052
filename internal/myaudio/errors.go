package myaudio

import (
	"github.com/tphakala/replay-go/internal/errors"
)

// Error sentinel values for common myaudio errors
var (
	// ErrCaptureAlreadyRunning is returned when Start is called on a capture
	// session that is already attached to an audio source
	ErrCaptureAlreadyRunning = errors.Newf("capture is already running").
		Component("myaudio").
		Category(errors.CategoryState).
		Context("operation", "start_capture").
		Build()

	// ErrCaptureBufferEmpty is returned when a snapshot is requested before
	// any audio has been written to the buffer
	ErrCaptureBufferEmpty = errors.Newf("capture buffer holds no samples").
		Component("myaudio").
		Category(errors.CategoryBuffer).
		Context("operation", "snapshot").
		Build()

	// ErrCaptureBufferTooLarge is returned when the requested window would
	// require a pathologically large allocation
	ErrCaptureBufferTooLarge = errors.Newf("requested capture buffer size too large").
		Component("myaudio").
		Category(errors.CategoryLimit).
		Context("operation", "allocate_buffer").
		Build()
)
