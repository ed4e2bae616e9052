// this file defines the ring buffer which holds the rolling capture window
package myaudio

import (
	"runtime"
	"sync/atomic"
)

// filledBit marks, in the packed state word, that the write cursor has
// wrapped at least once and the buffer holds a full window of valid samples.
const filledBit = 1 << 63

// RingBuffer is a fixed-capacity circular buffer of mono float32 samples
// shared between one real-time producer and one consumer.
//
// The write cursor and the filled flag are packed into a single atomic word
// so the consumer always observes them together; a cursor published without
// its matching flag could otherwise misorder the snapshot around the first
// wrap. The producer stores the word only after all sample copies of a chunk
// have completed, so an observed cursor never points past unwritten data.
// writeSeq is incremented before and after every write (odd while a write is
// in flight); Snapshot retries its copy until the sequence is stable, which
// keeps it from returning samples the producer was overwriting mid-copy.
type RingBuffer struct {
	data     []float32
	state    atomic.Uint64 // packed write cursor + filled flag
	writeSeq atomic.Uint64 // write generation, odd while a write is in flight
}

// NewRingBuffer creates a ring buffer holding capacity samples. Capacity is
// raised to 1 if a smaller value is requested.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer{
		data: make([]float32, capacity),
	}
}

func packState(cursor int, filled bool) uint64 {
	s := uint64(cursor)
	if filled {
		s |= filledBit
	}
	return s
}

func unpackState(s uint64) (cursor int, filled bool) {
	return int(s &^ filledBit), s&filledBit != 0
}

// Capacity returns the number of samples the buffer can hold.
func (rb *RingBuffer) Capacity() int {
	return len(rb.data)
}

// WriteIndex returns the current write cursor position.
func (rb *RingBuffer) WriteIndex() int {
	cursor, _ := unpackState(rb.state.Load())
	return cursor
}

// Filled reports whether the write cursor has wrapped at least once.
func (rb *RingBuffer) Filled() bool {
	_, filled := unpackState(rb.state.Load())
	return filled
}

// Len returns the number of valid samples currently buffered.
func (rb *RingBuffer) Len() int {
	cursor, filled := unpackState(rb.state.Load())
	if filled {
		return len(rb.data)
	}
	return cursor
}

// Write copies samples into the buffer at the current write cursor,
// overwriting the oldest data once the buffer has filled.
//
// Producer-only. It never blocks, never allocates and performs at most two
// copies, so its cost is bounded by the audio source's chunk size. Empty
// input is dropped silently; input longer than the whole buffer is clamped
// to its trailing capacity samples, since the rest could never survive the
// write anyway.
func (rb *RingBuffer) Write(samples []float32) {
	n := len(samples)
	if n == 0 {
		return
	}
	capacity := len(rb.data)
	if n > capacity {
		samples = samples[n-capacity:]
		n = capacity
	}

	rb.writeSeq.Add(1) // write in flight

	cursor, filled := unpackState(rb.state.Load())
	if capacity-cursor >= n {
		// Chunk fits before the end of storage.
		copy(rb.data[cursor:], samples)
		cursor += n
		if cursor == capacity {
			cursor = 0
			filled = true
		}
	} else {
		// Split copy: fill to the end, continue from the start.
		first := capacity - cursor
		copy(rb.data[cursor:], samples[:first])
		copy(rb.data, samples[first:])
		cursor = n - first
		filled = true
	}

	// Publish cursor and flag only after the copies so a concurrent
	// Snapshot never sees a cursor ahead of the data it describes.
	rb.state.Store(packState(cursor, filled))
	rb.writeSeq.Add(1) // write complete
}

// Snapshot returns a copy of the buffered samples in chronological order:
// oldest first, newest last. Consumer-only; the producer may keep writing
// concurrently, the returned slice never aliases live storage.
//
// The sample copies below read storage the producer may be writing at the
// same time; any copy that overlapped a write fails the sequence re-check
// and is discarded, so a returned snapshot is never torn. The race detector
// reports these overlapping accesses, which is expected.
//
// Returns ErrCaptureBufferEmpty when no samples have been written yet.
func (rb *RingBuffer) Snapshot() ([]float32, error) {
	out := make([]float32, len(rb.data))

	for {
		seq := rb.writeSeq.Load()
		if seq&1 != 0 {
			// A write is in flight, let the producer finish.
			runtime.Gosched()
			continue
		}

		cursor, filled := unpackState(rb.state.Load())

		var n int
		if filled {
			// Oldest sample sits at the cursor; linearize the two segments.
			n = copy(out, rb.data[cursor:])
			n += copy(out[n:], rb.data[:cursor])
		} else {
			n = copy(out, rb.data[:cursor])
		}

		if rb.writeSeq.Load() != seq {
			// A write raced the copy, the data may be torn. Retry.
			continue
		}

		if n == 0 {
			return nil, ErrCaptureBufferEmpty
		}
		return out[:n], nil
	}
}
