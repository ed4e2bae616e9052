// Package myaudio implements the rolling audio capture core: a fixed-size
// ring buffer holding the most recent window of a live mono float32 stream,
// written from a real-time audio callback and snapshotted on demand.
//
// Concurrency model: exactly one producer (the audio callback) and one
// consumer (the export path). The producer never locks, blocks or allocates;
// it copies samples into the ring and then publishes the write cursor and
// filled flag as a single atomic word. The consumer reads that word, copies
// the valid region out in chronological order, and re-checks a write
// generation counter to discard copies that raced an in-flight write.
package myaudio
