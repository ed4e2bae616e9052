package myaudio

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/replay-go/internal/errors"
)

// BitDepth of exported WAV clips.
const BitDepth = 16

// ClipFileName builds a timestamped clip path inside dir, e.g.
// clips/replay_20240131_154210.wav.
func ClipFileName(dir, ext string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("replay_%s.%s", t.Format("20060102_150405"), ext))
}

// SaveClipToWAV writes the clip as a 16-bit mono WAV file at filePath,
// creating the directory structure if needed.
func SaveClipToWAV(filePath string, clip Clip) error {
	if len(clip.PCM) == 0 {
		return ErrCaptureBufferEmpty
	}
	if clip.SampleRate <= 0 {
		return errors.Newf("invalid sample rate: %d Hz, must be greater than 0", clip.SampleRate).
			Component("myaudio").
			Category(errors.CategoryValidation).
			Context("operation", "save_wav").
			Build()
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return errors.Newf("failed to create clip directory: %v", err).
			Component("myaudio").
			Category(errors.CategoryFileIO).
			Context("operation", "save_wav").
			Build()
	}

	outFile, err := os.Create(filePath)
	if err != nil {
		return errors.Newf("failed to create clip file: %v", err).
			Component("myaudio").
			Category(errors.CategoryFileIO).
			Context("operation", "save_wav").
			Build()
	}
	defer outFile.Close() //nolint:errcheck // close error surfaced via encoder Close

	enc := wav.NewEncoder(outFile, clip.SampleRate, BitDepth, CaptureChannels, 1)

	buf := &audio.IntBuffer{
		Data:   floatToIntSamples(clip.PCM),
		Format: &audio.Format{SampleRate: clip.SampleRate, NumChannels: CaptureChannels},
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write to WAV encoder: %w", err)
	}

	// Close finalizes the WAV header.
	return enc.Close()
}

// floatToIntSamples converts float32 PCM in [-1, 1] to 16-bit integer
// samples, clamping out-of-range values.
func floatToIntSamples(pcm []float32) []int {
	samples := make([]int, len(pcm))
	for i, f := range pcm {
		s := int(f * 32767)
		if s > 32767 {
			s = 32767
		} else if s < -32768 {
			s = -32768
		}
		samples[i] = s
	}
	return samples
}
