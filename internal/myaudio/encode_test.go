package myaudio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipFileName(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 1, 31, 15, 42, 10, 0, time.UTC)
	got := ClipFileName("clips", "wav", ts)
	assert.Equal(t, filepath.Join("clips", "replay_20240131_154210.wav"), got)
}

func TestSaveClipToWAVRoundTrip(t *testing.T) {
	t.Parallel()

	clip := Clip{
		PCM:        []float32{0, 0.5, -0.5, 1.0, -1.0},
		SampleRate: 8000,
		Duration:   625 * time.Microsecond,
	}

	path := filepath.Join(t.TempDir(), "nested", "clip.wav")
	require.NoError(t, SaveClipToWAV(path, clip), "missing directories are created")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	decoder := wav.NewDecoder(f)
	buf, err := decoder.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, 8000, buf.Format.SampleRate)
	assert.Equal(t, 1, buf.Format.NumChannels)
	require.Len(t, buf.Data, len(clip.PCM))

	want := []int{0, 16383, -16383, 32767, -32767}
	assert.Equal(t, want, buf.Data)
}

func TestSaveClipToWAVEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "clip.wav")
	err := SaveClipToWAV(path, Clip{SampleRate: 8000})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCaptureBufferEmpty)
	assert.NoFileExists(t, path)
}

func TestSaveClipToWAVInvalidSampleRate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "clip.wav")
	err := SaveClipToWAV(path, Clip{PCM: []float32{0.1}, SampleRate: 0})
	assert.Error(t, err)
}

func TestReadAudioInfoWAV(t *testing.T) {
	t.Parallel()

	clip := Clip{
		PCM:        seq(1, 4000),
		SampleRate: 8000,
	}
	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, SaveClipToWAV(path, clip))

	info, err := ReadAudioInfo(path)
	require.NoError(t, err)
	assert.Equal(t, 8000, info.SampleRate)
	assert.Equal(t, 1, info.NumChannels)
	assert.Equal(t, BitDepth, info.BitDepth)
	assert.GreaterOrEqual(t, info.TotalSamples, 4000, "sample count derived from file size includes header slack")
}

func TestReadAudioInfoUnsupportedFormat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "clip.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not audio"), 0o644))

	_, err := ReadAudioInfo(path)
	assert.Error(t, err)
}

func TestReadAudioInfoMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ReadAudioInfo(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}
