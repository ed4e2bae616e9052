package myaudio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateAudioLevelEmpty(t *testing.T) {
	t.Parallel()

	level := CalculateAudioLevel(nil)
	assert.Equal(t, 0, level.Level)
	assert.False(t, level.Clipping)
}

func TestCalculateAudioLevelSilence(t *testing.T) {
	t.Parallel()

	level := CalculateAudioLevel(make([]float32, 512))
	assert.Equal(t, 0, level.Level)
	assert.False(t, level.Clipping)
}

func TestCalculateAudioLevelFullScale(t *testing.T) {
	t.Parallel()

	// Full-scale square wave: clipping, meter pinned at the top.
	samples := make([]float32, 512)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = 1.0
		} else {
			samples[i] = -1.0
		}
	}

	level := CalculateAudioLevel(samples)
	assert.True(t, level.Clipping)
	assert.GreaterOrEqual(t, level.Level, 95)
}

func TestCalculateAudioLevelModerateSignal(t *testing.T) {
	t.Parallel()

	// -20 dB sine: audible but nowhere near clipping.
	samples := make([]float32, 4800)
	for i := range samples {
		samples[i] = 0.1 * float32(math.Sin(2*math.Pi*440*float64(i)/48000))
	}

	level := CalculateAudioLevel(samples)
	assert.False(t, level.Clipping)
	assert.Greater(t, level.Level, 0)
	assert.Less(t, level.Level, 95)
}

func TestCalculateAudioLevelQuietSignal(t *testing.T) {
	t.Parallel()

	// Below the -60 dB floor of the meter range.
	samples := make([]float32, 512)
	for i := range samples {
		samples[i] = 0.0001
	}

	level := CalculateAudioLevel(samples)
	assert.Equal(t, 0, level.Level)
	assert.False(t, level.Clipping)
}
