package myaudio

import (
	"math"
)

// AudioLevelData describes the loudness of one callback chunk.
type AudioLevelData struct {
	Level    int  // 0-100
	Clipping bool // true when samples hit full scale
}

// clippingThreshold is just below full scale; float32 capture rarely lands on
// exactly 1.0 even when the converter saturated.
const clippingThreshold = 0.999

// CalculateAudioLevel computes the RMS of the chunk, converts it to decibels
// and scales the result to a 0-100 meter range.
func CalculateAudioLevel(samples []float32) AudioLevelData {
	if len(samples) == 0 {
		return AudioLevelData{Level: 0, Clipping: false}
	}

	var sum float64
	isClipping := false

	for _, s := range samples {
		f := float64(s)
		sum += f * f
		if f >= clippingThreshold || f <= -clippingThreshold {
			isClipping = true
		}
	}

	rms := math.Sqrt(sum / float64(len(samples)))

	// Full scale is 1.0 for float32 PCM.
	db := 20 * math.Log10(rms)

	// Scale decibels to 0-100, mapping the useful -60..-10 dB range.
	scaledLevel := (db + 60) * (100.0 / 50.0)

	// Clipping pins the meter at the top regardless of RMS.
	if isClipping {
		scaledLevel = math.Max(scaledLevel, 95)
	}

	if scaledLevel < 0 {
		scaledLevel = 0
	} else if scaledLevel > 100 {
		scaledLevel = 100
	}

	return AudioLevelData{
		Level:    int(scaledLevel),
		Clipping: isClipping,
	}
}
