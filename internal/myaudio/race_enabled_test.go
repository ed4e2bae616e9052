//go:build race

package myaudio

const raceDetectorEnabled = true
