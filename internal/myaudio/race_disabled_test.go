//go:build !race

package myaudio

const raceDetectorEnabled = false
