package myaudio

import (
	"fmt"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"github.com/gen2brain/malgo"

	"github.com/tphakala/replay-go/internal/conf"
)

// CaptureChannels is fixed to mono; the capture core stores a single channel.
const CaptureChannels = 1

// CaptureAudio opens the configured capture device and feeds every delivered
// chunk into the rolling capture session until quitChan is closed. It runs in
// its own goroutine and signals wg when done. A send on restartChan from
// inside means the device died and could not be revived; the caller decides
// whether to call CaptureAudio again.
func CaptureAudio(settings *conf.Settings, rc *RollingCapture, wg *sync.WaitGroup, quitChan, restartChan chan struct{}, audioLevelChan chan AudioLevelData) {
	wg.Add(1)
	go captureAudioMalgo(settings, rc, wg, quitChan, restartChan, audioLevelChan)
}

func captureAudioMalgo(settings *conf.Settings, rc *RollingCapture, wg *sync.WaitGroup, quitChan, restartChan chan struct{}, audioLevelChan chan AudioLevelData) {
	defer wg.Done()
	log := GetLogger()

	var device *malgo.Device

	// if Linux set malgo.BackendAlsa, else set nil for auto select
	var backends []malgo.Backend
	switch runtime.GOOS {
	case "linux":
		backends = []malgo.Backend{malgo.BackendAlsa}
	case "windows":
		backends = []malgo.Backend{malgo.BackendWasapi}
	case "darwin":
		backends = []malgo.Backend{malgo.BackendCoreaudio}
	}

	malgoCtx, err := malgo.InitContext(backends, malgo.ContextConfig{}, func(message string) {
		if settings.Debug {
			fmt.Print(message)
		}
	})
	if err != nil {
		log.Error("audio context init failed", "error", err)
		return
	}
	defer malgoCtx.Uninit() //nolint:errcheck

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatF32
	deviceConfig.Capture.Channels = CaptureChannels
	deviceConfig.Alsa.NoMMap = 1

	infos, err := malgoCtx.Devices(malgo.Capture)
	if err != nil {
		log.Error("listing capture devices failed", "error", err)
		return
	}

	source, err := selectCaptureSource(settings.Capture.Source, infos)
	if err != nil {
		log.Error("selecting capture source failed", "error", err)
		return
	}
	deviceConfig.Capture.DeviceID = source.Pointer

	// The data callback is the real-time producer: reinterpret the malgo
	// byte buffer as float32 samples and hand it to the ring buffer. No
	// allocation, no locking, no logging on this path.
	onReceiveFrames := func(_, pSamples []byte, frameCount uint32) {
		if frameCount == 0 || len(pSamples) < int(frameCount)*4 {
			return
		}
		samples := unsafe.Slice((*float32)(unsafe.Pointer(&pSamples[0])), frameCount)
		rc.ProcessAudio(samples)

		if m := getCaptureMetrics(); m != nil {
			m.RecordChunkWritten(int(frameCount))
		}
		sendAudioLevel(audioLevelChan, CalculateAudioLevel(samples))
	}

	// onStopDevice is called when the device stops, either normally or
	// unexpectedly; try a restart before giving up.
	onStopDevice := func() {
		go func() {
			select {
			case <-quitChan:
				return
			case <-time.After(100 * time.Millisecond):
				if m := getCaptureMetrics(); m != nil {
					m.RecordDeviceRestart()
				}
				if err := device.Start(); err != nil {
					log.Warn("audio device restart failed, requesting full capture restart", "error", err)
					select {
					case restartChan <- struct{}{}:
					case <-quitChan:
					}
				} else if settings.Debug {
					log.Debug("audio device restarted")
				}
			}
		}()
	}

	device, err = malgo.InitDevice(malgoCtx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onReceiveFrames,
		Stop: onStopDevice,
	})
	if err != nil {
		log.Error("capture device init failed", "error", err, "source", settings.Capture.Source)
		return
	}
	defer device.Uninit()

	// The negotiated rate sizes the ring buffer for the configured window.
	if err := rc.Start(int(device.SampleRate())); err != nil {
		log.Error("starting rolling capture failed", "error", err)
		return
	}
	defer rc.Stop()

	if err := device.Start(); err != nil {
		log.Error("capture device start failed", "error", err)
		return
	}
	defer device.Stop() //nolint:errcheck

	log.Info("listening on capture source",
		"name", source.Name,
		"id", source.ID,
		"sample_rate", device.SampleRate(),
		"window_seconds", rc.WindowSeconds())

	<-quitChan
}

// sendAudioLevel pushes a level update without ever blocking the audio
// callback; when the channel is full the stale value is dropped first.
func sendAudioLevel(ch chan AudioLevelData, level AudioLevelData) {
	if ch == nil {
		return
	}
	select {
	case ch <- level:
	default:
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- level:
		default:
		}
	}
}
