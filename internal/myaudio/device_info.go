package myaudio

import (
	"encoding/hex"
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/gen2brain/malgo"

	"github.com/tphakala/replay-go/internal/errors"
)

// captureSource holds information about the selected audio capture source.
type captureSource struct {
	Name    string
	ID      string
	Pointer unsafe.Pointer
}

// AudioDeviceInfo holds information about an audio device.
type AudioDeviceInfo struct {
	Index int
	Name  string
	ID    string
}

// ListCaptureDevices returns the available audio capture devices.
func ListCaptureDevices() ([]AudioDeviceInfo, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, errors.Newf("failed to initialize audio context: %v", err).
			Component("myaudio").
			Category(errors.CategoryAudio).
			Context("operation", "list_devices").
			Build()
	}
	defer ctx.Uninit() //nolint:errcheck

	infos, err := ctx.Devices(malgo.Capture)
	if err != nil {
		return nil, errors.Newf("failed to get capture devices: %v", err).
			Component("myaudio").
			Category(errors.CategoryAudio).
			Context("operation", "list_devices").
			Build()
	}

	devices := make([]AudioDeviceInfo, 0, len(infos))
	for i, info := range infos {
		decodedID, err := hexToASCII(info.ID.String())
		if err != nil {
			GetLogger().Warn("skipping device with undecodable ID", "index", i, "error", err)
			continue
		}
		devices = append(devices, AudioDeviceInfo{
			Index: i,
			Name:  info.Name(),
			ID:    decodedID,
		})
	}

	return devices, nil
}

// selectCaptureSource picks the capture device matching the configured source
// name or ID from the available device list.
func selectCaptureSource(source string, infos []malgo.DeviceInfo) (captureSource, error) {
	for i, info := range infos {
		decodedID, err := hexToASCII(info.ID.String())
		if err != nil {
			GetLogger().Warn("skipping device with undecodable ID", "index", i, "error", err)
			continue
		}

		if matchesDeviceSettings(decodedID, info, source) {
			return captureSource{
				Name:    info.Name(),
				ID:      decodedID,
				Pointer: info.ID.Pointer(),
			}, nil
		}
	}

	return captureSource{}, fmt.Errorf("no suitable capture source found for device setting %s", source)
}

// matchesDeviceSettings checks if the device matches the configured source.
func matchesDeviceSettings(decodedID string, info malgo.DeviceInfo, source string) bool {
	if runtime.GOOS == "windows" && source == "sysdefault" {
		// On Windows there is no "sysdefault" device, use the default device instead.
		return info.IsDefault == 1
	}
	return decodedID == source || strings.Contains(info.Name(), source)
}

// hexToASCII converts a hexadecimal string to an ASCII string.
func hexToASCII(hexStr string) (string, error) {
	bytes, err := hex.DecodeString(hexStr)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
