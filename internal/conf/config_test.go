package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() *Settings {
	return &Settings{
		Capture: CaptureSettings{Source: "sysdefault", WindowSeconds: 30},
		Export:  ExportSettings{Path: "clips/"},
		Metrics: MetricsSettings{Enabled: false, Addr: ":9090"},
	}
}

func TestValidateSettingsAcceptsDefaults(t *testing.T) {
	settings := validSettings()
	require.NoError(t, ValidateSettings(settings))
	assert.InDelta(t, 30.0, settings.Capture.WindowSeconds, 0.001)
}

func TestValidateSettingsClampsWindow(t *testing.T) {
	tests := []struct {
		name   string
		window float64
		want   float64
	}{
		{"zero", 0, MinWindowSeconds},
		{"negative", -5, MinWindowSeconds},
		{"below_minimum", 0.25, MinWindowSeconds},
		{"at_minimum", 1, 1},
		{"above_minimum", 90, 90},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			settings := validSettings()
			settings.Capture.WindowSeconds = tc.window
			require.NoError(t, ValidateSettings(settings))
			assert.InDelta(t, tc.want, settings.Capture.WindowSeconds, 0.001)
		})
	}
}

func TestValidateSettingsEmptySource(t *testing.T) {
	settings := validSettings()
	settings.Capture.Source = ""
	assert.Error(t, ValidateSettings(settings))
}

func TestValidateSettingsEmptyExportPath(t *testing.T) {
	settings := validSettings()
	settings.Export.Path = ""
	assert.Error(t, ValidateSettings(settings))
}

func TestValidateSettingsMetricsAddr(t *testing.T) {
	settings := validSettings()
	settings.Metrics.Enabled = true
	settings.Metrics.Addr = ""
	assert.Error(t, ValidateSettings(settings))

	settings.Metrics.Addr = ":9090"
	assert.NoError(t, ValidateSettings(settings))
}
