package conf

import (
	"github.com/tphakala/replay-go/internal/errors"
)

// MinWindowSeconds is the smallest trailing window the capture core supports.
const MinWindowSeconds = 1.0

// ValidateSettings checks the loaded settings and normalizes values that have
// a defined floor rather than failing on them.
func ValidateSettings(settings *Settings) error {
	if settings.Capture.WindowSeconds < MinWindowSeconds {
		settings.Capture.WindowSeconds = MinWindowSeconds
	}

	if settings.Capture.Source == "" {
		return errors.Newf("capture source must not be empty").
			Component("configuration").
			Category(errors.CategoryValidation).
			Context("setting", "capture.source").
			Build()
	}

	if settings.Export.Path == "" {
		return errors.Newf("export path must not be empty").
			Component("configuration").
			Category(errors.CategoryValidation).
			Context("setting", "export.path").
			Build()
	}

	if settings.Metrics.Enabled && settings.Metrics.Addr == "" {
		return errors.Newf("metrics address must not be empty when metrics are enabled").
			Component("configuration").
			Category(errors.CategoryValidation).
			Context("setting", "metrics.addr").
			Build()
	}

	return nil
}
