package myaudio

import (
	"log/slog"

	"github.com/tphakala/replay-go/internal/logging"
)

// GetLogger returns the myaudio service logger. Falls back to the default
// slog logger when logging has not been initialized, e.g. in tests.
func GetLogger() *slog.Logger {
	if l := logging.ForService("myaudio"); l != nil {
		return l
	}
	return slog.Default()
}
