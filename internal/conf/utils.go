package conf

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/tphakala/replay-go/internal/errors"
)

const osWindows = "windows"

// GetDefaultConfigPaths returns the OS specific default configuration paths,
// highest priority first.
func GetDefaultConfigPaths() ([]string, error) {
	var configPaths []string

	// Fetch the directory of the executable.
	exePath, err := os.Executable()
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategorySystem).
			Context("operation", "get-executable-path").
			Build()
	}
	exeDir := filepath.Dir(exePath)

	// Fetch the user's home directory.
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategorySystem).
			Context("operation", "get-home-directory").
			Build()
	}

	// Define default paths based on the operating system.
	switch runtime.GOOS {
	case osWindows:
		configPaths = []string{
			exeDir,
			filepath.Join(homeDir, "AppData", "Roaming", "replay-go"),
		}
	default:
		configPaths = []string{
			filepath.Join(homeDir, ".config", "replay-go"),
			exeDir,
		}
	}

	return configPaths, nil
}
