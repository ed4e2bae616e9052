// Package conf loads and validates the application configuration using viper.
package conf

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"github.com/tphakala/replay-go/internal/errors"
	"gopkg.in/yaml.v3"
)

// CaptureSettings holds the rolling capture configuration.
type CaptureSettings struct {
	Source        string  // Capture device name or ID, "sysdefault" picks the system default
	WindowSeconds float64 // Trailing window length retained in memory, minimum 1 second
}

// ExportSettings holds the clip export configuration.
type ExportSettings struct {
	Path  string // Directory where exported clips are written
	Debug bool   // Enable export debug logging
}

// MetricsSettings holds the Prometheus endpoint configuration.
type MetricsSettings struct {
	Enabled bool   // Serve /metrics when true
	Addr    string // Listen address for the metrics endpoint
}

// Settings is the top-level application configuration.
type Settings struct {
	Debug   bool
	Capture CaptureSettings
	Export  ExportSettings
	Metrics MetricsSettings
}

// settingsMutex serializes Load calls, which mutate global viper state.
var settingsMutex sync.Mutex

// Load reads the configuration from defaults, the config file and the
// environment, unmarshals it into a Settings struct and validates it.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	return settings, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// Defaults are defined in defaults.go
	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create config with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// createDefaultConfig writes a default config file to the first default config path.
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[0], "config.yaml")

	defaults := &Settings{}
	if err := viper.Unmarshal(defaults); err != nil {
		return fmt.Errorf("error unmarshaling default config: %w", err)
	}
	yamlData, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("error marshaling default config to YAML: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return errors.New(err).
			Category(errors.CategoryFileIO).
			Context("operation", "create-config-dir").
			Build()
	}
	if err := os.WriteFile(configPath, yamlData, 0o644); err != nil {
		return errors.New(err).
			Category(errors.CategoryFileIO).
			Context("operation", "write-default-config").
			Build()
	}

	log.Printf("Created default config file at %s", configPath)
	return viper.ReadInConfig()
}

