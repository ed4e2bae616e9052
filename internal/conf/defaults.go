// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("capture.source", "sysdefault")
	viper.SetDefault("capture.windowseconds", 30.0)

	viper.SetDefault("export.path", "clips/")
	viper.SetDefault("export.debug", false)

	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.addr", ":9090")
}
