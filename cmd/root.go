package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tphakala/replay-go/cmd/devices"
	"github.com/tphakala/replay-go/cmd/inspect"
	"github.com/tphakala/replay-go/cmd/record"
	"github.com/tphakala/replay-go/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay-Go CLI",
		Long:  "Continuously captures live audio, keeps the most recent window in memory and saves it to a clip file on demand.",
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd, settings)

	subcommands := []*cobra.Command{
		record.Command(settings),
		devices.Command(),
		inspect.Command(),
	}
	rootCmd.AddCommand(subcommands...)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Flags may have changed values viper validated at load time.
		return conf.ValidateSettings(settings)
	}

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().Float64VarP(&settings.Capture.WindowSeconds, "window", "w", viper.GetFloat64("capture.windowseconds"), "Trailing window length to keep in memory, in seconds")
	rootCmd.PersistentFlags().StringVarP(&settings.Capture.Source, "source", "s", viper.GetString("capture.source"), "Capture device name or ID")
	rootCmd.PersistentFlags().StringVar(&settings.Export.Path, "export-path", viper.GetString("export.path"), "Directory where exported clips are written")
}
