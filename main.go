package main

import (
	"log/slog"
	"os"

	"github.com/tphakala/replay-go/cmd"
	"github.com/tphakala/replay-go/internal/conf"
	"github.com/tphakala/replay-go/internal/logging"
)

func main() {
	logging.Init()

	settings, err := conf.Load()
	if err != nil {
		logging.Fatal("loading configuration failed", "error", err)
	}

	if settings.Debug {
		logging.SetLevel(slog.LevelDebug)
	}

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		logging.Error("command failed", "error", err)
		os.Exit(1)
	}
}
