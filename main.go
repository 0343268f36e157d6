package main

import (
	"fmt"
	"os"

	"github.com/surimlab/challenge500/cmd"
	"github.com/surimlab/challenge500/internal/conf"
	"github.com/surimlab/challenge500/internal/logging"
)

// version and buildDate are filled in at build time via ldflags.
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	logging.Init()

	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}
	settings.Version = version
	settings.BuildDate = buildDate

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "command error: %v\n", err)
		os.Exit(1)
	}
}
