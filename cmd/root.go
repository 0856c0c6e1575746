package cmd

import (
	"fmt"
	"os"

	"extension-host/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is the host version reported by the admin stats endpoint.
const Version = "1.0.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "extension-host",
	Short: "Extension Host Service",
	Long: `Extension Host is a long-running service that discovers, loads, and
hot-reloads extensions from a watched directory without a process restart.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting.
		// Console format matches user expectations for a CLI entrypoint.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
