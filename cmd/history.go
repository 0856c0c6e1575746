package cmd

import (
	"context"
	"fmt"

	"extension-host/core/config"
	"extension-host/core/journal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	historyLimit     int
	historyExtension string
)

// historyCmd prints recent lifecycle journal entries.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent extension lifecycle events",
	Long: `Reads the lifecycle journal and prints the most recent load, unload,
and reload outcomes, newest first.

Examples:
  # Last 50 events
  history

  # Last 20 events for one extension
  history --extension greeter --limit 20`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximum number of events to print")
	historyCmd.Flags().StringVar(&historyExtension, "extension", "", "Filter by extension id")
	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Journal.Enabled {
		return fmt.Errorf("lifecycle journal is disabled in configuration")
	}

	db, err := journal.Open(cfg.Journal)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	store := journal.NewStore(db, zap.NewNop())

	ctx := context.Background()
	var events []journal.LifecycleEvent
	if historyExtension != "" {
		events, err = store.ForExtension(ctx, historyExtension, historyLimit)
	} else {
		events, err = store.Recent(ctx, historyLimit)
	}
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	if len(events) == 0 {
		fmt.Println("No lifecycle events recorded")
		return nil
	}

	for _, ev := range events {
		line := fmt.Sprintf("%s  %-8s %-24s %s",
			ev.CreatedAt.Format("2006-01-02 15:04:05"), ev.Action, ev.ExtensionID, ev.Outcome)
		if ev.Detail != "" {
			line += "  " + ev.Detail
		}
		fmt.Println(line)
	}
	return nil
}
