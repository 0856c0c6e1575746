package cmd

import (
	"context"
	"fmt"
	"time"

	"extension-host/core/config"
	"extension-host/extension"

	"github.com/spf13/cobra"
)

// scanCmd performs a one-shot scan of the extension source directory.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List extension candidates in the source directory",
	Long: `Scans the configured source directory once and prints every valid
extension candidate together with its enablement under the configured
allow/deny lists. Useful for checking what the running host would pick up.`,
	RunE: runScan,
}

func init() {
	RootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	scanner := extension.NewDirScanner(cfg.Modules.Dir, cfg.Modules.Suffix)
	snap, err := scanner.Scan(context.Background())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(snap) == 0 {
		fmt.Printf("No extension candidates in %s\n", cfg.Modules.Dir)
		return nil
	}

	policy := extension.NewPolicy(cfg.Modules.Enabled, cfg.Modules.Disabled)
	plan := extension.BuildPlan(snap, nil, nil, time.Time{})

	fmt.Printf("Found %d candidate(s) in %s:\n\n", len(snap), cfg.Modules.Dir)
	for _, id := range plan.ToLoad {
		eligibility := "eligible"
		if !policy.Eligible(id) {
			eligibility = "excluded by policy"
		}
		fmt.Printf("  %-24s modified %s  [%s]\n", id, snap[id].Format("2006-01-02 15:04:05"), eligibility)
	}
	return nil
}
