package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/repopulse/internal/contract"
	"github.com/huangsam/repopulse/internal/iostore"
	"github.com/huangsam/repopulse/internal/outwriter"
)

// busfactorCmd attributes daily churn to individual committers.
var busfactorCmd = &cobra.Command{
	Use:   "busfactor [repo-path]",
	Short: "Compute per-day per-committer absolute churn.",
	Long: `Attribute the absolute value of every productivity delta to the
committer who produced it, grouped by day.

Days whose commits have no resolvable committer carry a single sentinel
row with committer -1. Requires 'repopulse productivity' to have run first.

Examples:
  # Compute and print the bus factor table
  repopulse busfactor`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		p, err := newPipeline()
		if err != nil {
			contract.LogFatal("Cannot open repository", err)
		}
		if err := p.ComputeBusFactor(rootCtx); err != nil {
			contract.LogFatal("Cannot compute bus factor", err)
		}

		rows, err := iostore.Manager.GetMetricStore().BusFactor()
		if err != nil {
			contract.LogFatal("Cannot read bus factor", err)
		}
		if err := outwriter.NewOutWriter().WriteBusFactor(rows, cfg); err != nil {
			contract.LogFatal("Cannot write bus factor", err)
		}
	},
}
