package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/repopulse/internal/contract"
	"github.com/huangsam/repopulse/internal/iostore"
	"github.com/huangsam/repopulse/internal/outwriter"
)

// densityCmd aligns daily spoilage with daily project size.
var densityCmd = &cobra.Command{
	Use:   "density [repo-path]",
	Short: "Align daily open-issue counts with same-day project size.",
	Long: `Left-join the spoilage series against the daily size series by date.

Days without a size measurement reuse the last known size; leading days
before the first measurement carry zero size. No ratio is computed; both
sides are stored so consumers can derive their own normalization.
Requires 'repopulse spoilage' and 'repopulse size' to have run first.

Examples:
  # Compute and print the density series
  repopulse density`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		p, err := newPipeline()
		if err != nil {
			contract.LogFatal("Cannot open repository", err)
		}
		if err := p.ComputeDensity(rootCtx); err != nil {
			contract.LogFatal("Cannot compute density", err)
		}

		rows, err := iostore.Manager.GetMetricStore().IssueDensity()
		if err != nil {
			contract.LogFatal("Cannot read density", err)
		}
		if err := outwriter.NewOutWriter().WriteDensity(rows, cfg); err != nil {
			contract.LogFatal("Cannot write density", err)
		}
	},
}
