package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/repopulse/internal/contract"
	"github.com/huangsam/repopulse/internal/iostore"
	"github.com/huangsam/repopulse/internal/outwriter"
)

// productivityCmd derives productivity deltas from the size tables.
var productivityCmd = &cobra.Command{
	Use:   "productivity [repo-path]",
	Short: "Compute commit-over-commit and day-over-day productivity deltas.",
	Long: `Derive productivity metrics from the persisted size series.

Each row is the difference in lines, code, comments, blanks and bytes
against the previous commit or day; the first entry carries zero deltas.
Requires 'repopulse size' to have run first.

Examples:
  # Compute deltas and print the daily series
  repopulse productivity

  # Export the daily series as JSON
  repopulse productivity --output json --output-file productivity.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		p, err := newPipeline()
		if err != nil {
			contract.LogFatal("Cannot open repository", err)
		}
		if err := p.ComputeProductivity(rootCtx); err != nil {
			contract.LogFatal("Cannot compute productivity", err)
		}

		rows, err := iostore.Manager.GetMetricStore().ProductivityPerDay()
		if err != nil {
			contract.LogFatal("Cannot read daily productivity", err)
		}
		if err := outwriter.NewOutWriter().WriteProductivity(rows, cfg); err != nil {
			contract.LogFatal("Cannot write daily productivity", err)
		}
	},
}
