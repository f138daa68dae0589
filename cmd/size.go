package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/repopulse/internal/contract"
	"github.com/huangsam/repopulse/internal/iostore"
	"github.com/huangsam/repopulse/internal/outwriter"
)

// sizeCmd measures project size at every ingested commit.
var sizeCmd = &cobra.Command{
	Use:   "size [repo-path]",
	Short: "Measure per-commit and per-day project size.",
	Long: `Check out every ingested commit, measure file sizes with scc, and
persist per-file, per-commit and flood-filled per-day size tables.

The working tree is restored to the original HEAD afterwards, including on
failure. Requires 'repopulse ingest' to have run first.

Examples:
  # Measure sizes and print the daily series
  repopulse size

  # Export the daily series as CSV
  repopulse size --output csv --output-file sizes.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		p, err := newPipeline()
		if err != nil {
			contract.LogFatal("Cannot open repository", err)
		}
		if err := p.MeasureSizes(rootCtx); err != nil {
			contract.LogFatal("Cannot measure sizes", err)
		}

		rows, err := iostore.Manager.GetMetricStore().ProjectSizePerDay()
		if err != nil {
			contract.LogFatal("Cannot read daily sizes", err)
		}
		if err := outwriter.NewOutWriter().WriteDailySize(rows, cfg); err != nil {
			contract.LogFatal("Cannot write daily sizes", err)
		}
	},
}
