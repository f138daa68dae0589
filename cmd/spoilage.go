package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/repopulse/internal/contract"
	"github.com/huangsam/repopulse/internal/iostore"
	"github.com/huangsam/repopulse/internal/outwriter"
)

// spoilageCmd counts issues open during each day of history.
var spoilageCmd = &cobra.Command{
	Use:   "spoilage [repo-path]",
	Short: "Compute the count of open issues per day of history.",
	Long: `For every day from the first commit through today, count the tracker
issues that were open for the entire day.

Issues ingested with 'repopulse issues' define the open intervals; issues
without a close date count as open through today. Requires both ingest and
issues to have run first.

Examples:
  # Compute and print the spoilage series
  repopulse spoilage`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		p, err := newPipeline()
		if err != nil {
			contract.LogFatal("Cannot open repository", err)
		}
		if err := p.ComputeSpoilage(rootCtx); err != nil {
			contract.LogFatal("Cannot compute spoilage", err)
		}

		rows, err := iostore.Manager.GetMetricStore().IssueSpoilage()
		if err != nil {
			contract.LogFatal("Cannot read spoilage", err)
		}
		if err := outwriter.NewOutWriter().WriteSpoilage(rows, cfg); err != nil {
			contract.LogFatal("Cannot write spoilage", err)
		}
	},
}
