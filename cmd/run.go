package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/repopulse/internal/contract"
)

// runCmd executes every pipeline stage in order.
var runCmd = &cobra.Command{
	Use:   "run [repo-path]",
	Short: "Run the full metric pipeline in one pass.",
	Long: `Execute every stage in dependency order: ingest, size, productivity,
bus factor, issue ingestion, spoilage and density.

Tracker ingestion only happens when --owner and --repo are set; the
spoilage and density stages still run against whatever issues are already
in the store.

Examples:
  # Full pipeline on the current repository, no tracker
  repopulse run

  # Full pipeline including issue and pull request ingestion
  REPOPULSE_AUTH=ghp_... repopulse run --owner myorg --repo myrepo`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		p, err := newPipeline()
		if err != nil {
			contract.LogFatal("Cannot open repository", err)
		}

		var issues, pulls contract.IssueTracker
		if cfg.TrackerOwner != "" && cfg.TrackerRepo != "" {
			issues = contract.NewGitHubTracker(cfg.TrackerOwner, cfg.TrackerRepo, cfg.TrackerAuth, contract.IssueKind)
			pulls = contract.NewGitHubTracker(cfg.TrackerOwner, cfg.TrackerRepo, cfg.TrackerAuth, contract.PullRequestKind)
		}

		if err := p.Run(rootCtx, issues, pulls); err != nil {
			contract.LogFatal("Cannot run pipeline", err)
		}
	},
}
