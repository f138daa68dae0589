package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/repopulse/internal/contract"
)

// prsCmd ingests tracker pull requests into the store.
var prsCmd = &cobra.Command{
	Use:   "prs [repo-path]",
	Short: "Ingest tracker pull requests into the metric store.",
	Long: `Page through the GitHub pull requests of a repository and persist them
to the pull_request_ids and pull_requests tables.

Pull requests are stored for later analysis; no derived metric consumes
them yet.

Examples:
  # Ingest pull requests for a public repository
  repopulse prs --owner golang --repo go`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := contract.ValidateTrackerInputs(cfg); err != nil {
			contract.LogFatal("Invalid tracker settings", err)
		}
		p, err := newPipeline()
		if err != nil {
			contract.LogFatal("Cannot open repository", err)
		}
		tracker := contract.NewGitHubTracker(cfg.TrackerOwner, cfg.TrackerRepo, cfg.TrackerAuth, contract.PullRequestKind)
		if err := p.IngestPullRequests(rootCtx, tracker); err != nil {
			contract.LogFatal("Cannot ingest pull requests", err)
		}
	},
}
