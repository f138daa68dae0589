package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/repopulse/internal/contract"
)

// issuesCmd ingests tracker issues into the store.
var issuesCmd = &cobra.Command{
	Use:   "issues [repo-path]",
	Short: "Ingest tracker issues into the metric store.",
	Long: `Page through the GitHub issues of a repository and persist them to the
issue_ids and issues tables.

A non-success tracker response stops pagination silently and keeps whatever
was fetched, so partial ingestion is possible on rate limits.

Examples:
  # Ingest issues for a public repository
  repopulse issues --owner golang --repo go

  # Use a token for private repositories or higher rate limits
  REPOPULSE_AUTH=ghp_... repopulse issues --owner myorg --repo myrepo`,
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
		tracker := contract.NewGitHubTracker(cfg.TrackerOwner, cfg.TrackerRepo, cfg.TrackerAuth, contract.IssueKind)
		if err := p.IngestIssues(rootCtx, tracker); err != nil {
			contract.LogFatal("Cannot ingest issues", err)
		}
	},
}
