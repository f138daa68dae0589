package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/repopulse/internal/contract"
)

// ingestCmd normalizes raw revisions into the store.
var ingestCmd = &cobra.Command{
	Use:   "ingest [repo-path]",
	Short: "Normalize Git revisions into the metric store.",
	Long: `Walk the repository history and persist normalized revision facts.

Populates the commit_hashes, authors, committers, commit_logs and releases
tables. Previously ingested commits are skipped by hash, so re-running after
new commits land appends only the new history.

Examples:
  # Ingest the repository in the current directory
  repopulse ingest

  # Ingest a specific repository into MySQL
  repopulse ingest ~/src/myrepo --store-backend mysql --store-db-connect "user:pass@tcp(localhost:3306)/repopulse"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		p, err := newPipeline()
		if err != nil {
			contract.LogFatal("Cannot open repository", err)
		}
		if err := p.IngestRevisions(rootCtx); err != nil {
			contract.LogFatal("Cannot ingest revisions", err)
		}
	},
}
