package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/repopulse/internal/contract"
	"github.com/huangsam/repopulse/schema"
)

// Pipeline wires the metric transforms to their collaborators. Stages
// run sequentially; each stage reads what earlier stages persisted and
// writes its own tables in bulk at the end.
type Pipeline struct {
	Git     contract.GitClient
	Counter contract.LineCounter
	Store   contract.MetricStore

	// Now supplies "today" for calendar-bound series. Overridable in tests.
	Now func() time.Time
}

// NewPipeline builds a pipeline over the given collaborators.
func NewPipeline(git contract.GitClient, counter contract.LineCounter, store contract.MetricStore) *Pipeline {
	return &Pipeline{Git: git, Counter: counter, Store: store, Now: time.Now}
}

// IngestRevisions normalizes the repository's history into the commit
// tables. Revisions already persisted by an earlier run are skipped, so
// re-running over an unchanged repository writes nothing.
func (p *Pipeline) IngestRevisions(ctx context.Context) error {
	known, err := p.Store.KnownCommitHashes()
	if err != nil {
		return fmt.Errorf("load known commit hashes: %w", err)
	}

	revs, err := p.Git.Revisions(ctx)
	if err != nil {
		return fmt.Errorf("read revisions: %w", err)
	}

	fresh := FilterSeenRevisions(revs, known)
	if len(fresh) == 0 {
		contract.LogProgress("No new revisions to ingest (%d already known)", len(known))
		return nil
	}

	// 1. Persist the identity tables first; their generated keys anchor
	// every commit log reference.
	hashes := UniqueCommitHashes(fresh)
	hashKeys, err := p.Store.AppendCommitHashes(hashes)
	if err != nil {
		return fmt.Errorf("write commit hashes: %w", err)
	}
	batchIDs := make(map[string]int64, len(hashes))
	for i, hash := range hashes {
		batchIDs[hash] = hashKeys[i]
	}

	authors := UniqueAuthors(fresh)
	authorKeys, err := p.Store.AppendAuthors(authors)
	if err != nil {
		return fmt.Errorf("write authors: %w", err)
	}
	authorIDs := make(map[string]int64, len(authors))
	for i, author := range authors {
		authorIDs[author.AuthorEmail] = authorKeys[i]
	}

	committers := UniqueCommitters(fresh)
	committerKeys, err := p.Store.AppendCommitters(committers)
	if err != nil {
		return fmt.Errorf("write committers: %w", err)
	}
	committerIDs := make(map[string]int64, len(committers))
	for i, committer := range committers {
		committerIDs[committer.CommitterEmail] = committerKeys[i]
	}

	// 2. Parents may point at commits from earlier runs, so the hash
	// lookup spans both the known set and this batch.
	allHashIDs := make(map[string]int64, len(known)+len(batchIDs))
	for hash, id := range known {
		allHashIDs[hash] = id
	}
	for hash, id := range batchIDs {
		allHashIDs[hash] = id
	}

	logs := BuildCommitLogs(fresh, allHashIDs, authorIDs, committerIDs)
	if err := p.Store.AppendCommitLogs(logs); err != nil {
		return fmt.Errorf("write commit logs: %w", err)
	}

	// 3. Releases resolve only against this batch so a re-run does not
	// duplicate tags that already landed.
	tags, err := p.Git.TagTargets(ctx)
	if err != nil {
		return fmt.Errorf("read tags: %w", err)
	}
	releases := BuildReleases(tags, batchIDs)
	if len(releases) > 0 {
		if err := p.Store.AppendReleases(releases); err != nil {
			return fmt.Errorf("write releases: %w", err)
		}
	}

	contract.LogProgress("Ingested %d revisions, %d authors, %d committers, %d releases",
		len(fresh), len(authors), len(committers), len(releases))
	return nil
}

// MeasureSizes checks out every persisted commit in order, measures the
// tree with the line counter and writes the per-file, per-commit and
// per-day size tables. The working tree is restored to its latest
// revision on every exit path, including failures mid-loop.
func (p *Pipeline) MeasureSizes(ctx context.Context) (err error) {
	hashRows, err := p.Store.CommitHashes()
	if err != nil {
		return fmt.Errorf("load commit hashes: %w", err)
	}
	if len(hashRows) == 0 {
		return fmt.Errorf("no commit history in store; run ingest first")
	}

	logs, err := p.Store.CommitLogs()
	if err != nil {
		return fmt.Errorf("load commit logs: %w", err)
	}
	committedAt := make(map[int64]time.Time, len(logs))
	for _, log := range logs {
		committedAt[log.CommitHashID] = log.CommittedAt
	}

	defer func() {
		if restoreErr := p.Git.CheckoutLatest(ctx); restoreErr != nil && err == nil {
			err = fmt.Errorf("restore working tree: %w", restoreErr)
		}
	}()

	var fileRows []schema.FileSizeRow
	commitRows := make([]schema.ProjectSizeCommitRow, 0, len(hashRows))
	commitSizes := make([]CommitSize, 0, len(hashRows))
	for _, hashRow := range hashRows {
		if checkoutErr := p.Git.Checkout(ctx, hashRow.CommitHash); checkoutErr != nil {
			return fmt.Errorf("checkout %s: %w", hashRow.CommitHash, checkoutErr)
		}
		measured, measureErr := p.Counter.Measure(ctx, p.Git.WorkDir())
		if measureErr != nil {
			return fmt.Errorf("measure %s: %w", hashRow.CommitHash, measureErr)
		}
		for i := range measured {
			measured[i].CommitHashID = hashRow.ID
		}
		fileRows = append(fileRows, measured...)

		total := SumFileSizes(measured)
		commitRows = append(commitRows, schema.ProjectSizeCommitRow{
			SizeMetrics:  total,
			CommitHashID: hashRow.ID,
		})
		commitSizes = append(commitSizes, CommitSize{
			CommitHashID: hashRow.ID,
			CommittedAt:  committedAt[hashRow.ID],
			Size:         total,
		})
	}

	if err := p.Store.AppendFileSizes(fileRows); err != nil {
		return fmt.Errorf("write file sizes: %w", err)
	}
	if err := p.Store.AppendProjectSizePerCommit(commitRows); err != nil {
		return fmt.Errorf("write project size per commit: %w", err)
	}
	dayRows := BuildDailySize(commitSizes, p.Now())
	if err := p.Store.AppendProjectSizePerDay(dayRows); err != nil {
		return fmt.Errorf("write project size per day: %w", err)
	}

	contract.LogProgress("Measured %d commits: %d file rows, %d daily rows",
		len(hashRows), len(fileRows), len(dayRows))
	return nil
}

// ComputeProductivity derives first-difference series from both size
// tables.
func (p *Pipeline) ComputeProductivity(ctx context.Context) error {
	_ = ctx

	commitSizes, err := p.Store.ProjectSizePerCommit()
	if err != nil {
		return fmt.Errorf("load project size per commit: %w", err)
	}
	daySizes, err := p.Store.ProjectSizePerDay()
	if err != nil {
		return fmt.Errorf("load project size per day: %w", err)
	}

	if err := p.Store.AppendProductivityPerCommit(CommitDeltas(commitSizes)); err != nil {
		return fmt.Errorf("write productivity per commit: %w", err)
	}
	if err := p.Store.AppendProductivityPerDay(DailyDeltas(daySizes)); err != nil {
		return fmt.Errorf("write productivity per day: %w", err)
	}

	contract.LogProgress("Computed productivity: %d commit rows, %d daily rows",
		len(commitSizes), len(daySizes))
	return nil
}

// ComputeBusFactor joins per-commit productivity with each commit's day
// and committer, then aggregates absolute churn.
func (p *Pipeline) ComputeBusFactor(ctx context.Context) error {
	_ = ctx

	deltas, err := p.Store.ProductivityPerCommit()
	if err != nil {
		return fmt.Errorf("load productivity per commit: %w", err)
	}
	logs, err := p.Store.CommitLogs()
	if err != nil {
		return fmt.Errorf("load commit logs: %w", err)
	}
	byCommit := make(map[int64]schema.CommitLogRow, len(logs))
	for _, log := range logs {
		byCommit[log.CommitHashID] = log
	}

	churn := make([]CommitChurn, 0, len(deltas))
	for _, delta := range deltas {
		log, ok := byCommit[delta.CommitHashID]
		churn = append(churn, CommitChurn{
			Day:          log.CommittedAt,
			CommitterID:  log.CommitterID,
			HasCommitter: ok,
			Deltas:       delta.DeltaMetrics,
		})
	}

	rows := BuildBusFactor(churn)
	if err := p.Store.AppendBusFactor(rows); err != nil {
		return fmt.Errorf("write bus factor: %w", err)
	}

	contract.LogProgress("Computed bus factor: %d rows", len(rows))
	return nil
}

// fetchAllFacts drains the tracker's pages. A failing tracker response
// truncates the set silently, so a partial fetch is possible.
func fetchAllFacts(ctx context.Context, tracker contract.IssueTracker) ([]schema.IssueFact, error) {
	var facts []schema.IssueFact
	cursor := ""
	for {
		page, err := tracker.Page(ctx, cursor)
		if err != nil {
			return nil, err
		}
		facts = append(facts, page.Facts...)
		if !page.HasMore {
			break
		}
		cursor = page.NextCursor
	}
	return facts, nil
}

// IngestIssues pages through the tracker and persists issue identity
// and fact rows, identity first so the facts can reference generated
// keys.
func (p *Pipeline) IngestIssues(ctx context.Context, tracker contract.IssueTracker) error {
	facts, err := fetchAllFacts(ctx, tracker)
	if err != nil {
		return fmt.Errorf("fetch issues: %w", err)
	}
	if len(facts) == 0 {
		contract.LogProgress("No issues fetched")
		return nil
	}

	idRows := make([]schema.IssueIDRow, 0, len(facts))
	for _, fact := range facts {
		idRows = append(idRows, schema.IssueIDRow{IssueID: fact.IssueID})
	}
	keys, err := p.Store.AppendIssueIDs(idRows)
	if err != nil {
		return fmt.Errorf("write issue ids: %w", err)
	}

	rows := make([]schema.IssueRow, 0, len(facts))
	for i, fact := range facts {
		rows = append(rows, schema.IssueRow{
			IssueIDKey: keys[i],
			CreatedAt:  fact.CreatedAt,
			ClosedAt:   fact.ClosedAt,
		})
	}
	if err := p.Store.AppendIssues(rows); err != nil {
		return fmt.Errorf("write issues: %w", err)
	}

	contract.LogProgress("Ingested %d issues", len(facts))
	return nil
}

// IngestPullRequests mirrors IngestIssues for the pull-request tables.
func (p *Pipeline) IngestPullRequests(ctx context.Context, tracker contract.IssueTracker) error {
	facts, err := fetchAllFacts(ctx, tracker)
	if err != nil {
		return fmt.Errorf("fetch pull requests: %w", err)
	}
	if len(facts) == 0 {
		contract.LogProgress("No pull requests fetched")
		return nil
	}

	idRows := make([]schema.PullRequestIDRow, 0, len(facts))
	for _, fact := range facts {
		idRows = append(idRows, schema.PullRequestIDRow{PullRequestID: fact.IssueID})
	}
	keys, err := p.Store.AppendPullRequestIDs(idRows)
	if err != nil {
		return fmt.Errorf("write pull request ids: %w", err)
	}

	rows := make([]schema.PullRequestRow, 0, len(facts))
	for i, fact := range facts {
		rows = append(rows, schema.PullRequestRow{
			PullRequestIDKey: keys[i],
			CreatedAt:        fact.CreatedAt,
			ClosedAt:         fact.ClosedAt,
		})
	}
	if err := p.Store.AppendPullRequests(rows); err != nil {
		return fmt.Errorf("write pull requests: %w", err)
	}

	contract.LogProgress("Ingested %d pull requests", len(facts))
	return nil
}

// ComputeSpoilage counts open issues per day from the first commit's
// day through today.
func (p *Pipeline) ComputeSpoilage(ctx context.Context) error {
	_ = ctx

	logs, err := p.Store.CommitLogs()
	if err != nil {
		return fmt.Errorf("load commit logs: %w", err)
	}
	if len(logs) == 0 {
		return fmt.Errorf("no commit history in store; run ingest first")
	}
	firstDay := logs[0].CommittedAt
	for _, log := range logs {
		if log.CommittedAt.Before(firstDay) {
			firstDay = log.CommittedAt
		}
	}

	issues, err := p.Store.Issues()
	if err != nil {
		return fmt.Errorf("load issues: %w", err)
	}

	today := p.Now()
	rows := BuildSpoilage(BuildIssueIntervals(issues, today), firstDay, today)
	if err := p.Store.AppendIssueSpoilage(rows); err != nil {
		return fmt.Errorf("write issue spoilage: %w", err)
	}

	contract.LogProgress("Computed spoilage for %d days over %d issues", len(rows), len(issues))
	return nil
}

// ComputeDensity aligns the spoilage series with the daily size series.
func (p *Pipeline) ComputeDensity(ctx context.Context) error {
	_ = ctx

	spoilage, err := p.Store.IssueSpoilage()
	if err != nil {
		return fmt.Errorf("load issue spoilage: %w", err)
	}
	sizes, err := p.Store.ProjectSizePerDay()
	if err != nil {
		return fmt.Errorf("load project size per day: %w", err)
	}

	rows := BuildDensity(spoilage, sizes)
	if err := p.Store.AppendIssueDensity(rows); err != nil {
		return fmt.Errorf("write issue density: %w", err)
	}

	contract.LogProgress("Computed density: %d rows", len(rows))
	return nil
}

// Run executes every stage in dependency order. Trackers may be nil to
// skip issue or pull-request ingestion; spoilage and density still run
// over whatever the issues table holds.
func (p *Pipeline) Run(ctx context.Context, issues, pulls contract.IssueTracker) error {
	if err := p.IngestRevisions(ctx); err != nil {
		return err
	}
	if err := p.MeasureSizes(ctx); err != nil {
		return err
	}
	if err := p.ComputeProductivity(ctx); err != nil {
		return err
	}
	if err := p.ComputeBusFactor(ctx); err != nil {
		return err
	}
	if issues != nil {
		if err := p.IngestIssues(ctx, issues); err != nil {
			return err
		}
	}
	if pulls != nil {
		if err := p.IngestPullRequests(ctx, pulls); err != nil {
			return err
		}
	}
	if err := p.ComputeSpoilage(ctx); err != nil {
		return err
	}
	return p.ComputeDensity(ctx)
}
