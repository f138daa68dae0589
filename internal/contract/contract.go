// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"

	"github.com/huangsam/repopulse/schema"
)

// ErrDuplicateKey is returned by store writes that collide with an
// existing primary key. Callers check it with errors.Is rather than
// parsing driver-specific messages.
var ErrDuplicateKey = errors.New("duplicate key on write")

// ValidationError reports a row that failed its declared schema before
// being written. It aborts the stage that produced the row.
type ValidationError struct {
	Table  string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed for " + e.Table + "." + e.Field + ": " + e.Reason
}

// GitClient defines the version-control operations the pipeline needs.
// This allows the core logic to be tested without a real repository.
type GitClient interface {
	// Revisions returns all commits oldest-first with full metadata.
	Revisions(ctx context.Context) ([]schema.Revision, error)

	// TagTargets returns a tag -> commit hash mapping. Tags that do not
	// resolve to a commit are omitted, not errored.
	TagTargets(ctx context.Context) (map[string]string, error)

	// Checkout moves the working tree to the given commit hash.
	Checkout(ctx context.Context, hash string) error

	// CheckoutLatest restores the working tree to the revision that was
	// checked out when the client was opened.
	CheckoutLatest(ctx context.Context) error

	// WorkDir returns the path of the working tree being measured.
	WorkDir() string
}

// LineCounter measures code size for every file under a directory.
type LineCounter interface {
	Measure(ctx context.Context, directory string) ([]schema.FileSizeRow, error)
}

// IssuePage is one page of tracker results.
type IssuePage struct {
	Facts      []schema.IssueFact
	NextCursor string
	HasMore    bool
}

// IssueTracker pages through a repository's issues or pull requests.
// A non-success tracker response yields an empty page with HasMore
// false; pagination stops silently and the fetched set is truncated.
type IssueTracker interface {
	TotalCount(ctx context.Context) (int, error)
	Page(ctx context.Context, cursor string) (IssuePage, error)
}

// MetricStore is the persistence boundary of the pipeline. Appends
// assign sequential integer primary keys and, where dependent rows need
// them, return the generated keys. Writes for one stage happen in a
// single transaction; the store never interleaves writers within a run.
type MetricStore interface {
	// --- Revision tables ---

	KnownCommitHashes() (map[string]int64, error)
	AppendCommitHashes(hashes []string) ([]int64, error)
	AppendAuthors(rows []schema.AuthorRow) ([]int64, error)
	AppendCommitters(rows []schema.CommitterRow) ([]int64, error)
	AppendCommitLogs(rows []schema.CommitLogRow) error
	AppendReleases(rows []schema.ReleaseRow) error
	CommitHashes() ([]schema.CommitHashRow, error)
	CommitLogs() ([]schema.CommitLogRow, error)

	// --- Size tables ---

	AppendFileSizes(rows []schema.FileSizeRow) error
	AppendProjectSizePerCommit(rows []schema.ProjectSizeCommitRow) error
	AppendProjectSizePerDay(rows []schema.ProjectSizeDayRow) error
	ProjectSizePerCommit() ([]schema.ProjectSizeCommitRow, error)
	ProjectSizePerDay() ([]schema.ProjectSizeDayRow, error)

	// --- Productivity tables ---

	AppendProductivityPerCommit(rows []schema.ProductivityCommitRow) error
	AppendProductivityPerDay(rows []schema.ProductivityDayRow) error
	ProductivityPerCommit() ([]schema.ProductivityCommitRow, error)
	ProductivityPerDay() ([]schema.ProductivityDayRow, error)

	// --- Bus factor ---

	AppendBusFactor(rows []schema.BusFactorRow) error
	BusFactor() ([]schema.BusFactorRow, error)

	// --- Tracker tables ---

	AppendIssueIDs(rows []schema.IssueIDRow) ([]int64, error)
	AppendIssues(rows []schema.IssueRow) error
	Issues() ([]schema.IssueRow, error)
	AppendPullRequestIDs(rows []schema.PullRequestIDRow) ([]int64, error)
	AppendPullRequests(rows []schema.PullRequestRow) error

	// --- Derived issue tables ---

	AppendIssueSpoilage(rows []schema.SpoilageRow) error
	IssueSpoilage() ([]schema.SpoilageRow, error)
	AppendIssueDensity(rows []schema.DensityRow) error
	IssueDensity() ([]schema.DensityRow, error)

	// --- Lifecycle ---

	GetStatus() (schema.StoreStatus, error)
	Clear() error
	Close() error
}
