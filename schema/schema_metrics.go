package schema

import "time"

// DeltaMetrics holds the first-difference columns of the size series.
type DeltaMetrics struct {
	DeltaLines    int64 `json:"delta_lines"`
	DeltaCode     int64 `json:"delta_code"`
	DeltaComments int64 `json:"delta_comments"`
	DeltaBlanks   int64 `json:"delta_blanks"`
	DeltaBytes    int64 `json:"delta_bytes"`
}

// Abs returns a copy with every delta replaced by its absolute value.
func (d DeltaMetrics) Abs() DeltaMetrics {
	abs := func(v int64) int64 {
		if v < 0 {
			return -v
		}
		return v
	}
	return DeltaMetrics{
		DeltaLines:    abs(d.DeltaLines),
		DeltaCode:     abs(d.DeltaCode),
		DeltaComments: abs(d.DeltaComments),
		DeltaBlanks:   abs(d.DeltaBlanks),
		DeltaBytes:    abs(d.DeltaBytes),
	}
}

// Add accumulates other into d.
func (d *DeltaMetrics) Add(other DeltaMetrics) {
	d.DeltaLines += other.DeltaLines
	d.DeltaCode += other.DeltaCode
	d.DeltaComments += other.DeltaComments
	d.DeltaBlanks += other.DeltaBlanks
	d.DeltaBytes += other.DeltaBytes
}

// ProductivityCommitRow is one row of project_productivity_per_commit.
// The first commit of a series carries all-zero deltas.
type ProductivityCommitRow struct {
	ID           int64 `json:"id"`
	DeltaMetrics `json:"deltas"`
	CommitHashID int64 `json:"commit_hash_id"`
}

// ProductivityDayRow is one row of project_productivity_per_day: the
// day-over-day difference of the flood-filled daily size series.
type ProductivityDayRow struct {
	ID           int64     `json:"id"`
	Date         time.Time `json:"date"`
	DeltaMetrics `json:"deltas"`
}

// BusFactorRow is one row of bus_factor: the absolute churn a committer
// produced on one day. A day with no attributable committer carries the
// sentinel (-1) committer and metrics.
type BusFactorRow struct {
	ID           int64     `json:"id"`
	Date         time.Time `json:"date"`
	CommitterID  int64     `json:"committer_id"`
	DeltaMetrics `json:"deltas"`
}

// IssueFact is one raw issue as fetched from the tracker. ClosedAt is nil
// while the issue is still open.
type IssueFact struct {
	IssueID   string
	CreatedAt time.Time
	ClosedAt  *time.Time
}

// IssueIDRow is one row of the issue_ids table.
type IssueIDRow struct {
	ID      int64  `json:"id"`
	IssueID string `json:"issue_id"`
}

// IssueRow is one row of the issues table.
type IssueRow struct {
	ID         int64      `json:"id"`
	IssueIDKey int64      `json:"issue_id_key"`
	CreatedAt  time.Time  `json:"created_at"`
	ClosedAt   *time.Time `json:"closed_at"`
}

// PullRequestIDRow is one row of the pull_request_ids table.
type PullRequestIDRow struct {
	ID            int64  `json:"id"`
	PullRequestID string `json:"pull_request_id"`
}

// PullRequestRow is one row of the pull_requests table.
type PullRequestRow struct {
	ID               int64      `json:"id"`
	PullRequestIDKey int64      `json:"pull_request_id_key"`
	CreatedAt        time.Time  `json:"created_at"`
	ClosedAt         *time.Time `json:"closed_at"`
}

// SpoilageRow is one row of issue_spoilage_per_day: the count of issues
// whose open interval fully covers the daily interval [Start, End].
type SpoilageRow struct {
	ID         int64     `json:"id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OpenIssues int64     `json:"open_issues"`
}

// DensityRow is one row of issue_density_per_day: the spoilage count
// aligned with the same-day project size. No ratio is computed here.
type DensityRow struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	OpenIssues  int64     `json:"open_issues"`
	SizeMetrics `json:"size"`
}
