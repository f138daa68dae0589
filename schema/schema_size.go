package schema

import "time"

// SizeMetrics holds the code-size columns shared by the size tables.
type SizeMetrics struct {
	Lines    int64 `json:"lines"`
	Code     int64 `json:"code"`
	Comments int64 `json:"comments"`
	Blanks   int64 `json:"blanks"`
	Bytes    int64 `json:"bytes"`
}

// Add accumulates other into m.
func (m *SizeMetrics) Add(other SizeMetrics) {
	m.Lines += other.Lines
	m.Code += other.Code
	m.Comments += other.Comments
	m.Blanks += other.Blanks
	m.Bytes += other.Bytes
}

// FileSizeRow is one row of file_size_per_commit: the measured size of a
// single file at a single commit.
type FileSizeRow struct {
	ID           int64  `json:"id"`
	Language     string `json:"language"`
	Path         string `json:"path"`
	SizeMetrics  `json:"size"`
	CommitHashID int64 `json:"commit_hash_id"`
}

// ProjectSizeCommitRow is one row of project_size_per_commit: the summed
// size of the whole tree at a single commit.
type ProjectSizeCommitRow struct {
	ID           int64 `json:"id"`
	SizeMetrics  `json:"size"`
	CommitHashID int64 `json:"commit_hash_id"`
}

// ProjectSizeDayRow is one row of project_size_per_day. The series is
// continuous: every calendar day from the first commit's day through
// "today" has exactly one row, forward-filled on days with no commits.
type ProjectSizeDayRow struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	SizeMetrics `json:"size"`
}
