package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the metric store.
	DatabaseBackend string
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// Metric table names. The write order within one ingest run matters:
// commit_hashes, authors and committers must be persisted before the
// commit_logs rows that reference their generated keys.
const (
	TableCommitHashes   = "commit_hashes"
	TableAuthors        = "authors"
	TableCommitters     = "committers"
	TableCommitLogs     = "commit_logs"
	TableReleases       = "releases"
	TableIssueIDs       = "issue_ids"
	TableIssues         = "issues"
	TablePullRequestIDs = "pull_request_ids"
	TablePullRequests   = "pull_requests"

	TableFileSizePerCommit    = "file_size_per_commit"
	TableProjectSizePerCommit = "project_size_per_commit"
	TableProjectSizePerDay    = "project_size_per_day"

	TableProductivityPerCommit = "project_productivity_per_commit"
	TableProductivityPerDay    = "project_productivity_per_day"
	TableBusFactor             = "bus_factor"
	TableIssueSpoilagePerDay   = "issue_spoilage_per_day"
	TableIssueDensityPerDay    = "issue_density_per_day"
)

// AllTables lists every metric table in dependency order.
var AllTables = []string{
	TableCommitHashes,
	TableAuthors,
	TableCommitters,
	TableCommitLogs,
	TableReleases,
	TableIssueIDs,
	TableIssues,
	TablePullRequestIDs,
	TablePullRequests,
	TableFileSizePerCommit,
	TableProjectSizePerCommit,
	TableProjectSizePerDay,
	TableProductivityPerCommit,
	TableProductivityPerDay,
	TableBusFactor,
	TableIssueSpoilagePerDay,
	TableIssueDensityPerDay,
}

// SentinelCommitter marks a bus-factor row for a day whose committer group
// came up empty. Kept as -1 for compatibility with existing consumers.
const SentinelCommitter int64 = -1

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}
