package iostore

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/huangsam/repopulse/schema"
)

// colKind is the portable column type resolved per backend at DDL time.
type colKind int

const (
	kindKey      colKind = iota // auto-increment primary key
	kindInt                     // 64-bit integer, NOT NULL
	kindText                    // free text, NOT NULL
	kindUniqueText              // free text, NOT NULL UNIQUE
	kindTime                    // timestamp, NOT NULL
	kindNullTime                // nullable timestamp
)

type column struct {
	name string
	kind colKind
}

type tableSpec struct {
	name    string
	columns []column
}

// insertColumns returns every column except the generated key, in
// declaration order. This is also the order write.go binds arguments.
func (ts tableSpec) insertColumns() []string {
	names := make([]string, 0, len(ts.columns))
	for _, col := range ts.columns {
		if col.kind == kindKey {
			continue
		}
		names = append(names, col.name)
	}
	return names
}

func sizeColumns() []column {
	return []column{
		{"lines", kindInt},
		{"code", kindInt},
		{"comments", kindInt},
		{"blanks", kindInt},
		{"bytes", kindInt},
	}
}

func deltaColumns() []column {
	return []column{
		{"delta_lines", kindInt},
		{"delta_code", kindInt},
		{"delta_comments", kindInt},
		{"delta_blanks", kindInt},
		{"delta_bytes", kindInt},
	}
}

func withColumns(head []column, tail ...column) []column {
	return append(append([]column{}, head...), tail...)
}

// metricTableSpecs declares every metric table in dependency order,
// matching schema.AllTables.
var metricTableSpecs = []tableSpec{
	{schema.TableCommitHashes, []column{
		{"id", kindKey},
		{"commit_hash", kindUniqueText},
	}},
	{schema.TableAuthors, []column{
		{"id", kindKey},
		{"author", kindText},
		{"author_email", kindText},
	}},
	{schema.TableCommitters, []column{
		{"id", kindKey},
		{"committer", kindText},
		{"committer_email", kindText},
	}},
	{schema.TableCommitLogs, []column{
		{"id", kindKey},
		{"commit_hash_id", kindInt},
		{"author_id", kindInt},
		{"committer_id", kindInt},
		{"co_author_ids", kindText},
		{"parent_hash_ids", kindText},
		{"authored_at", kindTime},
		{"committed_at", kindTime},
		{"encoding", kindText},
		{"message", kindText},
		{"signature", kindText},
	}},
	{schema.TableReleases, []column{
		{"id", kindKey},
		{"commit_hash_id", kindInt},
	}},
	{schema.TableIssueIDs, []column{
		{"id", kindKey},
		{"issue_id", kindText},
	}},
	{schema.TableIssues, []column{
		{"id", kindKey},
		{"issue_id_key", kindInt},
		{"created_at", kindTime},
		{"closed_at", kindNullTime},
	}},
	{schema.TablePullRequestIDs, []column{
		{"id", kindKey},
		{"pull_request_id", kindText},
	}},
	{schema.TablePullRequests, []column{
		{"id", kindKey},
		{"pull_request_id_key", kindInt},
		{"created_at", kindTime},
		{"closed_at", kindNullTime},
	}},
	{schema.TableFileSizePerCommit, withColumns([]column{
		{"id", kindKey},
		{"language", kindText},
		{"path", kindText},
	}, append(sizeColumns(), column{"commit_hash_id", kindInt})...)},
	{schema.TableProjectSizePerCommit, withColumns([]column{
		{"id", kindKey},
	}, append(sizeColumns(), column{"commit_hash_id", kindInt})...)},
	{schema.TableProjectSizePerDay, withColumns([]column{
		{"id", kindKey},
		{"date", kindTime},
	}, sizeColumns()...)},
	{schema.TableProductivityPerCommit, withColumns([]column{
		{"id", kindKey},
	}, append(deltaColumns(), column{"commit_hash_id", kindInt})...)},
	{schema.TableProductivityPerDay, withColumns([]column{
		{"id", kindKey},
		{"date", kindTime},
	}, deltaColumns()...)},
	{schema.TableBusFactor, withColumns([]column{
		{"id", kindKey},
		{"date", kindTime},
		{"committer_id", kindInt},
	}, deltaColumns()...)},
	{schema.TableIssueSpoilagePerDay, []column{
		{"id", kindKey},
		{"interval_start", kindTime},
		{"interval_end", kindTime},
		{"open_issues", kindInt},
	}},
	{schema.TableIssueDensityPerDay, withColumns([]column{
		{"id", kindKey},
		{"date", kindTime},
		{"open_issues", kindInt},
	}, sizeColumns()...)},
}

// specFor looks up a table's declaration by name.
func specFor(name string) tableSpec {
	for _, spec := range metricTableSpecs {
		if spec.name == name {
			return spec
		}
	}
	// Table names are compile-time constants, so a miss is a bug.
	panic(fmt.Sprintf("unknown metric table %q", name))
}

// columnDDL resolves a portable column kind to backend SQL.
func columnDDL(kind colKind, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		switch kind {
		case kindKey:
			return "BIGINT AUTO_INCREMENT PRIMARY KEY"
		case kindInt:
			return "BIGINT NOT NULL"
		case kindText:
			return "TEXT NOT NULL"
		case kindUniqueText:
			return "VARCHAR(255) NOT NULL UNIQUE"
		case kindTime:
			return "DATETIME(6) NOT NULL"
		default: // kindNullTime
			return "DATETIME(6)"
		}

	case schema.PostgreSQLBackend:
		switch kind {
		case kindKey:
			return "BIGSERIAL PRIMARY KEY"
		case kindInt:
			return "BIGINT NOT NULL"
		case kindText:
			return "TEXT NOT NULL"
		case kindUniqueText:
			return "TEXT NOT NULL UNIQUE"
		case kindTime:
			return "TIMESTAMPTZ NOT NULL"
		default: // kindNullTime
			return "TIMESTAMPTZ"
		}

	default: // SQLite
		switch kind {
		case kindKey:
			return "INTEGER PRIMARY KEY AUTOINCREMENT"
		case kindInt:
			return "INTEGER NOT NULL"
		case kindText:
			return "TEXT NOT NULL"
		case kindUniqueText:
			return "TEXT NOT NULL UNIQUE"
		case kindTime:
			return "TEXT NOT NULL"
		default: // kindNullTime
			return "TEXT"
		}
	}
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
func getCreateTableQuery(spec tableSpec, backend schema.DatabaseBackend) string {
	defs := make([]string, 0, len(spec.columns))
	for _, col := range spec.columns {
		defs = append(defs, fmt.Sprintf("%s %s", col.name, columnDDL(col.kind, backend)))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n);",
		quoteTableName(spec.name, backend), strings.Join(defs, ",\n\t"))
}

// createMetricTables creates every metric table.
func createMetricTables(db *sql.DB, backend schema.DatabaseBackend) error {
	for _, spec := range metricTableSpecs {
		if err := validateTableName(spec.name); err != nil {
			return err
		}
		if _, err := db.Exec(getCreateTableQuery(spec, backend)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", spec.name, err)
		}
	}
	return nil
}
