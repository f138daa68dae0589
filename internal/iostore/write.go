package iostore

import (
	"fmt"
	"strings"

	"github.com/huangsam/repopulse/internal/contract"
	"github.com/huangsam/repopulse/schema"
)

// insertQuery builds a single-row INSERT for the table with
// backend-appropriate placeholders.
func (ms *MetricStoreImpl) insertQuery(table string) string {
	spec := specFor(table)
	cols := spec.insertColumns()
	placeholders := make([]string, len(cols))
	for i := range cols {
		if ms.backend == schema.PostgreSQLBackend {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		} else {
			placeholders[i] = "?"
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteTableName(table, ms.backend),
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "))
}

// appendRows inserts all rows for one stage inside a single transaction
// and returns the generated keys in insert order. A failure rolls the
// whole batch back so a stage never half-writes.
func (ms *MetricStoreImpl) appendRows(table string, rows [][]any) ([]int64, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	tx, err := ms.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for %s: %w", table, err)
	}

	query := ms.insertQuery(table)
	keys := make([]int64, 0, len(rows))

	if ms.backend == schema.PostgreSQLBackend {
		// LastInsertId is not supported by pgx, so ask for the key back.
		stmt, prepErr := tx.Prepare(query + " RETURNING id")
		if prepErr != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("failed to prepare insert for %s: %w", table, prepErr)
		}
		for _, args := range rows {
			var id int64
			if scanErr := stmt.QueryRow(args...).Scan(&id); scanErr != nil {
				_ = tx.Rollback()
				return nil, fmt.Errorf("failed to insert into %s: %w", table, mapWriteError(scanErr))
			}
			keys = append(keys, id)
		}
	} else {
		stmt, prepErr := tx.Prepare(query)
		if prepErr != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("failed to prepare insert for %s: %w", table, prepErr)
		}
		for _, args := range rows {
			result, execErr := stmt.Exec(args...)
			if execErr != nil {
				_ = tx.Rollback()
				return nil, fmt.Errorf("failed to insert into %s: %w", table, mapWriteError(execErr))
			}
			id, idErr := result.LastInsertId()
			if idErr != nil {
				_ = tx.Rollback()
				return nil, fmt.Errorf("failed to read generated key for %s: %w", table, idErr)
			}
			keys = append(keys, id)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit %s batch: %w", table, err)
	}
	return keys, nil
}

// KnownCommitHashes returns every persisted commit hash keyed to its
// generated primary key.
func (ms *MetricStoreImpl) KnownCommitHashes() (map[string]int64, error) {
	rows, err := ms.CommitHashes()
	if err != nil {
		return nil, err
	}
	known := make(map[string]int64, len(rows))
	for _, row := range rows {
		known[row.CommitHash] = row.ID
	}
	return known, nil
}

// AppendCommitHashes persists new hashes and returns their keys in
// input order.
func (ms *MetricStoreImpl) AppendCommitHashes(hashes []string) ([]int64, error) {
	args := make([][]any, 0, len(hashes))
	for _, hash := range hashes {
		if hash == "" {
			return nil, &contract.ValidationError{Table: schema.TableCommitHashes, Field: "commit_hash", Reason: "must not be empty"}
		}
		args = append(args, []any{hash})
	}
	return ms.appendRows(schema.TableCommitHashes, args)
}

// AppendAuthors persists author rows and returns their keys.
func (ms *MetricStoreImpl) AppendAuthors(rows []schema.AuthorRow) ([]int64, error) {
	args := make([][]any, 0, len(rows))
	for _, row := range rows {
		if row.AuthorEmail == "" {
			return nil, &contract.ValidationError{Table: schema.TableAuthors, Field: "author_email", Reason: "must not be empty"}
		}
		args = append(args, []any{row.Author, row.AuthorEmail})
	}
	return ms.appendRows(schema.TableAuthors, args)
}

// AppendCommitters persists committer rows and returns their keys.
func (ms *MetricStoreImpl) AppendCommitters(rows []schema.CommitterRow) ([]int64, error) {
	args := make([][]any, 0, len(rows))
	for _, row := range rows {
		if row.CommitterEmail == "" {
			return nil, &contract.ValidationError{Table: schema.TableCommitters, Field: "committer_email", Reason: "must not be empty"}
		}
		args = append(args, []any{row.Committer, row.CommitterEmail})
	}
	return ms.appendRows(schema.TableCommitters, args)
}

// AppendCommitLogs persists commit log rows. Reference lists are stored
// as JSON arrays; an empty list is widened to [null] before writing.
func (ms *MetricStoreImpl) AppendCommitLogs(rows []schema.CommitLogRow) error {
	args := make([][]any, 0, len(rows))
	for _, row := range rows {
		if row.CommitHashID <= 0 {
			return &contract.ValidationError{Table: schema.TableCommitLogs, Field: "commit_hash_id", Reason: "must be a positive key"}
		}
		if row.AuthorID <= 0 || row.CommitterID <= 0 {
			return &contract.ValidationError{Table: schema.TableCommitLogs, Field: "author_id", Reason: "author and committer keys must be positive"}
		}
		coAuthors, err := row.CoAuthorIDs.MarshalText()
		if err != nil {
			return &contract.ValidationError{Table: schema.TableCommitLogs, Field: "co_author_ids", Reason: err.Error()}
		}
		parents, err := row.ParentHashIDs.MarshalText()
		if err != nil {
			return &contract.ValidationError{Table: schema.TableCommitLogs, Field: "parent_hash_ids", Reason: err.Error()}
		}
		args = append(args, []any{
			row.CommitHashID, row.AuthorID, row.CommitterID,
			string(coAuthors), string(parents),
			formatTime(row.AuthoredAt, ms.backend), formatTime(row.CommittedAt, ms.backend),
			row.Encoding, row.Message, row.Signature,
		})
	}
	_, err := ms.appendRows(schema.TableCommitLogs, args)
	return err
}

// AppendReleases persists release rows.
func (ms *MetricStoreImpl) AppendReleases(rows []schema.ReleaseRow) error {
	args := make([][]any, 0, len(rows))
	for _, row := range rows {
		if row.CommitHashID <= 0 {
			return &contract.ValidationError{Table: schema.TableReleases, Field: "commit_hash_id", Reason: "must be a positive key"}
		}
		args = append(args, []any{row.CommitHashID})
	}
	_, err := ms.appendRows(schema.TableReleases, args)
	return err
}

// AppendFileSizes persists per-file size rows.
func (ms *MetricStoreImpl) AppendFileSizes(rows []schema.FileSizeRow) error {
	args := make([][]any, 0, len(rows))
	for _, row := range rows {
		args = append(args, []any{
			row.Language, row.Path,
			row.Lines, row.Code, row.Comments, row.Blanks, row.Bytes,
			row.CommitHashID,
		})
	}
	_, err := ms.appendRows(schema.TableFileSizePerCommit, args)
	return err
}

// AppendProjectSizePerCommit persists per-commit size sums.
func (ms *MetricStoreImpl) AppendProjectSizePerCommit(rows []schema.ProjectSizeCommitRow) error {
	args := make([][]any, 0, len(rows))
	for _, row := range rows {
		args = append(args, []any{
			row.Lines, row.Code, row.Comments, row.Blanks, row.Bytes,
			row.CommitHashID,
		})
	}
	_, err := ms.appendRows(schema.TableProjectSizePerCommit, args)
	return err
}

// AppendProjectSizePerDay persists the continuous daily size series.
func (ms *MetricStoreImpl) AppendProjectSizePerDay(rows []schema.ProjectSizeDayRow) error {
	args := make([][]any, 0, len(rows))
	for _, row := range rows {
		args = append(args, []any{
			formatTime(row.Date, ms.backend),
			row.Lines, row.Code, row.Comments, row.Blanks, row.Bytes,
		})
	}
	_, err := ms.appendRows(schema.TableProjectSizePerDay, args)
	return err
}

// AppendProductivityPerCommit persists per-commit deltas.
func (ms *MetricStoreImpl) AppendProductivityPerCommit(rows []schema.ProductivityCommitRow) error {
	args := make([][]any, 0, len(rows))
	for _, row := range rows {
		args = append(args, []any{
			row.DeltaLines, row.DeltaCode, row.DeltaComments, row.DeltaBlanks, row.DeltaBytes,
			row.CommitHashID,
		})
	}
	_, err := ms.appendRows(schema.TableProductivityPerCommit, args)
	return err
}

// AppendProductivityPerDay persists per-day deltas.
func (ms *MetricStoreImpl) AppendProductivityPerDay(rows []schema.ProductivityDayRow) error {
	args := make([][]any, 0, len(rows))
	for _, row := range rows {
		args = append(args, []any{
			formatTime(row.Date, ms.backend),
			row.DeltaLines, row.DeltaCode, row.DeltaComments, row.DeltaBlanks, row.DeltaBytes,
		})
	}
	_, err := ms.appendRows(schema.TableProductivityPerDay, args)
	return err
}

// AppendBusFactor persists per-day per-committer churn rows.
func (ms *MetricStoreImpl) AppendBusFactor(rows []schema.BusFactorRow) error {
	args := make([][]any, 0, len(rows))
	for _, row := range rows {
		args = append(args, []any{
			formatTime(row.Date, ms.backend),
			row.CommitterID,
			row.DeltaLines, row.DeltaCode, row.DeltaComments, row.DeltaBlanks, row.DeltaBytes,
		})
	}
	_, err := ms.appendRows(schema.TableBusFactor, args)
	return err
}

// AppendIssueIDs persists issue identity rows and returns their keys.
func (ms *MetricStoreImpl) AppendIssueIDs(rows []schema.IssueIDRow) ([]int64, error) {
	args := make([][]any, 0, len(rows))
	for _, row := range rows {
		if row.IssueID == "" {
			return nil, &contract.ValidationError{Table: schema.TableIssueIDs, Field: "issue_id", Reason: "must not be empty"}
		}
		args = append(args, []any{row.IssueID})
	}
	return ms.appendRows(schema.TableIssueIDs, args)
}

// AppendIssues persists issue fact rows.
func (ms *MetricStoreImpl) AppendIssues(rows []schema.IssueRow) error {
	args := make([][]any, 0, len(rows))
	for _, row := range rows {
		if row.IssueIDKey <= 0 {
			return &contract.ValidationError{Table: schema.TableIssues, Field: "issue_id_key", Reason: "must be a positive key"}
		}
		args = append(args, []any{
			row.IssueIDKey,
			formatTime(row.CreatedAt, ms.backend),
			formatNullTime(row.ClosedAt, ms.backend),
		})
	}
	_, err := ms.appendRows(schema.TableIssues, args)
	return err
}

// AppendPullRequestIDs persists pull request identity rows and returns
// their keys.
func (ms *MetricStoreImpl) AppendPullRequestIDs(rows []schema.PullRequestIDRow) ([]int64, error) {
	args := make([][]any, 0, len(rows))
	for _, row := range rows {
		if row.PullRequestID == "" {
			return nil, &contract.ValidationError{Table: schema.TablePullRequestIDs, Field: "pull_request_id", Reason: "must not be empty"}
		}
		args = append(args, []any{row.PullRequestID})
	}
	return ms.appendRows(schema.TablePullRequestIDs, args)
}

// AppendPullRequests persists pull request fact rows.
func (ms *MetricStoreImpl) AppendPullRequests(rows []schema.PullRequestRow) error {
	args := make([][]any, 0, len(rows))
	for _, row := range rows {
		if row.PullRequestIDKey <= 0 {
			return &contract.ValidationError{Table: schema.TablePullRequests, Field: "pull_request_id_key", Reason: "must be a positive key"}
		}
		args = append(args, []any{
			row.PullRequestIDKey,
			formatTime(row.CreatedAt, ms.backend),
			formatNullTime(row.ClosedAt, ms.backend),
		})
	}
	_, err := ms.appendRows(schema.TablePullRequests, args)
	return err
}

// AppendIssueSpoilage persists the daily open-issue counts.
func (ms *MetricStoreImpl) AppendIssueSpoilage(rows []schema.SpoilageRow) error {
	args := make([][]any, 0, len(rows))
	for _, row := range rows {
		args = append(args, []any{
			formatTime(row.Start, ms.backend),
			formatTime(row.End, ms.backend),
			row.OpenIssues,
		})
	}
	_, err := ms.appendRows(schema.TableIssueSpoilagePerDay, args)
	return err
}

// AppendIssueDensity persists the aligned spoilage and size series.
func (ms *MetricStoreImpl) AppendIssueDensity(rows []schema.DensityRow) error {
	args := make([][]any, 0, len(rows))
	for _, row := range rows {
		args = append(args, []any{
			formatTime(row.Date, ms.backend),
			row.OpenIssues,
			row.Lines, row.Code, row.Comments, row.Blanks, row.Bytes,
		})
	}
	_, err := ms.appendRows(schema.TableIssueDensityPerDay, args)
	return err
}
