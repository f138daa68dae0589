package iostore

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/huangsam/repopulse/schema"
)

// selectQuery builds a full-table SELECT ordered by generated key, so
// readers observe rows in the order they were inserted.
func (ms *MetricStoreImpl) selectQuery(table string) string {
	spec := specFor(table)
	cols := make([]string, 0, len(spec.columns))
	for _, col := range spec.columns {
		cols = append(cols, col.name)
	}
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY id",
		strings.Join(cols, ", "), quoteTableName(table, ms.backend))
}

// queryAll runs the table's SELECT and drives scan for each row.
func (ms *MetricStoreImpl) queryAll(table string, scan func(*sql.Rows) error) error {
	rows, err := ms.db.Query(ms.selectQuery(table))
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("failed to scan %s row: %w", table, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating %s: %w", table, err)
	}
	return nil
}

// CommitHashes returns every commit hash row in insertion order.
func (ms *MetricStoreImpl) CommitHashes() ([]schema.CommitHashRow, error) {
	var results []schema.CommitHashRow
	err := ms.queryAll(schema.TableCommitHashes, func(rows *sql.Rows) error {
		var row schema.CommitHashRow
		if err := rows.Scan(&row.ID, &row.CommitHash); err != nil {
			return err
		}
		results = append(results, row)
		return nil
	})
	return results, err
}

// CommitLogs returns every commit log row in insertion order.
func (ms *MetricStoreImpl) CommitLogs() ([]schema.CommitLogRow, error) {
	var results []schema.CommitLogRow
	err := ms.queryAll(schema.TableCommitLogs, func(rows *sql.Rows) error {
		var row schema.CommitLogRow
		var coAuthors, parents string
		var authoredAt, committedAt timeScanner
		if err := rows.Scan(&row.ID, &row.CommitHashID, &row.AuthorID, &row.CommitterID,
			&coAuthors, &parents, &authoredAt, &committedAt,
			&row.Encoding, &row.Message, &row.Signature); err != nil {
			return err
		}
		var err error
		if row.CoAuthorIDs, err = schema.ParseRefList(coAuthors); err != nil {
			return fmt.Errorf("bad co_author_ids: %w", err)
		}
		if row.ParentHashIDs, err = schema.ParseRefList(parents); err != nil {
			return fmt.Errorf("bad parent_hash_ids: %w", err)
		}
		row.AuthoredAt = authoredAt.t
		row.CommittedAt = committedAt.t
		results = append(results, row)
		return nil
	})
	return results, err
}

// ProjectSizePerCommit returns the per-commit size series.
func (ms *MetricStoreImpl) ProjectSizePerCommit() ([]schema.ProjectSizeCommitRow, error) {
	var results []schema.ProjectSizeCommitRow
	err := ms.queryAll(schema.TableProjectSizePerCommit, func(rows *sql.Rows) error {
		var row schema.ProjectSizeCommitRow
		if err := rows.Scan(&row.ID, &row.Lines, &row.Code, &row.Comments, &row.Blanks, &row.Bytes,
			&row.CommitHashID); err != nil {
			return err
		}
		results = append(results, row)
		return nil
	})
	return results, err
}

// ProjectSizePerDay returns the continuous daily size series.
func (ms *MetricStoreImpl) ProjectSizePerDay() ([]schema.ProjectSizeDayRow, error) {
	var results []schema.ProjectSizeDayRow
	err := ms.queryAll(schema.TableProjectSizePerDay, func(rows *sql.Rows) error {
		var row schema.ProjectSizeDayRow
		var date timeScanner
		if err := rows.Scan(&row.ID, &date,
			&row.Lines, &row.Code, &row.Comments, &row.Blanks, &row.Bytes); err != nil {
			return err
		}
		row.Date = date.t
		results = append(results, row)
		return nil
	})
	return results, err
}

// ProductivityPerCommit returns the per-commit delta series.
func (ms *MetricStoreImpl) ProductivityPerCommit() ([]schema.ProductivityCommitRow, error) {
	var results []schema.ProductivityCommitRow
	err := ms.queryAll(schema.TableProductivityPerCommit, func(rows *sql.Rows) error {
		var row schema.ProductivityCommitRow
		if err := rows.Scan(&row.ID, &row.DeltaLines, &row.DeltaCode, &row.DeltaComments,
			&row.DeltaBlanks, &row.DeltaBytes, &row.CommitHashID); err != nil {
			return err
		}
		results = append(results, row)
		return nil
	})
	return results, err
}

// ProductivityPerDay returns the per-day delta series.
func (ms *MetricStoreImpl) ProductivityPerDay() ([]schema.ProductivityDayRow, error) {
	var results []schema.ProductivityDayRow
	err := ms.queryAll(schema.TableProductivityPerDay, func(rows *sql.Rows) error {
		var row schema.ProductivityDayRow
		var date timeScanner
		if err := rows.Scan(&row.ID, &date, &row.DeltaLines, &row.DeltaCode, &row.DeltaComments,
			&row.DeltaBlanks, &row.DeltaBytes); err != nil {
			return err
		}
		row.Date = date.t
		results = append(results, row)
		return nil
	})
	return results, err
}

// BusFactor returns the per-day per-committer churn table.
func (ms *MetricStoreImpl) BusFactor() ([]schema.BusFactorRow, error) {
	var results []schema.BusFactorRow
	err := ms.queryAll(schema.TableBusFactor, func(rows *sql.Rows) error {
		var row schema.BusFactorRow
		var date timeScanner
		if err := rows.Scan(&row.ID, &date, &row.CommitterID, &row.DeltaLines, &row.DeltaCode,
			&row.DeltaComments, &row.DeltaBlanks, &row.DeltaBytes); err != nil {
			return err
		}
		row.Date = date.t
		results = append(results, row)
		return nil
	})
	return results, err
}

// Issues returns every issue fact row in insertion order.
func (ms *MetricStoreImpl) Issues() ([]schema.IssueRow, error) {
	var results []schema.IssueRow
	err := ms.queryAll(schema.TableIssues, func(rows *sql.Rows) error {
		var row schema.IssueRow
		var createdAt timeScanner
		var closedAt nullTimeScanner
		if err := rows.Scan(&row.ID, &row.IssueIDKey, &createdAt, &closedAt); err != nil {
			return err
		}
		row.CreatedAt = createdAt.t
		row.ClosedAt = closedAt.ptr()
		results = append(results, row)
		return nil
	})
	return results, err
}

// IssueSpoilage returns the daily open-issue series.
func (ms *MetricStoreImpl) IssueSpoilage() ([]schema.SpoilageRow, error) {
	var results []schema.SpoilageRow
	err := ms.queryAll(schema.TableIssueSpoilagePerDay, func(rows *sql.Rows) error {
		var row schema.SpoilageRow
		var start, end timeScanner
		if err := rows.Scan(&row.ID, &start, &end, &row.OpenIssues); err != nil {
			return err
		}
		row.Start = start.t
		row.End = end.t
		results = append(results, row)
		return nil
	})
	return results, err
}

// IssueDensity returns the aligned spoilage and size series.
func (ms *MetricStoreImpl) IssueDensity() ([]schema.DensityRow, error) {
	var results []schema.DensityRow
	err := ms.queryAll(schema.TableIssueDensityPerDay, func(rows *sql.Rows) error {
		var row schema.DensityRow
		var date timeScanner
		if err := rows.Scan(&row.ID, &date, &row.OpenIssues,
			&row.Lines, &row.Code, &row.Comments, &row.Blanks, &row.Bytes); err != nil {
			return err
		}
		row.Date = date.t
		results = append(results, row)
		return nil
	})
	return results, err
}
