package iostore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/repopulse/internal/contract"
	"github.com/huangsam/repopulse/schema"
)

// newSQLiteStore opens a store over a throwaway database file.
func newSQLiteStore(t *testing.T) contract.MetricStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "repopulse.db")
	store, err := NewMetricStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCommitHashRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)

	keys, err := store.AppendCommitHashes([]string{"aaa", "bbb"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, keys)

	known, err := store.KnownCommitHashes()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"aaa": 1, "bbb": 2}, known)

	rows, err := store.CommitHashes()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "aaa", rows[0].CommitHash)
}

func TestDuplicateCommitHashSurfacesSentinel(t *testing.T) {
	store := newSQLiteStore(t)

	_, err := store.AppendCommitHashes([]string{"aaa"})
	require.NoError(t, err)

	_, err = store.AppendCommitHashes([]string{"aaa"})
	assert.ErrorIs(t, err, contract.ErrDuplicateKey)

	// The failed batch must not have half-written anything.
	known, err := store.KnownCommitHashes()
	require.NoError(t, err)
	assert.Len(t, known, 1)
}

func TestCommitLogRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)

	hashKeys, err := store.AppendCommitHashes([]string{"aaa", "bbb"})
	require.NoError(t, err)
	authorKeys, err := store.AppendAuthors([]schema.AuthorRow{{Author: "Ada", AuthorEmail: "ada@x"}})
	require.NoError(t, err)
	committerKeys, err := store.AppendCommitters([]schema.CommitterRow{{Committer: "Ada", CommitterEmail: "ada@x"}})
	require.NoError(t, err)

	parent := hashKeys[0]
	authoredAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	logs := []schema.CommitLogRow{
		{
			CommitHashID: hashKeys[0],
			AuthorID:     authorKeys[0],
			CommitterID:  committerKeys[0],
			AuthoredAt:   authoredAt,
			CommittedAt:  authoredAt.Add(5 * time.Minute),
			Message:      "initial import",
		},
		{
			CommitHashID:  hashKeys[1],
			AuthorID:      authorKeys[0],
			CommitterID:   committerKeys[0],
			ParentHashIDs: schema.RefList{&parent, nil},
			AuthoredAt:    authoredAt.AddDate(0, 0, 1),
			CommittedAt:   authoredAt.AddDate(0, 0, 1),
			Message:       "follow-up",
		},
	}
	require.NoError(t, store.AppendCommitLogs(logs))

	got, err := store.CommitLogs()
	require.NoError(t, err)
	require.Len(t, got, 2)

	// An empty reference list is persisted as [null].
	require.Len(t, got[0].ParentHashIDs, 1)
	assert.Nil(t, got[0].ParentHashIDs[0])
	assert.Equal(t, authoredAt, got[0].AuthoredAt)

	require.Len(t, got[1].ParentHashIDs, 2)
	assert.Equal(t, parent, *got[1].ParentHashIDs[0])
	assert.Nil(t, got[1].ParentHashIDs[1])
}

func TestCommitLogValidation(t *testing.T) {
	store := newSQLiteStore(t)

	err := store.AppendCommitLogs([]schema.CommitLogRow{{CommitHashID: 0, AuthorID: 1, CommitterID: 1}})
	require.Error(t, err)

	var verr *contract.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, schema.TableCommitLogs, verr.Table)
}

func TestSizeTablesRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)

	require.NoError(t, store.AppendFileSizes([]schema.FileSizeRow{
		{Language: "Go", Path: "main.go", SizeMetrics: schema.SizeMetrics{Lines: 10, Code: 8, Bytes: 100}, CommitHashID: 1},
	}))
	require.NoError(t, store.AppendProjectSizePerCommit([]schema.ProjectSizeCommitRow{
		{SizeMetrics: schema.SizeMetrics{Lines: 10, Code: 8, Bytes: 100}, CommitHashID: 1},
	}))

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.AppendProjectSizePerDay([]schema.ProjectSizeDayRow{
		{Date: date, SizeMetrics: schema.SizeMetrics{Lines: 10, Code: 8, Bytes: 100}},
	}))

	perCommit, err := store.ProjectSizePerCommit()
	require.NoError(t, err)
	require.Len(t, perCommit, 1)
	assert.Equal(t, int64(8), perCommit[0].Code)

	perDay, err := store.ProjectSizePerDay()
	require.NoError(t, err)
	require.Len(t, perDay, 1)
	assert.Equal(t, date, perDay[0].Date)
}

func TestIssueTablesRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)

	keys, err := store.AppendIssueIDs([]schema.IssueIDRow{{IssueID: "1"}, {IssueID: "2"}})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, keys)

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	closed := created.AddDate(0, 0, 2)
	require.NoError(t, store.AppendIssues([]schema.IssueRow{
		{IssueIDKey: keys[0], CreatedAt: created, ClosedAt: &closed},
		{IssueIDKey: keys[1], CreatedAt: created},
	}))

	issues, err := store.Issues()
	require.NoError(t, err)
	require.Len(t, issues, 2)
	require.NotNil(t, issues[0].ClosedAt)
	assert.Equal(t, closed, *issues[0].ClosedAt)
	assert.Nil(t, issues[1].ClosedAt)
}

func TestDerivedTablesRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.AppendProductivityPerDay([]schema.ProductivityDayRow{
		{Date: day, DeltaMetrics: schema.DeltaMetrics{DeltaCode: 5}},
	}))
	require.NoError(t, store.AppendBusFactor([]schema.BusFactorRow{
		{Date: day, CommitterID: 1, DeltaMetrics: schema.DeltaMetrics{DeltaCode: 5}},
	}))
	require.NoError(t, store.AppendIssueSpoilage([]schema.SpoilageRow{
		{Start: day, End: schema.DayEnd(day), OpenIssues: 2},
	}))
	require.NoError(t, store.AppendIssueDensity([]schema.DensityRow{
		{Date: day, OpenIssues: 2, SizeMetrics: schema.SizeMetrics{Code: 20}},
	}))

	productivity, err := store.ProductivityPerDay()
	require.NoError(t, err)
	require.Len(t, productivity, 1)
	assert.Equal(t, int64(5), productivity[0].DeltaCode)

	busFactor, err := store.BusFactor()
	require.NoError(t, err)
	require.Len(t, busFactor, 1)

	spoilage, err := store.IssueSpoilage()
	require.NoError(t, err)
	require.Len(t, spoilage, 1)
	assert.Equal(t, schema.DayEnd(day), spoilage[0].End)

	density, err := store.IssueDensity()
	require.NoError(t, err)
	require.Len(t, density, 1)
	assert.Equal(t, int64(20), density[0].Code)
}

func TestClearAndStatus(t *testing.T) {
	store := newSQLiteStore(t)

	_, err := store.AppendCommitHashes([]string{"aaa"})
	require.NoError(t, err)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(1), status.TableSizes[schema.TableCommitHashes])

	require.NoError(t, store.Clear())

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.TotalRows())
}

func TestAppendEmptyBatchesAreNoOps(t *testing.T) {
	store := newSQLiteStore(t)

	keys, err := store.AppendCommitHashes(nil)
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.NoError(t, store.AppendCommitLogs(nil))
	assert.NoError(t, store.AppendBusFactor(nil))
}
