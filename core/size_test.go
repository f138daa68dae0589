package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/huangsam/repopulse/schema"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	assert.NoError(t, err)
	return parsed
}

func TestSumFileSizes(t *testing.T) {
	rows := []schema.FileSizeRow{
		{Language: "Go", Path: "main.go", SizeMetrics: schema.SizeMetrics{Lines: 10, Code: 8, Comments: 1, Blanks: 1, Bytes: 200}},
		{Language: "Go", Path: "util.go", SizeMetrics: schema.SizeMetrics{Lines: 5, Code: 4, Blanks: 1, Bytes: 90}},
	}

	total := SumFileSizes(rows)
	assert.Equal(t, schema.SizeMetrics{Lines: 15, Code: 12, Comments: 1, Blanks: 2, Bytes: 290}, total)
}

func TestSumFileSizesEmpty(t *testing.T) {
	assert.Equal(t, schema.SizeMetrics{}, SumFileSizes(nil))
}

func TestBuildDailySizeLastCommitWinsAndForwardFill(t *testing.T) {
	// Three commits on day 1 with cumulative code counts 10, 15, 20; no
	// commits on days 2-3; one commit on day 4 with count 25.
	d1 := day(t, "2024-03-01")
	commits := []CommitSize{
		{CommitHashID: 1, CommittedAt: d1.Add(9 * time.Hour), Size: schema.SizeMetrics{Code: 10}},
		{CommitHashID: 2, CommittedAt: d1.Add(12 * time.Hour), Size: schema.SizeMetrics{Code: 15}},
		{CommitHashID: 3, CommittedAt: d1.Add(17 * time.Hour), Size: schema.SizeMetrics{Code: 20}},
		{CommitHashID: 4, CommittedAt: day(t, "2024-03-04").Add(10 * time.Hour), Size: schema.SizeMetrics{Code: 25}},
	}

	rows := BuildDailySize(commits, day(t, "2024-03-04"))
	assert.Len(t, rows, 4)

	wantCode := []int64{20, 20, 20, 25}
	for i, row := range rows {
		assert.Equal(t, d1.AddDate(0, 0, i), row.Date)
		assert.Equal(t, wantCode[i], row.Code)
	}
}

func TestBuildDailySizeExtendsToToday(t *testing.T) {
	commits := []CommitSize{
		{CommitHashID: 1, CommittedAt: day(t, "2024-03-01"), Size: schema.SizeMetrics{Code: 7}},
	}

	rows := BuildDailySize(commits, day(t, "2024-03-05"))
	assert.Len(t, rows, 5)
	for _, row := range rows {
		assert.Equal(t, int64(7), row.Code)
	}
}

func TestBuildDailySizeNoGapsNoDuplicates(t *testing.T) {
	commits := []CommitSize{
		{CommitHashID: 1, CommittedAt: day(t, "2024-02-27"), Size: schema.SizeMetrics{Code: 1}},
		{CommitHashID: 2, CommittedAt: day(t, "2024-03-02"), Size: schema.SizeMetrics{Code: 2}},
	}

	rows := BuildDailySize(commits, day(t, "2024-03-03"))

	seen := make(map[time.Time]struct{})
	for i, row := range rows {
		_, dup := seen[row.Date]
		assert.False(t, dup, "duplicate day %s", row.Date)
		seen[row.Date] = struct{}{}
		if i > 0 {
			assert.Equal(t, rows[i-1].Date.AddDate(0, 0, 1), row.Date)
		}
	}
	// Leap-year february: 27, 28, 29, then March 1-3.
	assert.Len(t, rows, 6)
}

func TestBuildDailySizeEmpty(t *testing.T) {
	assert.Nil(t, BuildDailySize(nil, day(t, "2024-03-01")))
}
