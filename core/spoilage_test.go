package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/huangsam/repopulse/schema"
)

func TestBuildIssueIntervals(t *testing.T) {
	created := day(t, "2024-03-01").Add(10 * time.Hour)
	closed := day(t, "2024-03-03").Add(15 * time.Hour)
	today := day(t, "2024-03-05")

	intervals := BuildIssueIntervals([]schema.IssueRow{
		{IssueIDKey: 1, CreatedAt: created, ClosedAt: &closed},
		{IssueIDKey: 2, CreatedAt: created},
	}, today)

	assert.Len(t, intervals, 2)
	assert.Equal(t, day(t, "2024-03-01"), intervals[0].Start)
	assert.Equal(t, schema.DayEnd(day(t, "2024-03-03")), intervals[0].End)

	// An open issue extends through today.
	assert.Equal(t, schema.DayEnd(day(t, "2024-03-05")), intervals[1].End)
}

func TestBuildSpoilageScenario(t *testing.T) {
	// Issue A created day 1, closed day 3. Issue B created day 2, still
	// open at today = day 5. Expected counts 1, 2, 2, 1, 1.
	d1 := day(t, "2024-03-01")
	today := day(t, "2024-03-05")
	closedA := day(t, "2024-03-03").Add(9 * time.Hour)

	issues := []schema.IssueRow{
		{IssueIDKey: 1, CreatedAt: d1.Add(8 * time.Hour), ClosedAt: &closedA},
		{IssueIDKey: 2, CreatedAt: day(t, "2024-03-02").Add(11 * time.Hour)},
	}

	rows := BuildSpoilage(BuildIssueIntervals(issues, today), d1, today)
	wantOpen := []int64{1, 2, 2, 1, 1}
	assert.Len(t, rows, len(wantOpen))
	for i, row := range rows {
		assert.Equal(t, d1.AddDate(0, 0, i), row.Start)
		assert.Equal(t, schema.DayEnd(row.Start), row.End)
		assert.Equal(t, wantOpen[i], row.OpenIssues, "day %s", row.Start)
	}
}

func TestBuildSpoilageSameDayIssue(t *testing.T) {
	// Created and closed within one calendar day: counts once on that
	// day and nowhere else.
	d1 := day(t, "2024-03-01")
	today := day(t, "2024-03-03")
	closed := day(t, "2024-03-02").Add(16 * time.Hour)

	issues := []schema.IssueRow{
		{IssueIDKey: 1, CreatedAt: day(t, "2024-03-02").Add(9 * time.Hour), ClosedAt: &closed},
	}

	rows := BuildSpoilage(BuildIssueIntervals(issues, today), d1, today)
	wantOpen := []int64{0, 1, 0}
	assert.Len(t, rows, len(wantOpen))
	for i, row := range rows {
		assert.Equal(t, wantOpen[i], row.OpenIssues)
	}
}

func TestBuildSpoilageNoIssues(t *testing.T) {
	rows := BuildSpoilage(nil, day(t, "2024-03-01"), day(t, "2024-03-03"))
	assert.Len(t, rows, 3)
	for _, row := range rows {
		assert.Zero(t, row.OpenIssues)
	}
}

func TestBuildSpoilageIssueBeforeHistory(t *testing.T) {
	// An issue older than the commit history covers every tracked day.
	d1 := day(t, "2024-03-01")
	today := day(t, "2024-03-02")
	issues := []schema.IssueRow{
		{IssueIDKey: 1, CreatedAt: day(t, "2024-01-15")},
	}

	rows := BuildSpoilage(BuildIssueIntervals(issues, today), d1, today)
	assert.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, int64(1), row.OpenIssues)
	}
}
