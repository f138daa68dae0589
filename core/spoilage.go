package core

import (
	"time"

	"github.com/huangsam/repopulse/schema"
)

// IssueInterval is one issue's open span, widened to whole days on the
// shared daily grid: [created day 00:00:00, closed day 23:59:59].
type IssueInterval struct {
	Start time.Time
	End   time.Time
}

// BuildIssueIntervals floors each issue's lifetime to day bounds. An
// issue still open extends through today, so it keeps counting until it
// is closed.
func BuildIssueIntervals(issues []schema.IssueRow, today time.Time) []IssueInterval {
	intervals := make([]IssueInterval, 0, len(issues))
	for _, issue := range issues {
		closed := today
		if issue.ClosedAt != nil {
			closed = *issue.ClosedAt
		}
		intervals = append(intervals, IssueInterval{
			Start: schema.FloorToDay(issue.CreatedAt),
			End:   schema.DayEnd(schema.FloorToDay(closed)),
		})
	}
	return intervals
}

// BuildSpoilage counts, for every day from firstDay through today, how
// many issue intervals fully cover that day's [00:00:00, 23:59:59]
// span. An issue created and closed within a single day covers exactly
// that day. The comparison is a dense pass over every (day, issue)
// pair, which is fine at typical project scale.
func BuildSpoilage(intervals []IssueInterval, firstDay, today time.Time) []schema.SpoilageRow {
	days := schema.DayRange(firstDay, today)
	rows := make([]schema.SpoilageRow, 0, len(days))
	for _, day := range days {
		start := day
		end := schema.DayEnd(day)
		var open int64
		for _, iv := range intervals {
			if !iv.Start.After(start) && !iv.End.Before(end) {
				open++
			}
		}
		rows = append(rows, schema.SpoilageRow{Start: start, End: end, OpenIssues: open})
	}
	return rows
}
