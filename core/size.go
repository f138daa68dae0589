package core

import (
	"time"

	"github.com/huangsam/repopulse/schema"
)

// CommitSize pairs a measured commit with its commit time. The slice
// handed to BuildDailySize must be ordered oldest-first, matching the
// commit log.
type CommitSize struct {
	CommitHashID int64
	CommittedAt  time.Time
	Size         schema.SizeMetrics
}

// SumFileSizes rolls per-file measurements up into a single
// project-wide size.
func SumFileSizes(rows []schema.FileSizeRow) schema.SizeMetrics {
	var total schema.SizeMetrics
	for _, row := range rows {
		total.Add(row.SizeMetrics)
	}
	return total
}

// BuildDailySize expands per-commit sizes into a continuous daily
// series from the first commit's day through today. On a day with
// several commits the last commit of the day wins; days with no commit
// carry the previous day's value forward, so every calendar day in
// range has exactly one row.
func BuildDailySize(commits []CommitSize, today time.Time) []schema.ProjectSizeDayRow {
	if len(commits) == 0 {
		return nil
	}

	// Later commits overwrite earlier ones within a day.
	byDay := make(map[time.Time]schema.SizeMetrics, len(commits))
	for _, commit := range commits {
		byDay[schema.FloorToDay(commit.CommittedAt)] = commit.Size
	}

	days := schema.DayRange(commits[0].CommittedAt, today)
	rows := make([]schema.ProjectSizeDayRow, 0, len(days))
	var current schema.SizeMetrics
	for _, day := range days {
		if size, ok := byDay[day]; ok {
			current = size
		}
		rows = append(rows, schema.ProjectSizeDayRow{Date: day, SizeMetrics: current})
	}
	return rows
}
