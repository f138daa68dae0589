package core

import (
	"sort"
	"time"

	"github.com/huangsam/repopulse/schema"
)

// CommitChurn joins one commit's productivity deltas with its calendar
// day and committer key. HasCommitter is false when the commit's
// committer could not be attributed.
type CommitChurn struct {
	Day          time.Time
	CommitterID  int64
	HasCommitter bool
	Deltas       schema.DeltaMetrics
}

// sentinelDeltas marks a day whose committer group came up empty.
var sentinelDeltas = schema.DeltaMetrics{
	DeltaLines:    schema.SentinelCommitter,
	DeltaCode:     schema.SentinelCommitter,
	DeltaComments: schema.SentinelCommitter,
	DeltaBlanks:   schema.SentinelCommitter,
	DeltaBytes:    schema.SentinelCommitter,
}

// BuildBusFactor sums absolute churn per committer per day, one row per
// (day, committer) pair that had activity. Sign is discarded before
// summing, so a deletion counts as much activity as an addition. A day
// present in the input whose committer group comes up empty emits a
// single sentinel row rather than disappearing from the series. Rows
// come out sorted by day, then committer.
func BuildBusFactor(commits []CommitChurn) []schema.BusFactorRow {
	days := make(map[time.Time]map[int64]*schema.DeltaMetrics)
	for _, commit := range commits {
		day := schema.FloorToDay(commit.Day)
		if days[day] == nil {
			days[day] = make(map[int64]*schema.DeltaMetrics)
		}
		if !commit.HasCommitter {
			continue
		}
		group := days[day][commit.CommitterID]
		if group == nil {
			group = &schema.DeltaMetrics{}
			days[day][commit.CommitterID] = group
		}
		group.Add(commit.Deltas.Abs())
	}

	orderedDays := make([]time.Time, 0, len(days))
	for day := range days {
		orderedDays = append(orderedDays, day)
	}
	sort.Slice(orderedDays, func(i, j int) bool { return orderedDays[i].Before(orderedDays[j]) })

	rows := make([]schema.BusFactorRow, 0, len(orderedDays))
	for _, day := range orderedDays {
		groups := days[day]
		if len(groups) == 0 {
			rows = append(rows, schema.BusFactorRow{
				Date:         day,
				CommitterID:  schema.SentinelCommitter,
				DeltaMetrics: sentinelDeltas,
			})
			continue
		}

		committers := make([]int64, 0, len(groups))
		for committer := range groups {
			committers = append(committers, committer)
		}
		sort.Slice(committers, func(i, j int) bool { return committers[i] < committers[j] })

		for _, committer := range committers {
			rows = append(rows, schema.BusFactorRow{
				Date:         day,
				CommitterID:  committer,
				DeltaMetrics: *groups[committer],
			})
		}
	}
	return rows
}
