package core

import (
	"time"

	"github.com/huangsam/repopulse/schema"
)

// BuildDensity left-joins the spoilage series to the daily size series
// on date. Days the size table does not cover take the most recent
// known size (forward fill); days before the first size observation
// come out with zero-valued size metrics. No ratio is computed, the
// stage only aligns the two series.
func BuildDensity(spoilage []schema.SpoilageRow, sizes []schema.ProjectSizeDayRow) []schema.DensityRow {
	byDate := make(map[time.Time]schema.SizeMetrics, len(sizes))
	for _, size := range sizes {
		byDate[schema.FloorToDay(size.Date)] = size.SizeMetrics
	}

	rows := make([]schema.DensityRow, 0, len(spoilage))
	var current schema.SizeMetrics
	for _, row := range spoilage {
		day := schema.FloorToDay(row.Start)
		if size, ok := byDate[day]; ok {
			current = size
		}
		rows = append(rows, schema.DensityRow{
			Date:        day,
			OpenIssues:  row.OpenIssues,
			SizeMetrics: current,
		})
	}
	return rows
}
