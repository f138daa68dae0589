package core

import "github.com/huangsam/repopulse/schema"

// sizeDiff computes cur minus prev for every size metric.
func sizeDiff(prev, cur schema.SizeMetrics) schema.DeltaMetrics {
	return schema.DeltaMetrics{
		DeltaLines:    cur.Lines - prev.Lines,
		DeltaCode:     cur.Code - prev.Code,
		DeltaComments: cur.Comments - prev.Comments,
		DeltaBlanks:   cur.Blanks - prev.Blanks,
		DeltaBytes:    cur.Bytes - prev.Bytes,
	}
}

// CommitDeltas computes first differences of the per-commit size
// series. The first commit has no baseline and carries all-zero deltas.
func CommitDeltas(rows []schema.ProjectSizeCommitRow) []schema.ProductivityCommitRow {
	out := make([]schema.ProductivityCommitRow, 0, len(rows))
	for i, row := range rows {
		result := schema.ProductivityCommitRow{CommitHashID: row.CommitHashID}
		if i > 0 {
			result.DeltaMetrics = sizeDiff(rows[i-1].SizeMetrics, row.SizeMetrics)
		}
		out = append(out, result)
	}
	return out
}

// DailyDeltas computes day-over-day differences of the flood-filled
// daily size series. Because the input series has no calendar gaps,
// days with no commits naturally come out as zero deltas.
func DailyDeltas(rows []schema.ProjectSizeDayRow) []schema.ProductivityDayRow {
	out := make([]schema.ProductivityDayRow, 0, len(rows))
	for i, row := range rows {
		result := schema.ProductivityDayRow{Date: row.Date}
		if i > 0 {
			result.DeltaMetrics = sizeDiff(rows[i-1].SizeMetrics, row.SizeMetrics)
		}
		out = append(out, result)
	}
	return out
}
