package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huangsam/repopulse/schema"
)

func TestBuildDensityJoinsOnDate(t *testing.T) {
	d1 := day(t, "2024-03-01")
	spoilage := []schema.SpoilageRow{
		{Start: d1, End: schema.DayEnd(d1), OpenIssues: 1},
		{Start: d1.AddDate(0, 0, 1), End: schema.DayEnd(d1.AddDate(0, 0, 1)), OpenIssues: 2},
	}
	sizes := []schema.ProjectSizeDayRow{
		{Date: d1, SizeMetrics: schema.SizeMetrics{Code: 20}},
		{Date: d1.AddDate(0, 0, 1), SizeMetrics: schema.SizeMetrics{Code: 25}},
	}

	rows := BuildDensity(spoilage, sizes)
	assert.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].OpenIssues)
	assert.Equal(t, int64(20), rows[0].Code)
	assert.Equal(t, int64(2), rows[1].OpenIssues)
	assert.Equal(t, int64(25), rows[1].Code)
}

func TestBuildDensityForwardFillsMissingSize(t *testing.T) {
	d1 := day(t, "2024-03-01")
	spoilage := []schema.SpoilageRow{
		{Start: d1, OpenIssues: 1},
		{Start: d1.AddDate(0, 0, 1), OpenIssues: 2},
		{Start: d1.AddDate(0, 0, 2), OpenIssues: 2},
	}
	// The size series only covers the first day.
	sizes := []schema.ProjectSizeDayRow{
		{Date: d1, SizeMetrics: schema.SizeMetrics{Code: 30, Bytes: 900}},
	}

	rows := BuildDensity(spoilage, sizes)
	assert.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, int64(30), row.Code)
		assert.Equal(t, int64(900), row.Bytes)
	}
}

func TestBuildDensityLeadingMissingSizeIsZero(t *testing.T) {
	d1 := day(t, "2024-03-01")
	spoilage := []schema.SpoilageRow{
		{Start: d1, OpenIssues: 1},
		{Start: d1.AddDate(0, 0, 1), OpenIssues: 1},
	}
	sizes := []schema.ProjectSizeDayRow{
		{Date: d1.AddDate(0, 0, 1), SizeMetrics: schema.SizeMetrics{Code: 10}},
	}

	rows := BuildDensity(spoilage, sizes)
	assert.Len(t, rows, 2)
	assert.Zero(t, rows[0].Code)
	assert.Equal(t, int64(10), rows[1].Code)
}

func TestBuildDensityEmpty(t *testing.T) {
	assert.Empty(t, BuildDensity(nil, nil))
}
