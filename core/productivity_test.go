package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huangsam/repopulse/schema"
)

func TestCommitDeltas(t *testing.T) {
	rows := []schema.ProjectSizeCommitRow{
		{SizeMetrics: schema.SizeMetrics{Lines: 12, Code: 10, Bytes: 100}, CommitHashID: 1},
		{SizeMetrics: schema.SizeMetrics{Lines: 18, Code: 15, Bytes: 160}, CommitHashID: 2},
		{SizeMetrics: schema.SizeMetrics{Lines: 14, Code: 11, Bytes: 120}, CommitHashID: 3},
	}

	deltas := CommitDeltas(rows)
	assert.Len(t, deltas, 3)

	// First element has no baseline.
	assert.Equal(t, schema.DeltaMetrics{}, deltas[0].DeltaMetrics)
	assert.Equal(t, int64(1), deltas[0].CommitHashID)

	assert.Equal(t, int64(5), deltas[1].DeltaCode)
	assert.Equal(t, int64(60), deltas[1].DeltaBytes)

	// Shrinking series yields negative deltas.
	assert.Equal(t, int64(-4), deltas[2].DeltaCode)
	assert.Equal(t, int64(-40), deltas[2].DeltaBytes)
}

func TestDailyDeltasScenario(t *testing.T) {
	// Daily code series 20, 20, 20, 25 produces deltas 0, 0, 0, 5.
	d1 := day(t, "2024-03-01")
	rows := []schema.ProjectSizeDayRow{
		{Date: d1, SizeMetrics: schema.SizeMetrics{Code: 20}},
		{Date: d1.AddDate(0, 0, 1), SizeMetrics: schema.SizeMetrics{Code: 20}},
		{Date: d1.AddDate(0, 0, 2), SizeMetrics: schema.SizeMetrics{Code: 20}},
		{Date: d1.AddDate(0, 0, 3), SizeMetrics: schema.SizeMetrics{Code: 25}},
	}

	deltas := DailyDeltas(rows)
	wantCode := []int64{0, 0, 0, 5}
	assert.Len(t, deltas, len(wantCode))
	for i, delta := range deltas {
		assert.Equal(t, rows[i].Date, delta.Date)
		assert.Equal(t, wantCode[i], delta.DeltaCode)
	}
}

func TestDeltaConsistency(t *testing.T) {
	rows := []schema.ProjectSizeCommitRow{
		{SizeMetrics: schema.SizeMetrics{Code: 3}},
		{SizeMetrics: schema.SizeMetrics{Code: 9}},
		{SizeMetrics: schema.SizeMetrics{Code: 4}},
		{SizeMetrics: schema.SizeMetrics{Code: 4}},
	}

	deltas := CommitDeltas(rows)
	assert.Equal(t, int64(0), deltas[0].DeltaCode)
	for i := 1; i < len(rows); i++ {
		assert.Equal(t, rows[i].Code-rows[i-1].Code, deltas[i].DeltaCode)
	}
}

func TestDeltasEmpty(t *testing.T) {
	assert.Empty(t, CommitDeltas(nil))
	assert.Empty(t, DailyDeltas(nil))
}
