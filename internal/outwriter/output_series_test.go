package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/repopulse/internal/contract"
	"github.com/huangsam/repopulse/schema"
)

func seriesDay(t *testing.T, value string) time.Time {
	t.Helper()
	day, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return day
}

func TestWriteCSVDailySize(t *testing.T) {
	rows := []schema.ProjectSizeDayRow{
		{
			ID:   1,
			Date: seriesDay(t, "2024-05-01"),
			SizeMetrics: schema.SizeMetrics{
				Lines: 120, Code: 100, Comments: 12, Blanks: 8, Bytes: 4096,
			},
		},
		{
			ID:   2,
			Date: seriesDay(t, "2024-05-02"),
			SizeMetrics: schema.SizeMetrics{
				Lines: 130, Code: 108, Comments: 13, Blanks: 9, Bytes: 4300,
			},
		},
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVDailySize(w, rows))
	w.Flush()
	require.NoError(t, w.Error())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, dailySizeHeader, records[0])
	assert.Equal(t, []string{"2024-05-01", "120", "100", "12", "8", "4096"}, records[1])
	assert.Equal(t, []string{"2024-05-02", "130", "108", "13", "9", "4300"}, records[2])
}

func TestWriteCSVBusFactor(t *testing.T) {
	rows := []schema.BusFactorRow{
		{
			ID:          1,
			Date:        seriesDay(t, "2024-05-01"),
			CommitterID: 7,
			DeltaMetrics: schema.DeltaMetrics{
				DeltaLines: 14, DeltaCode: 14, DeltaComments: 0, DeltaBlanks: 0, DeltaBytes: 512,
			},
		},
		{
			ID:          2,
			Date:        seriesDay(t, "2024-05-02"),
			CommitterID: schema.SentinelCommitter,
			DeltaMetrics: schema.DeltaMetrics{
				DeltaLines:    schema.SentinelCommitter,
				DeltaCode:     schema.SentinelCommitter,
				DeltaComments: schema.SentinelCommitter,
				DeltaBlanks:   schema.SentinelCommitter,
				DeltaBytes:    schema.SentinelCommitter,
			},
		},
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVBusFactor(w, rows))
	w.Flush()
	require.NoError(t, w.Error())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"2024-05-01", "7", "14", "14", "0", "0", "512"}, records[1])
	assert.Equal(t, []string{"2024-05-02", "-1", "-1", "-1", "-1", "-1", "-1"}, records[2])
}

func TestWriteCSVSpoilage(t *testing.T) {
	rows := []schema.SpoilageRow{
		{
			ID:         1,
			Start:      seriesDay(t, "2024-05-01"),
			End:        schema.DayEnd(seriesDay(t, "2024-05-01")),
			OpenIssues: 3,
		},
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVSpoilage(w, rows))
	w.Flush()
	require.NoError(t, w.Error())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, spoilageHeader, records[0])
	assert.Equal(t, []string{"2024-05-01", "2024-05-01", "3"}, records[1])
}

func TestWriteJSONProductivity(t *testing.T) {
	rows := []schema.ProductivityDayRow{
		{
			ID:   1,
			Date: seriesDay(t, "2024-05-01"),
			DeltaMetrics: schema.DeltaMetrics{
				DeltaLines: 5, DeltaCode: 4, DeltaComments: 1, DeltaBlanks: 0, DeltaBytes: 64,
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, rows))

	var parsed []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed, 1)

	deltas := parsed[0]["deltas"].(map[string]any)
	assert.Equal(t, 5.0, deltas["delta_lines"])
	assert.Equal(t, 64.0, deltas["delta_bytes"])
	assert.Contains(t, parsed[0], "date")
}

func TestDensityData(t *testing.T) {
	rows := []schema.DensityRow{
		{
			ID:         1,
			Date:       seriesDay(t, "2024-05-03"),
			OpenIssues: 2,
			SizeMetrics: schema.SizeMetrics{
				Lines: 50, Code: 40, Comments: 5, Blanks: 5, Bytes: 2048,
			},
		},
	}

	data := densityData(rows)
	require.Len(t, data, 1)
	assert.Equal(t, []string{"2024-05-03", "2", "50", "40", "5", "5", "2048"}, data[0])
}

func TestPrintDailySizeWritesFile(t *testing.T) {
	rows := []schema.ProjectSizeDayRow{
		{
			ID:   1,
			Date: seriesDay(t, "2024-05-01"),
			SizeMetrics: schema.SizeMetrics{
				Lines: 10, Code: 8, Comments: 1, Blanks: 1, Bytes: 256,
			},
		},
	}

	outputFile := filepath.Join(t.TempDir(), "sizes.csv")
	cfg := &contract.Config{
		Output:     schema.CSVOut,
		OutputFile: outputFile,
	}
	require.NoError(t, PrintDailySize(rows, cfg))

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "2024-05-01")
	assert.Contains(t, string(content), "256")
}

func TestGetTableWidth(t *testing.T) {
	cfg := &contract.Config{Width: 132}
	assert.Equal(t, 132, GetTableWidth(cfg))

	// Without an override the non-tty test environment falls back.
	cfg = &contract.Config{}
	assert.Equal(t, 80, GetTableWidth(cfg))
}
