// Package parquet exports the longitudinal metric tables to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/huangsam/repopulse/schema"
)

// DailySizeRecord represents a single day of project size.
// This struct maps to the project_size_per_day database table.
type DailySizeRecord struct {
	// Date is the UTC midnight of the measured day
	Date time.Time `parquet:"date,snappy"`

	// Lines is the total line count across all measured files
	Lines int64 `parquet:"lines,snappy"`

	// Code is the count of code lines
	Code int64 `parquet:"code,snappy"`

	// Comments is the count of comment lines
	Comments int64 `parquet:"comments,snappy"`

	// Blanks is the count of blank lines
	Blanks int64 `parquet:"blanks,snappy"`

	// Bytes is the total byte size across all measured files
	Bytes int64 `parquet:"bytes,snappy"`
}

// DailyProductivityRecord represents one day-over-day productivity delta.
// This struct maps to the project_productivity_per_day database table.
type DailyProductivityRecord struct {
	// Date is the UTC midnight of the measured day
	Date time.Time `parquet:"date,snappy"`

	// DeltaLines is the line count change versus the previous day
	DeltaLines int64 `parquet:"delta_lines,snappy"`

	// DeltaCode is the code line change versus the previous day
	DeltaCode int64 `parquet:"delta_code,snappy"`

	// DeltaComments is the comment line change versus the previous day
	DeltaComments int64 `parquet:"delta_comments,snappy"`

	// DeltaBlanks is the blank line change versus the previous day
	DeltaBlanks int64 `parquet:"delta_blanks,snappy"`

	// DeltaBytes is the byte size change versus the previous day
	DeltaBytes int64 `parquet:"delta_bytes,snappy"`
}

// BusFactorRecord represents one committer's absolute churn on one day.
// This struct maps to the bus_factor database table. A day with no
// attributable committer carries -1 in the committer and delta columns.
type BusFactorRecord struct {
	// Date is the UTC midnight of the measured day
	Date time.Time `parquet:"date,snappy"`

	// CommitterID is the surrogate key of the committer
	CommitterID int64 `parquet:"committer_id,snappy"`

	DeltaLines    int64 `parquet:"delta_lines,snappy"`
	DeltaCode     int64 `parquet:"delta_code,snappy"`
	DeltaComments int64 `parquet:"delta_comments,snappy"`
	DeltaBlanks   int64 `parquet:"delta_blanks,snappy"`
	DeltaBytes    int64 `parquet:"delta_bytes,snappy"`
}

// SpoilageRecord represents the count of issues open during one day.
// This struct maps to the issue_spoilage_per_day database table.
type SpoilageRecord struct {
	// IntervalStart is the first second of the day
	IntervalStart time.Time `parquet:"interval_start,snappy"`

	// IntervalEnd is the last second of the day
	IntervalEnd time.Time `parquet:"interval_end,snappy"`

	// OpenIssues is the count of issues open through the whole day
	OpenIssues int64 `parquet:"open_issues,snappy"`
}

// DensityRecord represents same-day issue spoilage aligned with project size.
// This struct maps to the issue_density_per_day database table.
type DensityRecord struct {
	// Date is the UTC midnight of the measured day
	Date time.Time `parquet:"date,snappy"`

	// OpenIssues is the spoilage count for the day
	OpenIssues int64 `parquet:"open_issues,snappy"`

	Lines    int64 `parquet:"lines,snappy"`
	Code     int64 `parquet:"code,snappy"`
	Comments int64 `parquet:"comments,snappy"`
	Blanks   int64 `parquet:"blanks,snappy"`
	Bytes    int64 `parquet:"bytes,snappy"`
}

// writeParquetFile writes records to outputPath using struct schema inference.
func writeParquetFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the struct tags
	writer := parquet.NewGenericWriter[T](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteDailySizeParquet writes a slice of DailySizeRecord structs to a Parquet file.
func WriteDailySizeParquet(data []DailySizeRecord, outputPath string) error {
	return writeParquetFile(data, outputPath)
}

// WriteDailyProductivityParquet writes a slice of DailyProductivityRecord structs to a Parquet file.
func WriteDailyProductivityParquet(data []DailyProductivityRecord, outputPath string) error {
	return writeParquetFile(data, outputPath)
}

// WriteBusFactorParquet writes a slice of BusFactorRecord structs to a Parquet file.
func WriteBusFactorParquet(data []BusFactorRecord, outputPath string) error {
	return writeParquetFile(data, outputPath)
}

// WriteSpoilageParquet writes a slice of SpoilageRecord structs to a Parquet file.
func WriteSpoilageParquet(data []SpoilageRecord, outputPath string) error {
	return writeParquetFile(data, outputPath)
}

// WriteDensityParquet writes a slice of DensityRecord structs to a Parquet file.
func WriteDensityParquet(data []DensityRecord, outputPath string) error {
	return writeParquetFile(data, outputPath)
}

// ConvertDailySizeRows converts schema.ProjectSizeDayRow to DailySizeRecord for Parquet export.
func ConvertDailySizeRows(rows []schema.ProjectSizeDayRow) []DailySizeRecord {
	result := make([]DailySizeRecord, len(rows))
	for i, row := range rows {
		result[i] = DailySizeRecord{
			Date:     row.Date,
			Lines:    row.Lines,
			Code:     row.Code,
			Comments: row.Comments,
			Blanks:   row.Blanks,
			Bytes:    row.Bytes,
		}
	}
	return result
}

// ConvertDailyProductivityRows converts schema.ProductivityDayRow to DailyProductivityRecord for Parquet export.
func ConvertDailyProductivityRows(rows []schema.ProductivityDayRow) []DailyProductivityRecord {
	result := make([]DailyProductivityRecord, len(rows))
	for i, row := range rows {
		result[i] = DailyProductivityRecord{
			Date:          row.Date,
			DeltaLines:    row.DeltaLines,
			DeltaCode:     row.DeltaCode,
			DeltaComments: row.DeltaComments,
			DeltaBlanks:   row.DeltaBlanks,
			DeltaBytes:    row.DeltaBytes,
		}
	}
	return result
}

// ConvertBusFactorRows converts schema.BusFactorRow to BusFactorRecord for Parquet export.
func ConvertBusFactorRows(rows []schema.BusFactorRow) []BusFactorRecord {
	result := make([]BusFactorRecord, len(rows))
	for i, row := range rows {
		result[i] = BusFactorRecord{
			Date:          row.Date,
			CommitterID:   row.CommitterID,
			DeltaLines:    row.DeltaLines,
			DeltaCode:     row.DeltaCode,
			DeltaComments: row.DeltaComments,
			DeltaBlanks:   row.DeltaBlanks,
			DeltaBytes:    row.DeltaBytes,
		}
	}
	return result
}

// ConvertSpoilageRows converts schema.SpoilageRow to SpoilageRecord for Parquet export.
func ConvertSpoilageRows(rows []schema.SpoilageRow) []SpoilageRecord {
	result := make([]SpoilageRecord, len(rows))
	for i, row := range rows {
		result[i] = SpoilageRecord{
			IntervalStart: row.Start,
			IntervalEnd:   row.End,
			OpenIssues:    row.OpenIssues,
		}
	}
	return result
}

// ConvertDensityRows converts schema.DensityRow to DensityRecord for Parquet export.
func ConvertDensityRows(rows []schema.DensityRow) []DensityRecord {
	result := make([]DensityRecord, len(rows))
	for i, row := range rows {
		result[i] = DensityRecord{
			Date:       row.Date,
			OpenIssues: row.OpenIssues,
			Lines:      row.Lines,
			Code:       row.Code,
			Comments:   row.Comments,
			Blanks:     row.Blanks,
			Bytes:      row.Bytes,
		}
	}
	return result
}
