package outwriter

import (
	"encoding/csv"

	"github.com/huangsam/repopulse/schema"
)

var (
	dailySizeHeader    = []string{"Date", "Lines", "Code", "Comments", "Blanks", "Bytes"}
	productivityHeader = []string{"Date", "Lines", "Code", "Comments", "Blanks", "Bytes"}
	busFactorHeader    = []string{"Date", "Committer", "Lines", "Code", "Comments", "Blanks", "Bytes"}
	spoilageHeader     = []string{"Start", "End", "Open issues"}
	densityHeader      = []string{"Date", "Open issues", "Lines", "Code", "Comments", "Blanks", "Bytes"}
)

func sizeFields(m schema.SizeMetrics) []string {
	return []string{fmtInt(m.Lines), fmtInt(m.Code), fmtInt(m.Comments), fmtInt(m.Blanks), fmtInt(m.Bytes)}
}

func deltaFields(d schema.DeltaMetrics) []string {
	return []string{fmtInt(d.DeltaLines), fmtInt(d.DeltaCode), fmtInt(d.DeltaComments), fmtInt(d.DeltaBlanks), fmtInt(d.DeltaBytes)}
}

func dailySizeData(rows []schema.ProjectSizeDayRow) [][]string {
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		data = append(data, append([]string{schema.FormatDay(row.Date)}, sizeFields(row.SizeMetrics)...))
	}
	return data
}

func productivityData(rows []schema.ProductivityDayRow) [][]string {
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		data = append(data, append([]string{schema.FormatDay(row.Date)}, deltaFields(row.DeltaMetrics)...))
	}
	return data
}

func busFactorData(rows []schema.BusFactorRow) [][]string {
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		fields := append([]string{schema.FormatDay(row.Date), fmtInt(row.CommitterID)}, deltaFields(row.DeltaMetrics)...)
		data = append(data, fields)
	}
	return data
}

func spoilageData(rows []schema.SpoilageRow) [][]string {
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		data = append(data, []string{schema.FormatDay(row.Start), schema.FormatDay(row.End), fmtInt(row.OpenIssues)})
	}
	return data
}

func densityData(rows []schema.DensityRow) [][]string {
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		fields := append([]string{schema.FormatDay(row.Date), fmtInt(row.OpenIssues)}, sizeFields(row.SizeMetrics)...)
		data = append(data, fields)
	}
	return data
}

func writeCSVDailySize(w *csv.Writer, rows []schema.ProjectSizeDayRow) error {
	if err := w.Write(dailySizeHeader); err != nil {
		return err
	}
	for _, record := range dailySizeData(rows) {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVProductivity(w *csv.Writer, rows []schema.ProductivityDayRow) error {
	if err := w.Write(productivityHeader); err != nil {
		return err
	}
	for _, record := range productivityData(rows) {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVBusFactor(w *csv.Writer, rows []schema.BusFactorRow) error {
	if err := w.Write(busFactorHeader); err != nil {
		return err
	}
	for _, record := range busFactorData(rows) {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVSpoilage(w *csv.Writer, rows []schema.SpoilageRow) error {
	if err := w.Write(spoilageHeader); err != nil {
		return err
	}
	for _, record := range spoilageData(rows) {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVDensity(w *csv.Writer, rows []schema.DensityRow) error {
	if err := w.Write(densityHeader); err != nil {
		return err
	}
	for _, record := range densityData(rows) {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
