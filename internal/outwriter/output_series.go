package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/repopulse/internal/contract"
	"github.com/huangsam/repopulse/schema"
)

// PrintDailySize outputs the daily size series, dispatching based on the output format configured.
func PrintDailySize(rows []schema.ProjectSizeDayRow, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return printJSONSeries(rows, cfg, "Wrote JSON size results")
	case schema.CSVOut:
		return printCSVSeries(cfg, "Wrote CSV size results", func(w *csv.Writer) error {
			return writeCSVDailySize(w, rows)
		})
	default:
		return printSeriesTable(dailySizeHeader, dailySizeData(rows), len(rows), "daily size rows")
	}
}

// PrintProductivity outputs the daily productivity series, dispatching based on the output format configured.
func PrintProductivity(rows []schema.ProductivityDayRow, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return printJSONSeries(rows, cfg, "Wrote JSON productivity results")
	case schema.CSVOut:
		return printCSVSeries(cfg, "Wrote CSV productivity results", func(w *csv.Writer) error {
			return writeCSVProductivity(w, rows)
		})
	default:
		return printSeriesTable(productivityHeader, productivityData(rows), len(rows), "productivity rows")
	}
}

// PrintBusFactor outputs the bus factor table, dispatching based on the output format configured.
func PrintBusFactor(rows []schema.BusFactorRow, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return printJSONSeries(rows, cfg, "Wrote JSON bus factor results")
	case schema.CSVOut:
		return printCSVSeries(cfg, "Wrote CSV bus factor results", func(w *csv.Writer) error {
			return writeCSVBusFactor(w, rows)
		})
	default:
		return printSeriesTable(busFactorHeader, busFactorData(rows), len(rows), "bus factor rows")
	}
}

// PrintSpoilage outputs the daily open-issue series, dispatching based on the output format configured.
func PrintSpoilage(rows []schema.SpoilageRow, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return printJSONSeries(rows, cfg, "Wrote JSON spoilage results")
	case schema.CSVOut:
		return printCSVSeries(cfg, "Wrote CSV spoilage results", func(w *csv.Writer) error {
			return writeCSVSpoilage(w, rows)
		})
	default:
		return printSeriesTable(spoilageHeader, spoilageData(rows), len(rows), "spoilage rows")
	}
}

// PrintDensity outputs the issue density series, dispatching based on the output format configured.
func PrintDensity(rows []schema.DensityRow, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return printJSONSeries(rows, cfg, "Wrote JSON density results")
	case schema.CSVOut:
		return printCSVSeries(cfg, "Wrote CSV density results", func(w *csv.Writer) error {
			return writeCSVDensity(w, rows)
		})
	default:
		return printSeriesTable(densityHeader, densityData(rows), len(rows), "density rows")
	}
}

// printJSONSeries handles opening the file and calling the JSON writer.
func printJSONSeries(rows any, cfg *contract.Config, successMsg string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, rows)
	}, successMsg)
}

// printCSVSeries handles opening the file and calling the CSV writer.
func printCSVSeries(cfg *contract.Config, successMsg string, write func(*csv.Writer) error) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return write(csvWriter)
	}, successMsg)
}

// printSeriesTable renders a metric series as a right-aligned table on stdout.
func printSeriesTable(headers []string, data [][]string, count int, noun string) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Printed %d %s\n", count, noun)
	return nil
}
