package iostore

import (
	"errors"
	"fmt"

	"github.com/huangsam/repopulse/internal/parquet"
)

// ExecuteStoreExport writes the derived metric tables to Parquet files,
// one file per table, using outputFile as the common prefix.
func ExecuteStoreExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetMetricStore()
	if store == nil {
		return errors.New("metric store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.TotalRows() == 0 {
		return errors.New("no metric data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)

	sizeRows, err := store.ProjectSizePerDay()
	if err != nil {
		return fmt.Errorf("failed to retrieve daily sizes: %w", err)
	}
	productivityRows, err := store.ProductivityPerDay()
	if err != nil {
		return fmt.Errorf("failed to retrieve daily productivity: %w", err)
	}
	busFactorRows, err := store.BusFactor()
	if err != nil {
		return fmt.Errorf("failed to retrieve bus factor: %w", err)
	}
	spoilageRows, err := store.IssueSpoilage()
	if err != nil {
		return fmt.Errorf("failed to retrieve spoilage: %w", err)
	}
	densityRows, err := store.IssueDensity()
	if err != nil {
		return fmt.Errorf("failed to retrieve density: %w", err)
	}

	sizeFile := outputFile + ".project_size_per_day.parquet"
	if err := parquet.WriteDailySizeParquet(parquet.ConvertDailySizeRows(sizeRows), sizeFile); err != nil {
		return fmt.Errorf("failed to write daily sizes: %w", err)
	}
	fmt.Printf("Exported %d daily size rows to: %s\n", len(sizeRows), sizeFile)

	productivityFile := outputFile + ".project_productivity_per_day.parquet"
	if err := parquet.WriteDailyProductivityParquet(parquet.ConvertDailyProductivityRows(productivityRows), productivityFile); err != nil {
		return fmt.Errorf("failed to write daily productivity: %w", err)
	}
	fmt.Printf("Exported %d daily productivity rows to: %s\n", len(productivityRows), productivityFile)

	busFactorFile := outputFile + ".bus_factor.parquet"
	if err := parquet.WriteBusFactorParquet(parquet.ConvertBusFactorRows(busFactorRows), busFactorFile); err != nil {
		return fmt.Errorf("failed to write bus factor: %w", err)
	}
	fmt.Printf("Exported %d bus factor rows to: %s\n", len(busFactorRows), busFactorFile)

	spoilageFile := outputFile + ".issue_spoilage_per_day.parquet"
	if err := parquet.WriteSpoilageParquet(parquet.ConvertSpoilageRows(spoilageRows), spoilageFile); err != nil {
		return fmt.Errorf("failed to write spoilage: %w", err)
	}
	fmt.Printf("Exported %d spoilage rows to: %s\n", len(spoilageRows), spoilageFile)

	densityFile := outputFile + ".issue_density_per_day.parquet"
	if err := parquet.WriteDensityParquet(parquet.ConvertDensityRows(densityRows), densityFile); err != nil {
		return fmt.Errorf("failed to write density: %w", err)
	}
	fmt.Printf("Exported %d density rows to: %s\n", len(densityRows), densityFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
