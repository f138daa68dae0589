package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/repopulse/internal/contract"
	"github.com/huangsam/repopulse/internal/iostore"
	"github.com/huangsam/repopulse/schema"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize the store with the loaded config
	if err := iostore.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func storeMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeMigrateSetupWrapper wraps storeMigrateSetup to provide PreRunE for the migrate command.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeMigrateSetup()
}

// storeCmd focused on metric store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by pipeline commands. This avoids Git repo
// validation for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the metric store (status, clear, migrate, export)",
	Long: `Manage the database that holds normalized revisions and derived metrics.

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  status  - Show per-table row counts and connection info
  clear   - Remove all stored data
  migrate - Run database schema migrations
  export  - Export derived tables to Parquet for analytics

Examples:
  # Check store status
  repopulse store status

  # Export for analysis in pandas/DuckDB
  repopulse store export --output-file metrics`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the metric store.

Displays:
- Backend type and connection status
- Row count for every metric table

Examples:
  # Check store status
  repopulse store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iostore.Manager.GetMetricStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iostore.PrintStoreStatus(status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored metric data",
	Long: `Delete all normalized revisions and derived metrics from the
configured backend.

WARNING: This action cannot be undone. Consider exporting data first.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the metric tables

Examples:
  # Clear SQLite store (default)
  repopulse store clear

  # Clear MySQL store (set connection string via env variable)
  REPOPULSE_STORE_BACKEND=mysql REPOPULSE_STORE_DB_CONNECT="..." repopulse store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// SQLite stores live at the connection path when one is given
		dbFilePath := cfg.StoreDBConnect
		if dbFilePath == "" {
			dbFilePath = contract.GetStoreDBFilePath()
		}
		if err := iostore.ClearStore(cfg.StoreBackend, dbFilePath, cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeMigrateCmd runs database migrations for the metric store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the metric store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Note: the MySQL backend needs multiStatements=true in the connection
string for migrations to run.

Examples:
  # Migrate to latest version (default)
  repopulse store migrate

  # Migrate to specific version
  repopulse store migrate --target-version 1

  # Rollback to previous version
  repopulse store migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iostore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// storeExportCmd exports derived metric tables to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export derived metric tables to Parquet for BI tools and analytics",
	Long: `Export the derived metric tables to Parquet format.

Exports five datasets, one file per table:
- project_size_per_day
- project_productivity_per_day
- bus_factor
- issue_spoilage_per_day
- issue_density_per_day

Requires: --output-file parameter, used as the common file prefix.

Examples:
  # Export all derived tables
  repopulse store export --output-file metrics

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('metrics.bus_factor.parquet') LIMIT 10"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ExecuteStoreExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export metric data", err)
		}
	},
}
