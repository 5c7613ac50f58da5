package cmd

import (
	"fmt"

	"github.com/Rohit-Singh-01/git-tracker/internal/contract"
	"github.com/Rohit-Singh-01/git-tracker/internal/iocache"
	"github.com/Rohit-Singh-01/git-tracker/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// archiveConfig loads minimal configuration needed for archive operations.
// The archive backend defaults to SQLite so these commands work out of the box.
func archiveConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("archive-backend"))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	connStr := viper.GetString("archive-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.ArchiveBackend = backend
	cfg.ArchiveDBConnect = connStr

	return nil
}

// archiveSetup loads archive config and initializes the archive store.
func archiveSetup(_ *cobra.Command, _ []string) error {
	if err := archiveConfig(); err != nil {
		return err
	}

	// Initialize only the archive store (no record cache for archive commands)
	if err := iocache.InitStores("", "", cfg.ArchiveBackend, cfg.ArchiveDBConnect); err != nil {
		return fmt.Errorf("failed to initialize archive: %w", err)
	}

	return nil
}

// archiveConfigWrapper provides PreRunE for commands that manage their own connections.
func archiveConfigWrapper(_ *cobra.Command, _ []string) error {
	return archiveConfig()
}

// archiveCmd focused on batch run archive management.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the batch run archive (long-term grading history)",
	Long: `Manage the archive that records every graded batch run.

When an archive backend is configured, each batch run stores its metadata
and the graded record of every user. The archive builds a grading history
across runs that can be inspected or exported to Parquet.

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  status  - Show archive statistics and connection info
  clear   - Remove all archived batch runs
  migrate - Run schema migrations on the archive database
  export  - Export archived runs to Parquet files

Examples:
  # Check archive status
  gittracker archive status

  # Export history for analysis in DuckDB or Pandas
  gittracker archive export --output-file grading_history`,
}

// archiveStatusCmd shows archive status.
var archiveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display archive statistics and connection details",
	Long: `Show detailed information about the batch run archive.

Displays:
- Backend type and connection status
- Total batch runs and graded users
- Last and oldest run timestamps
- Row counts per archive table

Examples:
  # Check archive status
  gittracker archive status`,
	PreRunE: archiveSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetArchiveStore()
		if store == nil {
			contract.LogFatal("Archive store not initialized", fmt.Errorf("no archive backend configured"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get archive status", err)
		}
		iocache.PrintArchiveStatus(status)
	},
}

// archiveClearCmd clears the archive.
var archiveClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all archived batch runs",
	Long: `Delete all archived batch runs and contribution records.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the archive tables

Examples:
  # Clear the SQLite archive (default)
  gittracker archive clear`,
	PreRunE: archiveConfigWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearArchive(cfg.ArchiveBackend, contract.GetArchiveDBFilePath(), cfg.ArchiveDBConnect); err != nil {
			contract.LogFatal("Failed to clear archive", err)
		}
		fmt.Println("Archive cleared successfully.")
	},
}

// archiveMigrateCmd runs archive schema migrations.
var archiveMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations on the archive database",
	Long: `Apply or roll back embedded schema migrations on the archive database.

Target versions:
  -1 (default) - migrate up to the latest version
   0           - roll back all migrations
   N           - migrate to version N

Examples:
  # Migrate to the latest schema
  gittracker archive migrate

  # Roll everything back
  gittracker archive migrate --target-version 0`,
	PreRunE: archiveConfigWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateArchive(cfg.ArchiveBackend, cfg.ArchiveDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// archiveExportCmd exports the archive to Parquet.
var archiveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived batch runs to Parquet files",
	Long: `Export all archived batch runs and contribution records to Parquet files.

Two files are written, named after --output-file:
  <output-file>.batch_runs.parquet
  <output-file>.contribution_records.parquet

The Parquet files can be loaded into Spark, Pandas, DuckDB, or any other
Parquet-compatible tool for long-term grading analysis.

Examples:
  # Export the default SQLite archive
  gittracker archive export --output-file grading_history`,
	PreRunE: archiveSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteArchiveExport(viper.GetString("output-file")); err != nil {
			contract.LogFatal("Failed to export archive", err)
		}
	},
}
