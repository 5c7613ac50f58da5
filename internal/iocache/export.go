package iocache

import (
	"errors"
	"fmt"

	"github.com/Rohit-Singh-01/git-tracker/internal/parquet"
)

// ExecuteArchiveExport performs the actual export of archive data to Parquet files.
func ExecuteArchiveExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the archive store
	store := Manager.GetArchiveStore()
	if store == nil {
		return errors.New("archive store is not configured")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get archive status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no archive data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total batch runs: %d\n", status.TotalRuns)
	fmt.Printf("Total contribution records: %d\n", status.TableSizes["tracker_contribution_records"])

	// Retrieve all batch runs
	batchRuns, err := store.GetAllBatchRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve batch runs: %w", err)
	}

	// Retrieve all contribution records
	contributions, err := store.GetAllContributionRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve contribution records: %w", err)
	}

	// Convert to Parquet format
	parquetBatchRuns := parquet.ConvertBatchRunRecords(batchRuns)
	parquetContributions := parquet.ConvertContributionRowRecords(contributions)

	// Write batch runs to Parquet
	batchRunsFile := outputFile + ".batch_runs.parquet"
	if err := parquet.WriteBatchRunsParquet(parquetBatchRuns, batchRunsFile); err != nil {
		return fmt.Errorf("failed to write batch runs: %w", err)
	}
	fmt.Printf("Exported %d batch runs to: %s\n", len(parquetBatchRuns), batchRunsFile)

	// Write contribution records to Parquet
	contributionsFile := outputFile + ".contribution_records.parquet"
	if err := parquet.WriteContributionRecordsParquet(parquetContributions, contributionsFile); err != nil {
		return fmt.Errorf("failed to write contribution records: %w", err)
	}
	fmt.Printf("Exported %d contribution records to: %s\n", len(parquetContributions), contributionsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
