// Package parquet provides data structures and functions for exporting archived
// contribution data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/Rohit-Singh-01/git-tracker/schema"
	"github.com/parquet-go/parquet-go"
)

// BatchRun represents a single batch grading run with metadata.
// This struct maps to the tracker_batch_runs database table.
type BatchRun struct {
	// RunID is the unique identifier for this batch run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the batch run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalUsers is the number of users graded in this run
	TotalUsers int32 `parquet:"total_users,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ContributionRow represents the graded contribution totals for a single user
// in a batch run. This struct maps to the tracker_contribution_records table.
type ContributionRow struct {
	// RunID references the parent batch run
	RunID int64 `parquet:"run_id,snappy"`

	// Username is the forge username that was graded
	Username string `parquet:"username,snappy"`

	// RecordTime is when this record was archived (stored as TIMESTAMP with nanosecond precision)
	RecordTime time.Time `parquet:"record_time,snappy"`

	// Commits is the number of commits authored within the window
	Commits int32 `parquet:"commits,snappy"`

	// MergeRequestsTotal is the number of merge requests opened within the window
	MergeRequestsTotal int32 `parquet:"merge_requests_total,snappy"`

	// MergeRequestsOpened counts merge requests still open
	MergeRequestsOpened int32 `parquet:"merge_requests_opened,snappy"`

	// MergeRequestsClosed counts merge requests closed without merging
	MergeRequestsClosed int32 `parquet:"merge_requests_closed,snappy"`

	// MergeRequestsMerged counts merged merge requests
	MergeRequestsMerged int32 `parquet:"merge_requests_merged,snappy"`

	// IssuesTotal is the number of issues opened within the window
	IssuesTotal int32 `parquet:"issues_total,snappy"`

	// IssuesOpened counts issues still open
	IssuesOpened int32 `parquet:"issues_opened,snappy"`

	// IssuesClosed counts closed issues
	IssuesClosed int32 `parquet:"issues_closed,snappy"`

	// MRComments is the number of merge request comments written within the window
	MRComments int32 `parquet:"mr_comments,snappy"`

	// IssueComments is the number of issue comments written within the window
	IssueComments int32 `parquet:"issue_comments,snappy"`

	// TotalContributions is the sum of all contribution counts
	TotalContributions int32 `parquet:"total_contributions,snappy"`

	// CommitGrade is the commit grade relative to the cohort mean
	CommitGrade string `parquet:"commit_grade,snappy"`

	// MergeRequestGrade is the merge request grade relative to the cohort mean
	MergeRequestGrade string `parquet:"merge_request_grade,snappy"`

	// IssueGrade is the issue grade relative to the cohort mean
	IssueGrade string `parquet:"issue_grade,snappy"`

	// OverallGrade is the grade over total contributions
	OverallGrade string `parquet:"overall_grade,snappy"`
}

// ConvertBatchRunRecords converts database batch run rows to their Parquet representation.
func ConvertBatchRunRecords(records []schema.BatchRunRecord) []BatchRun {
	result := make([]BatchRun, 0, len(records))
	for _, r := range records {
		result = append(result, BatchRun{
			RunID:         r.RunID,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.RunDurationMs,
			TotalUsers:    r.TotalUsers,
			ConfigParams:  r.ConfigParams,
		})
	}
	return result
}

// ConvertContributionRowRecords converts database contribution rows to their Parquet representation.
func ConvertContributionRowRecords(records []schema.ContributionRowRecord) []ContributionRow {
	result := make([]ContributionRow, 0, len(records))
	for _, r := range records {
		result = append(result, ContributionRow{
			RunID:               r.RunID,
			Username:            r.Username,
			RecordTime:          r.RecordTime,
			Commits:             r.Commits,
			MergeRequestsTotal:  r.MergeRequestsTotal,
			MergeRequestsOpened: r.MergeRequestsOpened,
			MergeRequestsClosed: r.MergeRequestsClosed,
			MergeRequestsMerged: r.MergeRequestsMerged,
			IssuesTotal:         r.IssuesTotal,
			IssuesOpened:        r.IssuesOpened,
			IssuesClosed:        r.IssuesClosed,
			MRComments:          r.MRComments,
			IssueComments:       r.IssueComments,
			TotalContributions:  r.TotalContributions,
			CommitGrade:         r.CommitGrade,
			MergeRequestGrade:   r.MergeRequestGrade,
			IssueGrade:          r.IssueGrade,
			OverallGrade:        r.OverallGrade,
		})
	}
	return result
}

// WriteBatchRunsParquet writes a slice of BatchRun structs to a Parquet file.
func WriteBatchRunsParquet(data []BatchRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the BatchRun struct tags
	writer := parquet.NewGenericWriter[BatchRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteContributionRecordsParquet writes a slice of ContributionRow structs to a Parquet file.
func WriteContributionRecordsParquet(data []ContributionRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ContributionRow struct tags
	writer := parquet.NewGenericWriter[ContributionRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
