package parquet

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Rohit-Singh-01/git-tracker/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertBatchRunRecords(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Second)
	durationMs := int32(90000)
	params := `{"base_url":"https://gitlab.example.com"}`

	records := []schema.BatchRunRecord{
		{
			RunID:         7,
			StartTime:     start,
			EndTime:       &end,
			RunDurationMs: &durationMs,
			TotalUsers:    12,
			ConfigParams:  &params,
		},
	}

	converted := ConvertBatchRunRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, int64(7), converted[0].RunID)
	assert.Equal(t, start, converted[0].StartTime)
	assert.Equal(t, &end, converted[0].EndTime)
	assert.Equal(t, int32(12), converted[0].TotalUsers)
	assert.Equal(t, &params, converted[0].ConfigParams)
}

func TestConvertContributionRowRecords(t *testing.T) {
	records := []schema.ContributionRowRecord{
		{
			RunID:              3,
			Username:           "alice",
			RecordTime:         time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			Commits:            14,
			MergeRequestsTotal: 5,
			IssuesTotal:        2,
			MRComments:         8,
			IssueComments:      1,
			TotalContributions: 30,
			CommitGrade:        "Excellent",
			OverallGrade:       "Good",
		},
	}

	converted := ConvertContributionRowRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, "alice", converted[0].Username)
	assert.Equal(t, int32(14), converted[0].Commits)
	assert.Equal(t, int32(30), converted[0].TotalContributions)
	assert.Equal(t, "Good", converted[0].OverallGrade)
}

func TestWriteBatchRunsParquetRoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	data := []BatchRun{
		{RunID: 1, StartTime: start, TotalUsers: 3},
		{RunID: 2, StartTime: start.Add(time.Hour), TotalUsers: 5},
	}

	require.NoError(t, WriteBatchRunsParquet(data, outputPath))

	rows, err := parquet.ReadFile[BatchRun](outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].RunID)
	assert.Equal(t, int32(5), rows[1].TotalUsers)
	assert.Nil(t, rows[0].EndTime)
}

func TestWriteContributionRecordsParquetRoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "records.parquet")

	data := []ContributionRow{
		{
			RunID:              1,
			Username:           "alice",
			RecordTime:         time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			Commits:            14,
			TotalContributions: 30,
			CommitGrade:        "Excellent",
			MergeRequestGrade:  "Good",
			IssueGrade:         "Average",
			OverallGrade:       "Good",
		},
	}

	require.NoError(t, WriteContributionRecordsParquet(data, outputPath))

	rows, err := parquet.ReadFile[ContributionRow](outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0].Username)
	assert.Equal(t, int32(14), rows[0].Commits)
	assert.Equal(t, "Good", rows[0].OverallGrade)
}
