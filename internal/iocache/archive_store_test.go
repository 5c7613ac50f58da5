package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Rohit-Singh-01/git-tracker/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArchiveStore(t *testing.T) *ArchiveStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "archive.db")
	store, err := NewArchiveStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*ArchiveStoreImpl)
}

func sampleGradedRecord() *schema.GradedRecord {
	return &schema.GradedRecord{
		AggregateRecord: schema.AggregateRecord{
			Username:      "alice",
			Name:          "Alice Smith",
			UserID:        3,
			Commits:       14,
			MergeRequests: schema.MergeRequestCounts{Total: 5, Opened: 1, Closed: 1, Merged: 3},
			Issues:        schema.IssueCounts{Total: 2, Opened: 1, Closed: 1},
			MRComments:    8,
			IssueComments: 1,
		},
		CommitGrade:       schema.ExcellentGrade,
		MergeRequestGrade: schema.GoodGrade,
		IssueGrade:        schema.AverageGrade,
		OverallGrade:      schema.GoodGrade,
	}
}

func TestArchiveStoreRunLifecycle(t *testing.T) {
	store := newTestArchiveStore(t)

	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun(start, map[string]any{"base_url": "https://gitlab.example.com", "users": 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), runID)

	require.NoError(t, store.RecordContribution(runID, sampleGradedRecord()))
	require.NoError(t, store.EndRun(runID, start.Add(90*time.Second), 2))

	runs, err := store.GetAllBatchRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.Equal(t, start, runs[0].StartTime)
	require.NotNil(t, runs[0].EndTime)
	assert.Equal(t, start.Add(90*time.Second), *runs[0].EndTime)
	require.NotNil(t, runs[0].RunDurationMs)
	assert.Equal(t, int32(90000), *runs[0].RunDurationMs)
	assert.Equal(t, int32(2), runs[0].TotalUsers)
	require.NotNil(t, runs[0].ConfigParams)
	assert.Contains(t, *runs[0].ConfigParams, "gitlab.example.com")
}

func TestArchiveStoreContributionRoundTrip(t *testing.T) {
	store := newTestArchiveStore(t)

	runID, err := store.BeginRun(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	require.NoError(t, store.RecordContribution(runID, sampleGradedRecord()))

	records, err := store.GetAllContributionRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, runID, rec.RunID)
	assert.Equal(t, "alice", rec.Username)
	assert.Equal(t, int32(14), rec.Commits)
	assert.Equal(t, int32(5), rec.MergeRequestsTotal)
	assert.Equal(t, int32(3), rec.MergeRequestsMerged)
	assert.Equal(t, int32(2), rec.IssuesTotal)
	assert.Equal(t, int32(8), rec.MRComments)
	assert.Equal(t, int32(1), rec.IssueComments)
	assert.Equal(t, int32(30), rec.TotalContributions)
	assert.Equal(t, string(schema.ExcellentGrade), rec.CommitGrade)
	assert.Equal(t, string(schema.GoodGrade), rec.OverallGrade)
	assert.False(t, rec.RecordTime.IsZero())
}

func TestArchiveStoreMultipleRunsOrdered(t *testing.T) {
	store := newTestArchiveStore(t)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	first, err := store.BeginRun(base, nil)
	require.NoError(t, err)
	second, err := store.BeginRun(base.Add(time.Hour), nil)
	require.NoError(t, err)
	assert.Greater(t, second, first)

	runs, err := store.GetAllBatchRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].RunID)
	assert.Equal(t, second, runs[1].RunID)
}

func TestArchiveStoreStatus(t *testing.T) {
	store := newTestArchiveStore(t)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	first, err := store.BeginRun(base, nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordContribution(first, sampleGradedRecord()))
	require.NoError(t, store.EndRun(first, base.Add(time.Minute), 1))

	second, err := store.BeginRun(base.Add(time.Hour), nil)
	require.NoError(t, err)
	require.NoError(t, store.EndRun(second, base.Add(time.Hour+time.Minute), 3))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, second, status.LastRunID)
	assert.Equal(t, base.Add(time.Hour), status.LastRunTime)
	assert.Equal(t, base, status.OldestRunTime)
	assert.Equal(t, 4, status.TotalUsers)
	assert.Equal(t, int64(2), status.TableSizes[batchRunsTable])
	assert.Equal(t, int64(1), status.TableSizes[contributionRecordsTable])
}

func TestArchiveStoreNoneBackend(t *testing.T) {
	store, err := NewArchiveStore(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	require.NoError(t, store.RecordContribution(runID, sampleGradedRecord()))
	require.NoError(t, store.EndRun(runID, time.Now(), 0))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?, ?, ?", placeholders(schema.SQLiteBackend, 3))
	assert.Equal(t, "?, ?", placeholders(schema.MySQLBackend, 2))
	assert.Equal(t, "$1, $2, $3", placeholders(schema.PostgreSQLBackend, 3))
}

func TestMigrateArchiveSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "archive.db")

	require.NoError(t, MigrateArchive(schema.SQLiteBackend, dbPath, -1))
	// A second run is a no-op at the latest version
	require.NoError(t, MigrateArchive(schema.SQLiteBackend, dbPath, -1))
	// Roll everything back
	require.NoError(t, MigrateArchive(schema.SQLiteBackend, dbPath, 0))
}

func TestMigrateArchiveRejectsNoneBackend(t *testing.T) {
	assert.Error(t, MigrateArchive(schema.NoneBackend, "", -1))
}

func TestFormatAndParseStoredTime(t *testing.T) {
	original := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	stored := formatTime(original)
	assert.Equal(t, original, parseStoredTime(stored))
	assert.True(t, parseStoredTime("not a time").IsZero())
}
