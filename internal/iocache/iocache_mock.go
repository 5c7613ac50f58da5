package iocache

import (
	"database/sql"
	"sync"
	"time"

	"github.com/Rohit-Singh-01/git-tracker/internal/contract"
	"github.com/Rohit-Singh-01/git-tracker/schema"
)

// MockCacheStore is an in-memory CacheStore for tests.
type MockCacheStore struct {
	mu      sync.Mutex
	entries map[string]mockCacheEntry
}

type mockCacheEntry struct {
	value     []byte
	version   int
	timestamp int64
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// NewMockCacheStore creates an empty in-memory cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{entries: make(map[string]mockCacheEntry)}
}

// Get retrieves a value by key.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return nil, 0, 0, sql.ErrNoRows
	}
	return entry.value, entry.version, entry.timestamp, nil
}

// Set stores a key/value pair.
func (m *MockCacheStore) Set(key string, value []byte, version int, timestamp int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = mockCacheEntry{value: value, version: version, timestamp: timestamp}
	return nil
}

// GetStatus reports the in-memory entry count.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return schema.CacheStatus{
		Backend:      "mock",
		Connected:    true,
		TotalEntries: len(m.entries),
	}, nil
}

// Close is a no-op for the mock.
func (m *MockCacheStore) Close() error { return nil }

// MockArchiveStore is an in-memory ArchiveStore for tests.
type MockArchiveStore struct {
	mu      sync.Mutex
	nextID  int64
	Runs    []schema.BatchRunRecord
	Records []schema.ContributionRowRecord
}

var _ contract.ArchiveStore = &MockArchiveStore{} // Compile-time check

// NewMockArchiveStore creates an empty in-memory archive store.
func NewMockArchiveStore() *MockArchiveStore {
	return &MockArchiveStore{nextID: 1}
}

// BeginRun appends a new run and returns its ID.
func (m *MockArchiveStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	runID := m.nextID
	m.nextID++
	m.Runs = append(m.Runs, schema.BatchRunRecord{RunID: runID, StartTime: startTime})
	return runID, nil
}

// EndRun finalizes a run.
func (m *MockArchiveStore) EndRun(runID int64, endTime time.Time, totalUsers int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Runs {
		if m.Runs[i].RunID == runID {
			end := endTime
			m.Runs[i].EndTime = &end
			m.Runs[i].TotalUsers = int32(totalUsers)
		}
	}
	return nil
}

// RecordContribution appends one graded record.
func (m *MockArchiveStore) RecordContribution(runID int64, record *schema.GradedRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, schema.ContributionRowRecord{
		RunID:              runID,
		Username:           record.Username,
		RecordTime:         time.Now(),
		Commits:            int32(record.Commits),
		TotalContributions: int32(record.TotalContributions()),
		OverallGrade:       string(record.OverallGrade),
	})
	return nil
}

// GetAllBatchRuns returns the stored runs.
func (m *MockArchiveStore) GetAllBatchRuns() ([]schema.BatchRunRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]schema.BatchRunRecord(nil), m.Runs...), nil
}

// GetAllContributionRecords returns the stored records.
func (m *MockArchiveStore) GetAllContributionRecords() ([]schema.ContributionRowRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]schema.ContributionRowRecord(nil), m.Records...), nil
}

// GetStatus reports counts over the in-memory data.
func (m *MockArchiveStore) GetStatus() (schema.ArchiveStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := schema.ArchiveStatus{
		Backend:   "mock",
		Connected: true,
		TotalRuns: len(m.Runs),
		TableSizes: map[string]int64{
			batchRunsTable:           int64(len(m.Runs)),
			contributionRecordsTable: int64(len(m.Records)),
		},
	}
	if len(m.Runs) > 0 {
		status.LastRunID = m.Runs[len(m.Runs)-1].RunID
		status.LastRunTime = m.Runs[len(m.Runs)-1].StartTime
		status.OldestRunTime = m.Runs[0].StartTime
	}
	return status, nil
}

// Close is a no-op for the mock.
func (m *MockArchiveStore) Close() error { return nil }

// MockCacheManager bundles mock stores behind the CacheManager interface.
type MockCacheManager struct {
	Records contract.CacheStore
	Archive contract.ArchiveStore
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// NewMockCacheManager creates a manager with fresh in-memory stores.
func NewMockCacheManager() *MockCacheManager {
	return &MockCacheManager{
		Records: NewMockCacheStore(),
		Archive: NewMockArchiveStore(),
	}
}

// GetRecordStore returns the record store.
func (m *MockCacheManager) GetRecordStore() contract.CacheStore { return m.Records }

// GetArchiveStore returns the archive store.
func (m *MockCacheManager) GetArchiveStore() contract.ArchiveStore { return m.Archive }
