// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/Rohit-Singh-01/git-tracker/internal/gitlab"
	"github.com/Rohit-Singh-01/git-tracker/schema"
)

// ForgeClient defines the forge API operations needed for contribution aggregation.
// This allows the core collection logic to be tested without a live GitLab instance.
type ForgeClient interface {
	// --- Identity resolution ---

	// FindUsersByUsername returns users whose username matches exactly.
	FindUsersByUsername(ctx context.Context, username string) ([]gitlab.User, error)

	// SearchUsers returns users matching a free-text query on name or username.
	SearchUsers(ctx context.Context, query string) ([]gitlab.User, error)

	// GetUser returns the full user detail for an ID, including public emails.
	GetUser(ctx context.Context, userID int) (*gitlab.User, error)

	// --- Project discovery ---

	// ListOwnedProjects returns projects the user owns directly.
	ListOwnedProjects(ctx context.Context, userID int) ([]gitlab.Project, error)

	// ListContributedProjects returns projects the user has contributed to.
	ListContributedProjects(ctx context.Context, userID int) ([]gitlab.Project, error)

	// ListMemberProjects returns projects the token holder is a member of.
	ListMemberProjects(ctx context.Context) ([]gitlab.Project, error)

	// --- Contribution events ---

	// ListCommits returns repository commits for a project, optionally filtered
	// by author name or author email on the server side.
	ListCommits(ctx context.Context, projectID int, opts gitlab.CommitOptions) ([]gitlab.Commit, error)

	// ListMergeRequests returns merge requests for a project within a window.
	ListMergeRequests(ctx context.Context, projectID int, opts gitlab.ListOptions) ([]gitlab.MergeRequest, error)

	// ListIssues returns issues for a project within a window.
	ListIssues(ctx context.Context, projectID int, opts gitlab.ListOptions) ([]gitlab.Issue, error)

	// ListMergeRequestNotes returns discussion notes on a merge request.
	ListMergeRequestNotes(ctx context.Context, projectID, mergeRequestIID int) ([]gitlab.Note, error)

	// ListIssueNotes returns discussion notes on an issue.
	ListIssueNotes(ctx context.Context, projectID, issueIID int) ([]gitlab.Note, error)
}

// CacheManager defines the interface for managing persistence stores.
// This allows the persistence layer to be mocked for testing.
type CacheManager interface {
	GetRecordStore() CacheStore
	GetArchiveStore() ArchiveStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// ArchiveStore defines the interface for tracking batch runs and storing graded records.
type ArchiveStore interface {
	// BeginRun creates a new batch run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the batch run with completion data
	EndRun(runID int64, endTime time.Time, totalUsers int) error

	// RecordContribution stores one graded record for a run
	RecordContribution(runID int64, record *schema.GradedRecord) error

	// GetAllBatchRuns returns every batch run row for export
	GetAllBatchRuns() ([]schema.BatchRunRecord, error)

	// GetAllContributionRecords returns every contribution row for export
	GetAllContributionRecords() ([]schema.ContributionRowRecord, error)

	// GetStatus returns status information about the archive store
	GetStatus() (schema.ArchiveStatus, error)

	// Close closes the underlying connection
	Close() error
}
