package schema

import "time"

// BatchRunRecord represents a row from the tracker_batch_runs table.
type BatchRunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalUsers    int32
	ConfigParams  *string
}

// ContributionRowRecord represents a row from the tracker_contribution_records table.
type ContributionRowRecord struct {
	RunID               int64
	Username            string
	RecordTime          time.Time
	Commits             int32
	MergeRequestsTotal  int32
	MergeRequestsOpened int32
	MergeRequestsClosed int32
	MergeRequestsMerged int32
	IssuesTotal         int32
	IssuesOpened        int32
	IssuesClosed        int32
	MRComments          int32
	IssueComments       int32
	TotalContributions  int32
	CommitGrade         string
	MergeRequestGrade   string
	IssueGrade          string
	OverallGrade        string
}
