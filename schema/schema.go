// Package schema has shared types for contribution tracking.
package schema

import "time"

// Identity is a resolved forge user.
type Identity struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Emails   []string `json:"emails,omitempty"`
}

// Project is a single repository that a user relates to.
type Project struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	PathWithNamespace string    `json:"path_with_namespace"`
	WebURL            string    `json:"web_url"`
	Ownership         Ownership `json:"ownership"`
}

// ProjectSet is the deduplicated set of projects chosen for collection.
type ProjectSet struct {
	Projects  []Project `json:"projects"`
	Truncated bool      `json:"truncated"`
}

// Window is an inclusive date range used to bound contribution activity.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window, boundaries included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// MergeRequestCounts breaks down merge request activity by state.
type MergeRequestCounts struct {
	Total  int `json:"total"`
	Opened int `json:"opened"`
	Closed int `json:"closed"`
	Merged int `json:"merged"`
}

// IssueCounts breaks down issue activity by state.
type IssueCounts struct {
	Total  int `json:"total"`
	Opened int `json:"opened"`
	Closed int `json:"closed"`
}

// AggregateRecord is the per-user rollup across all scanned projects.
type AggregateRecord struct {
	Username            string             `json:"username"`
	Name                string             `json:"name"`
	UserID              int                `json:"user_id"`
	Commits             int                `json:"commits"`
	MergeRequests       MergeRequestCounts `json:"merge_requests"`
	Issues              IssueCounts        `json:"issues"`
	MRComments          int                `json:"mr_comments"`
	IssueComments       int                `json:"issue_comments"`
	ProjectsOwned       int                `json:"projects_owned"`
	ProjectsContributed int                `json:"projects_contributed"`
	ProjectsScanned     int                `json:"projects_scanned"`
	WindowStart         time.Time          `json:"window_start"`
	WindowEnd           time.Time          `json:"window_end"`
	Warnings            []string           `json:"warnings,omitempty"`
}

// TotalContributions sums all five contribution categories.
func (r *AggregateRecord) TotalContributions() int {
	return r.Commits + r.MergeRequests.Total + r.Issues.Total + r.MRComments + r.IssueComments
}

// CohortStats holds the cohort means used for grading a batch.
type CohortStats struct {
	MeanCommits       float64 `json:"mean_commits"`
	MeanMergeRequests float64 `json:"mean_merge_requests"`
	MeanIssues        float64 `json:"mean_issues"`
	MeanTotal         float64 `json:"mean_total"`
	CohortSize        int     `json:"cohort_size"`
}

// GradedRecord is an aggregate record plus its grades against the cohort.
type GradedRecord struct {
	AggregateRecord
	CommitGrade       Grade `json:"commit_grade"`
	MergeRequestGrade Grade `json:"merge_request_grade"`
	IssueGrade        Grade `json:"issue_grade"`
	OverallGrade      Grade `json:"overall_grade"`
}

// BatchResult pairs a username with its outcome. A failed user carries
// Err and a nil Record so one bad username never sinks the whole batch.
type BatchResult struct {
	Username string
	Record   *GradedRecord
	Err      error
}
