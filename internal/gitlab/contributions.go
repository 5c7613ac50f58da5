package gitlab

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// CommitOptions controls repository commit listing. Author is a
// server-side name search, AuthorEmail an exact email filter.
type CommitOptions struct {
	Author      string
	AuthorEmail string
	Since       time.Time
	Until       time.Time
}

// ListOptions controls merge request and issue listing. A zero AuthorID
// means no author filter.
type ListOptions struct {
	AuthorID      int
	CreatedAfter  time.Time
	CreatedBefore time.Time
}

// ListCommits returns repository commits for a project.
func (c *Client) ListCommits(ctx context.Context, projectID int, opts CommitOptions) ([]Commit, error) {
	query := url.Values{}
	if opts.Author != "" {
		query.Set("author", opts.Author)
	}
	if opts.AuthorEmail != "" {
		query.Set("author_email", opts.AuthorEmail)
	}
	if !opts.Since.IsZero() {
		query.Set("since", opts.Since.Format(time.RFC3339))
	}
	if !opts.Until.IsZero() {
		query.Set("until", opts.Until.Format(time.RFC3339))
	}
	return fetchAll[Commit](ctx, c, fmt.Sprintf("/projects/%d/repository/commits", projectID), query)
}

// ListMergeRequests returns merge requests for a project.
func (c *Client) ListMergeRequests(ctx context.Context, projectID int, opts ListOptions) ([]MergeRequest, error) {
	path := fmt.Sprintf("/projects/%d/merge_requests", projectID)
	return fetchAll[MergeRequest](ctx, c, path, listQuery(opts))
}

// ListIssues returns issues for a project.
func (c *Client) ListIssues(ctx context.Context, projectID int, opts ListOptions) ([]Issue, error) {
	path := fmt.Sprintf("/projects/%d/issues", projectID)
	return fetchAll[Issue](ctx, c, path, listQuery(opts))
}

// ListMergeRequestNotes returns discussion notes on a merge request.
func (c *Client) ListMergeRequestNotes(ctx context.Context, projectID, mergeRequestIID int) ([]Note, error) {
	path := fmt.Sprintf("/projects/%d/merge_requests/%d/notes", projectID, mergeRequestIID)
	return fetchAll[Note](ctx, c, path, nil)
}

// ListIssueNotes returns discussion notes on an issue.
func (c *Client) ListIssueNotes(ctx context.Context, projectID, issueIID int) ([]Note, error) {
	path := fmt.Sprintf("/projects/%d/issues/%d/notes", projectID, issueIID)
	return fetchAll[Note](ctx, c, path, nil)
}

// listQuery builds the shared query parameters for MR and issue listings.
func listQuery(opts ListOptions) url.Values {
	query := url.Values{}
	query.Set("state", "all")
	query.Set("scope", "all")
	if opts.AuthorID > 0 {
		query.Set("author_id", strconv.Itoa(opts.AuthorID))
	}
	if !opts.CreatedAfter.IsZero() {
		query.Set("created_after", opts.CreatedAfter.Format(time.RFC3339))
	}
	if !opts.CreatedBefore.IsZero() {
		query.Set("created_before", opts.CreatedBefore.Format(time.RFC3339))
	}
	return query
}
