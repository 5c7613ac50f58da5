package core

import (
	"strings"

	"github.com/Rohit-Singh-01/git-tracker/internal/gitlab"
	"github.com/Rohit-Singh-01/git-tracker/schema"
)

// countMergeRequests buckets merge requests by state. The server-side
// filters are advisory, so authorship and window are re-checked here.
// An item whose created_at is missing or unparseable is excluded.
func countMergeRequests(mrs []gitlab.MergeRequest, userID int, window schema.Window) schema.MergeRequestCounts {
	var counts schema.MergeRequestCounts
	for _, mr := range mrs {
		if mr.Author.ID != 0 && mr.Author.ID != userID {
			continue
		}
		t, ok := gitlab.ParseTimestamp(mr.CreatedAtRaw)
		if !ok || !window.Contains(t) {
			continue
		}
		counts.Total++
		switch mr.State {
		case gitlab.StateOpened:
			counts.Opened++
		case gitlab.StateClosed:
			counts.Closed++
		case gitlab.StateMerged:
			counts.Merged++
		}
	}
	return counts
}

// countIssues buckets issues by state with the same authorship and
// window re-checks.
func countIssues(issues []gitlab.Issue, userID int, window schema.Window) schema.IssueCounts {
	var counts schema.IssueCounts
	for _, issue := range issues {
		if issue.Author.ID != 0 && issue.Author.ID != userID {
			continue
		}
		t, ok := gitlab.ParseTimestamp(issue.CreatedAtRaw)
		if !ok || !window.Contains(t) {
			continue
		}
		counts.Total++
		switch issue.State {
		case gitlab.StateOpened:
			counts.Opened++
		case gitlab.StateClosed:
			counts.Closed++
		}
	}
	return counts
}

// countCommitsInWindow counts commits whose timestamp parses and lands
// in the window. A missing or unparseable timestamp excludes the commit.
func countCommitsInWindow(commits []gitlab.Commit, window schema.Window) int {
	count := 0
	for _, c := range commits {
		if commitInWindow(c, window) {
			count++
		}
	}
	return count
}

func commitInWindow(c gitlab.Commit, window schema.Window) bool {
	t, ok := gitlab.ParseTimestamp(c.CreatedAtRaw)
	if !ok {
		return false
	}
	return window.Contains(t)
}

// authorMatches is the client-side tier of the author cascade, checked
// against both the author and committer sides of a commit:
// a known email always matches; then the username or display name must
// equal the commit name; then, unless strict mode is on, the display
// name's first and last tokens must both appear in the commit name.
func authorMatches(c gitlab.Commit, identity *schema.Identity, strict bool) bool {
	for _, email := range []string{c.AuthorEmail, c.CommitterEmail} {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}
		for _, known := range identity.Emails {
			if email == known {
				return true
			}
		}
	}

	names := []string{strings.TrimSpace(c.AuthorName), strings.TrimSpace(c.CommitterName)}
	for _, name := range names {
		if name == "" {
			continue
		}
		if identity.Username != "" && strings.EqualFold(name, identity.Username) {
			return true
		}
		if identity.Name != "" && strings.EqualFold(name, identity.Name) {
			return true
		}
	}
	if strict {
		return false
	}

	tokens := strings.Fields(strings.ToLower(identity.Name))
	if len(tokens) < 2 {
		return false
	}
	first, last := tokens[0], tokens[len(tokens)-1]
	for _, name := range names {
		lowered := strings.ToLower(name)
		if lowered == "" {
			continue
		}
		if strings.Contains(lowered, first) && strings.Contains(lowered, last) {
			return true
		}
	}
	return false
}
