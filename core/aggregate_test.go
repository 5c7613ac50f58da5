package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rohit-Singh-01/git-tracker/internal/gitlab"
	"github.com/Rohit-Singh-01/git-tracker/schema"
)

func TestCountMergeRequests(t *testing.T) {
	window := testConfig().Window()
	mrs := []gitlab.MergeRequest{
		{ID: 1, State: gitlab.StateMerged, CreatedAtRaw: "2023-03-01T00:00:00Z", Author: gitlab.Author{ID: 3}},
		{ID: 2, State: gitlab.StateOpened, CreatedAtRaw: "2023-04-01T00:00:00Z", Author: gitlab.Author{ID: 3}},
		{ID: 3, State: gitlab.StateClosed, CreatedAtRaw: "2023-05-01T00:00:00Z", Author: gitlab.Author{ID: 3}},
		{ID: 4, State: gitlab.StateMerged, CreatedAtRaw: "2021-01-01T00:00:00Z", Author: gitlab.Author{ID: 3}}, // outside window
		{ID: 5, State: gitlab.StateMerged, CreatedAtRaw: "2023-03-02T00:00:00Z", Author: gitlab.Author{ID: 8}}, // someone else
		{ID: 6, State: gitlab.StateMerged, CreatedAtRaw: "not a timestamp", Author: gitlab.Author{ID: 3}},
		{ID: 7, State: gitlab.StateMerged, Author: gitlab.Author{ID: 3}}, // no timestamp at all
	}

	counts := countMergeRequests(mrs, 3, window)
	assert.Equal(t, schema.MergeRequestCounts{Total: 3, Opened: 1, Closed: 1, Merged: 1}, counts)
}

func TestCountIssues(t *testing.T) {
	window := testConfig().Window()
	issues := []gitlab.Issue{
		{ID: 1, State: gitlab.StateOpened, CreatedAtRaw: "2023-03-01T00:00:00Z", Author: gitlab.Author{ID: 3}},
		{ID: 2, State: gitlab.StateClosed, CreatedAtRaw: "2023-04-01T00:00:00Z", Author: gitlab.Author{ID: 3}},
		{ID: 3, State: gitlab.StateOpened, CreatedAtRaw: "2030-01-01T00:00:00Z", Author: gitlab.Author{ID: 3}}, // outside window
		{ID: 4, State: gitlab.StateOpened, CreatedAtRaw: "2023-04-02T00:00:00Z", Author: gitlab.Author{ID: 8}}, // someone else
		{ID: 5, State: gitlab.StateOpened, CreatedAtRaw: ""},
	}

	counts := countIssues(issues, 3, window)
	assert.Equal(t, schema.IssueCounts{Total: 2, Opened: 1, Closed: 1}, counts)
}

func TestCountCommitsInWindowExcludesUnparsable(t *testing.T) {
	window := testConfig().Window()
	commits := []gitlab.Commit{
		{ID: "a", CreatedAtRaw: "2023-06-01T00:00:00Z"},
		{ID: "b", CreatedAtRaw: "not a timestamp"},
		{ID: "c", CreatedAtRaw: ""},
		{ID: "d", CreatedAtRaw: "2019-06-01T00:00:00Z"},
	}

	assert.Equal(t, 1, countCommitsInWindow(commits, window))
}

func TestAuthorMatches(t *testing.T) {
	identity := &schema.Identity{
		ID:       3,
		Username: "asmith",
		Name:     "Alice Marie Smith",
		Emails:   []string{"alice@example.com"},
	}

	tests := []struct {
		name   string
		commit gitlab.Commit
		strict bool
		want   bool
	}{
		{
			name:   "author email match",
			commit: gitlab.Commit{AuthorEmail: "Alice@Example.com "},
			want:   true,
		},
		{
			name:   "committer email match",
			commit: gitlab.Commit{AuthorEmail: "other@example.com", CommitterEmail: "alice@example.com"},
			strict: true,
			want:   true,
		},
		{
			name:   "username match despite name mismatch",
			commit: gitlab.Commit{AuthorName: "asmith"},
			strict: true,
			want:   true,
		},
		{
			name:   "exact display name match",
			commit: gitlab.Commit{AuthorName: "alice marie smith"},
			strict: true,
			want:   true,
		},
		{
			name:   "committer name match",
			commit: gitlab.Commit{AuthorName: "CI Bot", CommitterName: "Alice Marie Smith"},
			strict: true,
			want:   true,
		},
		{
			name:   "first and last token match when not strict",
			commit: gitlab.Commit{AuthorName: "Alice Smith"},
			want:   true,
		},
		{
			name:   "token match rejected when strict",
			commit: gitlab.Commit{AuthorName: "Alice Smith"},
			strict: true,
			want:   false,
		},
		{
			name:   "token match tolerates decoration",
			commit: gitlab.Commit{AuthorName: "Alice Smith (laptop)"},
			want:   true,
		},
		{
			name:   "single token is not enough",
			commit: gitlab.Commit{AuthorName: "Alice Jones"},
			want:   false,
		},
		{
			name:   "no match",
			commit: gitlab.Commit{AuthorName: "Mallory", AuthorEmail: "mallory@example.com"},
			want:   false,
		},
		{
			name:   "empty author",
			commit: gitlab.Commit{},
			want:   false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, authorMatches(tc.commit, identity, tc.strict))
		})
	}
}
