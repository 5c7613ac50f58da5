package core

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rohit-Singh-01/git-tracker/internal/gitlab"
	"github.com/Rohit-Singh-01/git-tracker/schema"
)

var testIdentity = &schema.Identity{
	ID:       3,
	Username: "alice",
	Name:     "Alice Smith",
	Emails:   []string{"alice@example.com"},
}

func TestCollectCommitsUsernameTier(t *testing.T) {
	client := &mockForge{
		listCommits: func(_ context.Context, _ int, opts gitlab.CommitOptions) ([]gitlab.Commit, error) {
			require.Equal(t, "alice", opts.Author)
			return []gitlab.Commit{
				{ID: "c1", CreatedAtRaw: "2023-06-01T10:00:00Z"},
				{ID: "c2", CreatedAtRaw: "2023-06-02T10:00:00Z"},
			}, nil
		},
	}

	cfg := testConfig()
	count, err := collectCommits(context.Background(), cfg, client, testIdentity, 1, cfg.Window())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCollectCommitsEmailTierDedupes(t *testing.T) {
	identity := &schema.Identity{
		ID:       3,
		Username: "alice",
		Name:     "Alice Smith",
		Emails:   []string{"alice@example.com", "alice@work.example"},
	}
	client := &mockForge{
		listCommits: func(_ context.Context, _ int, opts gitlab.CommitOptions) ([]gitlab.Commit, error) {
			switch {
			case opts.Author == "alice":
				return nil, nil
			case opts.AuthorEmail == "alice@example.com", opts.AuthorEmail == "alice@work.example":
				// Same commit returned for both addresses.
				return []gitlab.Commit{{ID: "c1", CreatedAtRaw: "2023-06-01T10:00:00Z"}}, nil
			default:
				t.Fatalf("unexpected unfiltered call after email tier hit")
				return nil, nil
			}
		},
	}

	cfg := testConfig()
	count, err := collectCommits(context.Background(), cfg, client, identity, 1, cfg.Window())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCollectCommitsUnfilteredTier(t *testing.T) {
	client := &mockForge{
		listCommits: func(_ context.Context, _ int, opts gitlab.CommitOptions) ([]gitlab.Commit, error) {
			if opts.Author != "" || opts.AuthorEmail != "" {
				return nil, nil
			}
			return []gitlab.Commit{
				{ID: "c1", AuthorEmail: "alice@example.com", CreatedAtRaw: "2023-06-01T10:00:00Z"},
				{ID: "c2", AuthorName: "Alice Smith", CreatedAtRaw: "2023-06-02T10:00:00Z"},
				{ID: "c3", AuthorName: "Mallory", AuthorEmail: "mallory@example.com", CreatedAtRaw: "2023-06-03T10:00:00Z"},
			}, nil
		},
	}

	cfg := testConfig()
	count, err := collectCommits(context.Background(), cfg, client, testIdentity, 1, cfg.Window())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCollectCommitsWindowFilter(t *testing.T) {
	client := &mockForge{
		listCommits: func(_ context.Context, _ int, opts gitlab.CommitOptions) ([]gitlab.Commit, error) {
			if opts.Author != "alice" {
				return nil, nil
			}
			return []gitlab.Commit{
				{ID: "in", CreatedAtRaw: "2023-06-01T10:00:00Z"},
				{ID: "out", CreatedAtRaw: "2024-06-01T10:00:00Z"},
			}, nil
		},
	}

	cfg := testConfig()
	count, err := collectCommits(context.Background(), cfg, client, testIdentity, 1, cfg.Window())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCountUserNotes(t *testing.T) {
	window := testConfig().Window()
	notes := []gitlab.Note{
		{ID: 1, Body: "looks good", CreatedAtRaw: "2023-06-01T10:00:00Z", Author: gitlab.Author{ID: 3}},
		{ID: 2, Body: "assigned to @alice", System: true, CreatedAtRaw: "2023-06-01T10:00:00Z", Author: gitlab.Author{ID: 3}},
		{ID: 3, Body: "   ", CreatedAtRaw: "2023-06-01T10:00:00Z", Author: gitlab.Author{ID: 3}},
		{ID: 4, Body: "from someone else", CreatedAtRaw: "2023-06-01T10:00:00Z", Author: gitlab.Author{ID: 8}},
		{ID: 5, Body: "too late", CreatedAtRaw: "2024-06-01T10:00:00Z", Author: gitlab.Author{ID: 3}},
	}

	assert.Equal(t, 1, countUserNotes(notes, 3, window))
}

func TestCountUserNotesExcludesBadTimestamps(t *testing.T) {
	window := testConfig().Window()
	notes := []gitlab.Note{
		{ID: 1, Body: "when was this", CreatedAtRaw: "garbage-not-a-date", Author: gitlab.Author{ID: 3}},
		{ID: 2, Body: "no timestamp", CreatedAtRaw: "", Author: gitlab.Author{ID: 3}},
	}

	assert.Equal(t, 0, countUserNotes(notes, 3, window))
}

func TestCollectContributionsFoldsProjects(t *testing.T) {
	client := &mockForge{
		listOwnedProjects: func(_ context.Context, _ int) ([]gitlab.Project, error) {
			return []gitlab.Project{
				{ID: 1, PathWithNamespace: "alice/one"},
				{ID: 2, PathWithNamespace: "alice/two"},
			}, nil
		},
		listContributedProjects: func(_ context.Context, _ int) ([]gitlab.Project, error) {
			return []gitlab.Project{{ID: 5, PathWithNamespace: "team/quiet"}}, nil
		},
		listCommits: func(_ context.Context, projectID int, opts gitlab.CommitOptions) ([]gitlab.Commit, error) {
			if opts.Author != "alice" {
				return nil, nil
			}
			switch projectID {
			case 1:
				return []gitlab.Commit{{ID: "a", CreatedAtRaw: "2023-06-01T10:00:00Z"}}, nil
			case 2:
				return []gitlab.Commit{
					{ID: "b", CreatedAtRaw: "2023-06-02T10:00:00Z"},
					{ID: "c", CreatedAtRaw: "2023-06-03T10:00:00Z"},
				}, nil
			default:
				return nil, nil
			}
		},
		listMergeRequests: func(_ context.Context, projectID int, opts gitlab.ListOptions) ([]gitlab.MergeRequest, error) {
			if opts.AuthorID != 3 || projectID != 1 {
				return nil, nil
			}
			return []gitlab.MergeRequest{
				{ID: 10, IID: 1, State: gitlab.StateMerged, CreatedAtRaw: "2023-06-01T10:00:00Z", Author: gitlab.Author{ID: 3}},
				{ID: 11, IID: 2, State: gitlab.StateOpened, CreatedAtRaw: "2023-06-02T10:00:00Z", Author: gitlab.Author{ID: 3}},
			}, nil
		},
		listIssues: func(_ context.Context, projectID int, opts gitlab.ListOptions) ([]gitlab.Issue, error) {
			if opts.AuthorID != 3 || projectID != 2 {
				return nil, nil
			}
			return []gitlab.Issue{
				{ID: 20, IID: 1, State: gitlab.StateClosed, CreatedAtRaw: "2023-06-01T10:00:00Z", Author: gitlab.Author{ID: 3}},
			}, nil
		},
	}

	record, err := collectContributions(context.Background(), testConfig(), client, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, 3, record.Commits)
	assert.Equal(t, 2, record.MergeRequests.Total)
	assert.Equal(t, 1, record.MergeRequests.Merged)
	assert.Equal(t, 1, record.MergeRequests.Opened)
	assert.Equal(t, 1, record.Issues.Total)
	assert.Equal(t, 1, record.Issues.Closed)
	assert.Equal(t, 3, record.ProjectsScanned)
	assert.Equal(t, 2, record.ProjectsOwned)
	assert.Equal(t, 1, record.ProjectsContributed)
	assert.Empty(t, record.Warnings)
	assert.Equal(t, 6, record.TotalContributions())
}

func TestCollectContributionsUnauthorizedAborts(t *testing.T) {
	authErr := gitlab.NewStatusError(http.StatusUnauthorized, errors.New("token revoked"))
	client := &mockForge{
		listOwnedProjects: func(_ context.Context, _ int) ([]gitlab.Project, error) {
			return []gitlab.Project{{ID: 1, PathWithNamespace: "alice/one"}}, nil
		},
		listCommits: func(_ context.Context, _ int, _ gitlab.CommitOptions) ([]gitlab.Commit, error) {
			return nil, authErr
		},
	}

	record, err := collectContributions(context.Background(), testConfig(), client, testIdentity)
	require.Error(t, err)
	assert.ErrorContains(t, err, "unauthorized")
	assert.Nil(t, record)
}

func TestCollectProjectMapsNotFoundToZero(t *testing.T) {
	notFound := gitlab.NewStatusError(http.StatusNotFound, errors.New("empty repository"))
	client := &mockForge{
		listCommits: func(_ context.Context, _ int, _ gitlab.CommitOptions) ([]gitlab.Commit, error) {
			return nil, notFound
		},
	}

	cfg := testConfig()
	project := schema.Project{ID: 1, PathWithNamespace: "alice/empty"}
	tally := collectProject(context.Background(), cfg, client, testIdentity, project, cfg.Window())
	require.NoError(t, tally.err)
	assert.Equal(t, 0, tally.commits)
	assert.Empty(t, tally.warnings)
}

func TestCollectCommentsOnOlderParents(t *testing.T) {
	// The merge request predates the window; its note does not.
	client := &mockForge{
		listOwnedProjects: func(_ context.Context, _ int) ([]gitlab.Project, error) {
			return []gitlab.Project{{ID: 1, PathWithNamespace: "alice/one"}}, nil
		},
		listMergeRequests: func(_ context.Context, _ int, opts gitlab.ListOptions) ([]gitlab.MergeRequest, error) {
			require.True(t, opts.CreatedAfter.IsZero(), "parent listing must not have a lower creation bound")
			return []gitlab.MergeRequest{
				{ID: 10, IID: 1, State: gitlab.StateMerged, CreatedAtRaw: "2021-02-01T10:00:00Z", Author: gitlab.Author{ID: 3}},
			}, nil
		},
		listMergeRequestNotes: func(_ context.Context, _ int, _ int) ([]gitlab.Note, error) {
			return []gitlab.Note{
				{ID: 1, Body: "revisiting this", CreatedAtRaw: "2023-06-01T10:00:00Z", Author: gitlab.Author{ID: 3}},
			}, nil
		},
	}

	record, err := collectContributions(context.Background(), testConfig(), client, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, 0, record.MergeRequests.Total)
	assert.Equal(t, 1, record.MRComments)
}

func TestCollectContributionsTruncationWarning(t *testing.T) {
	client := &mockForge{
		listOwnedProjects: func(_ context.Context, _ int) ([]gitlab.Project, error) {
			return []gitlab.Project{{ID: 1}, {ID: 2}, {ID: 3}}, nil
		},
	}

	cfg := testConfig()
	cfg.ProjectCap = 2
	record, err := collectContributions(context.Background(), cfg, client, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, 2, record.ProjectsScanned)
	require.NotEmpty(t, record.Warnings)
	assert.Contains(t, record.Warnings[len(record.Warnings)-1], "truncated at 2")
}
