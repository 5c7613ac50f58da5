package core

import (
	"context"

	"github.com/Rohit-Singh-01/git-tracker/internal/gitlab"
)

// mockForge implements contract.ForgeClient with overridable behavior.
// Unset hooks return empty results.
type mockForge struct {
	findUsersByUsername func(ctx context.Context, username string) ([]gitlab.User, error)
	searchUsers         func(ctx context.Context, query string) ([]gitlab.User, error)
	getUser             func(ctx context.Context, userID int) (*gitlab.User, error)

	listOwnedProjects       func(ctx context.Context, userID int) ([]gitlab.Project, error)
	listContributedProjects func(ctx context.Context, userID int) ([]gitlab.Project, error)
	listMemberProjects      func(ctx context.Context) ([]gitlab.Project, error)

	listCommits           func(ctx context.Context, projectID int, opts gitlab.CommitOptions) ([]gitlab.Commit, error)
	listMergeRequests     func(ctx context.Context, projectID int, opts gitlab.ListOptions) ([]gitlab.MergeRequest, error)
	listIssues            func(ctx context.Context, projectID int, opts gitlab.ListOptions) ([]gitlab.Issue, error)
	listMergeRequestNotes func(ctx context.Context, projectID, mergeRequestIID int) ([]gitlab.Note, error)
	listIssueNotes        func(ctx context.Context, projectID, issueIID int) ([]gitlab.Note, error)
}

func (m *mockForge) FindUsersByUsername(ctx context.Context, username string) ([]gitlab.User, error) {
	if m.findUsersByUsername != nil {
		return m.findUsersByUsername(ctx, username)
	}
	return nil, nil
}

func (m *mockForge) SearchUsers(ctx context.Context, query string) ([]gitlab.User, error) {
	if m.searchUsers != nil {
		return m.searchUsers(ctx, query)
	}
	return nil, nil
}

func (m *mockForge) GetUser(ctx context.Context, userID int) (*gitlab.User, error) {
	if m.getUser != nil {
		return m.getUser(ctx, userID)
	}
	return nil, gitlab.ErrUserNotFound
}

func (m *mockForge) ListOwnedProjects(ctx context.Context, userID int) ([]gitlab.Project, error) {
	if m.listOwnedProjects != nil {
		return m.listOwnedProjects(ctx, userID)
	}
	return nil, nil
}

func (m *mockForge) ListContributedProjects(ctx context.Context, userID int) ([]gitlab.Project, error) {
	if m.listContributedProjects != nil {
		return m.listContributedProjects(ctx, userID)
	}
	return nil, nil
}

func (m *mockForge) ListMemberProjects(ctx context.Context) ([]gitlab.Project, error) {
	if m.listMemberProjects != nil {
		return m.listMemberProjects(ctx)
	}
	return nil, nil
}

func (m *mockForge) ListCommits(ctx context.Context, projectID int, opts gitlab.CommitOptions) ([]gitlab.Commit, error) {
	if m.listCommits != nil {
		return m.listCommits(ctx, projectID, opts)
	}
	return nil, nil
}

func (m *mockForge) ListMergeRequests(ctx context.Context, projectID int, opts gitlab.ListOptions) ([]gitlab.MergeRequest, error) {
	if m.listMergeRequests != nil {
		return m.listMergeRequests(ctx, projectID, opts)
	}
	return nil, nil
}

func (m *mockForge) ListIssues(ctx context.Context, projectID int, opts gitlab.ListOptions) ([]gitlab.Issue, error) {
	if m.listIssues != nil {
		return m.listIssues(ctx, projectID, opts)
	}
	return nil, nil
}

func (m *mockForge) ListMergeRequestNotes(ctx context.Context, projectID, mergeRequestIID int) ([]gitlab.Note, error) {
	if m.listMergeRequestNotes != nil {
		return m.listMergeRequestNotes(ctx, projectID, mergeRequestIID)
	}
	return nil, nil
}

func (m *mockForge) ListIssueNotes(ctx context.Context, projectID, issueIID int) ([]gitlab.Note, error) {
	if m.listIssueNotes != nil {
		return m.listIssueNotes(ctx, projectID, issueIID)
	}
	return nil, nil
}
