package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommitsQueryParams(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `[{"id":"abc123","author_name":"Alice","author_email":"alice@example.com","created_at":"2024-02-01T09:00:00Z"}]`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	commits, err := client.ListCommits(context.Background(), 42, CommitOptions{
		Author: "alice",
		Since:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Until:  time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "/api/v4/projects/42/repository/commits", gotPath)
	assert.Equal(t, "alice", gotQuery.Get("author"))
	assert.Equal(t, "2024-01-01T00:00:00Z", gotQuery.Get("since"))
	assert.Equal(t, "2024-12-31T00:00:00Z", gotQuery.Get("until"))
}

func TestListCommitsAuthorEmailParam(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	_, err := client.ListCommits(context.Background(), 42, CommitOptions{
		AuthorEmail: "alice@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", gotQuery.Get("author_email"))
	assert.False(t, gotQuery.Has("author"))
}

func TestListCommitsOmitsEmptyAuthor(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	_, err := client.ListCommits(context.Background(), 42, CommitOptions{})
	require.NoError(t, err)
	assert.False(t, gotQuery.Has("author"))
}

func TestListMergeRequestsQueryParams(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `[{"id":1,"iid":3,"state":"merged","created_at":"2024-02-01T09:00:00Z","author":{"id":7,"username":"alice"}}]`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	mrs, err := client.ListMergeRequests(context.Background(), 42, ListOptions{
		AuthorID:      7,
		CreatedAfter:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CreatedBefore: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, mrs, 1)
	assert.Equal(t, "/api/v4/projects/42/merge_requests", gotPath)
	assert.Equal(t, "7", gotQuery.Get("author_id"))
	assert.Equal(t, "all", gotQuery.Get("state"))
	assert.Equal(t, "all", gotQuery.Get("scope"))
	assert.Equal(t, "2024-01-01T00:00:00Z", gotQuery.Get("created_after"))
	assert.Equal(t, StateMerged, mrs[0].State)
}

func TestListIssuesZeroAuthorHasNoFilter(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	_, err := client.ListIssues(context.Background(), 42, ListOptions{})
	require.NoError(t, err)
	assert.False(t, gotQuery.Has("author_id"))
}

func TestListNotesPaths(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		fmt.Fprint(w, `[{"id":1,"body":"looks good","system":false,"created_at":"2024-02-01T09:00:00Z","author":{"id":7,"username":"alice"}}]`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)

	notes, err := client.ListMergeRequestNotes(context.Background(), 42, 3)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.False(t, notes[0].System)

	_, err = client.ListIssueNotes(context.Background(), 42, 9)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/api/v4/projects/42/merge_requests/3/notes",
		"/api/v4/projects/42/issues/9/notes",
	}, paths)
}

func TestGetUserNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"404 User Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	_, err := client.GetUser(context.Background(), 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
