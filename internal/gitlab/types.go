package gitlab

import (
	"strings"
	"time"
)

// User is the wire representation of a GitLab user. The email fields are
// only populated on the /users/:id detail endpoint, and only when the
// user chose to expose them.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	State        string `json:"state"`
	Email        string `json:"email,omitempty"`
	PublicEmail  string `json:"public_email,omitempty"`
	CommitEmail  string `json:"commit_email,omitempty"`
	WebURL       string `json:"web_url,omitempty"`
	CreatedAtRaw string `json:"created_at,omitempty"`
}

// KnownEmails returns the deduplicated, non-empty emails exposed by the user.
func (u *User) KnownEmails() []string {
	var emails []string
	seen := make(map[string]struct{})
	for _, email := range []string{u.Email, u.PublicEmail, u.CommitEmail} {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
	}
	return emails
}

// Project is the wire representation of a GitLab project.
type Project struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	PathWithNamespace string `json:"path_with_namespace"`
	WebURL            string `json:"web_url"`
	LastActivityAtRaw string `json:"last_activity_at,omitempty"`
}

// Commit is the wire representation of a repository commit. Author and
// committer can differ when a commit was applied on someone's behalf, so
// both sides are carried for author matching.
type Commit struct {
	ID             string `json:"id"`
	ShortID        string `json:"short_id"`
	Title          string `json:"title"`
	AuthorName     string `json:"author_name"`
	AuthorEmail    string `json:"author_email"`
	CommitterName  string `json:"committer_name"`
	CommitterEmail string `json:"committer_email"`
	CreatedAtRaw   string `json:"created_at"`
}

// Author identifies who created a merge request, issue, or note.
type Author struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// MergeRequest is the wire representation of a merge request.
type MergeRequest struct {
	ID           int    `json:"id"`
	IID          int    `json:"iid"`
	ProjectID    int    `json:"project_id"`
	Title        string `json:"title"`
	State        string `json:"state"`
	CreatedAtRaw string `json:"created_at"`
	Author       Author `json:"author"`
}

// Issue is the wire representation of an issue.
type Issue struct {
	ID           int    `json:"id"`
	IID          int    `json:"iid"`
	ProjectID    int    `json:"project_id"`
	Title        string `json:"title"`
	State        string `json:"state"`
	CreatedAtRaw string `json:"created_at"`
	Author       Author `json:"author"`
}

// Note is the wire representation of a discussion note.
type Note struct {
	ID           int    `json:"id"`
	Body         string `json:"body"`
	System       bool   `json:"system"`
	CreatedAtRaw string `json:"created_at"`
	Author       Author `json:"author"`
}

// Merge request and issue states as returned by the API.
const (
	StateOpened = "opened"
	StateClosed = "closed"
	StateMerged = "merged"
)

// timestampLayouts are the formats GitLab emits across endpoints.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000-07:00",
	time.DateOnly,
}

// ParseTimestamp parses a GitLab timestamp string. The second return value
// is false when the string is empty or in an unknown format.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
