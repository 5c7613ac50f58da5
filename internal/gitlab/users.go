package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// FindUsersByUsername returns users whose username matches exactly.
func (c *Client) FindUsersByUsername(ctx context.Context, username string) ([]User, error) {
	query := url.Values{}
	query.Set("username", username)
	return fetchAll[User](ctx, c, "/users", query)
}

// SearchUsers returns users matching a free-text query on name or username.
func (c *Client) SearchUsers(ctx context.Context, search string) ([]User, error) {
	query := url.Values{}
	query.Set("search", search)
	return fetchAll[User](ctx, c, "/users", query)
}

// GetUser returns the full user detail for an ID, including any emails the
// user exposes. A missing user maps to ErrUserNotFound.
func (c *Client) GetUser(ctx context.Context, userID int) (*User, error) {
	user, err := getOne[User](ctx, c, fmt.Sprintf("/users/%d", userID), nil)
	if err != nil {
		if status, ok := StatusCode(err); ok && status == http.StatusNotFound {
			return nil, fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
		}
		return nil, err
	}
	return user, nil
}

// ListOwnedProjects returns projects the user owns directly.
func (c *Client) ListOwnedProjects(ctx context.Context, userID int) ([]Project, error) {
	return fetchAll[Project](ctx, c, fmt.Sprintf("/users/%d/projects", userID), nil)
}

// ListContributedProjects returns projects the user has contributed to.
func (c *Client) ListContributedProjects(ctx context.Context, userID int) ([]Project, error) {
	return fetchAll[Project](ctx, c, fmt.Sprintf("/users/%d/contributed_projects", userID), nil)
}

// ListMemberProjects returns projects the token holder is a member of.
// With an anonymous client this returns public projects only, so callers
// should treat it as best effort.
func (c *Client) ListMemberProjects(ctx context.Context) ([]Project, error) {
	query := url.Values{}
	query.Set("membership", "true")
	query.Set("simple", "true")
	return fetchAll[Project](ctx, c, "/projects", query)
}
