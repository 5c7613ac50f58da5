package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rohit-Singh-01/git-tracker/internal/contract"
	"github.com/Rohit-Singh-01/git-tracker/internal/gitlab"
	"github.com/Rohit-Singh-01/git-tracker/schema"
)

// resolveIdentity maps a username to a forge user. Exact username matches
// win; when strict matching is off, a fuzzy search over names and usernames
// is tried before giving up.
func resolveIdentity(ctx context.Context, cfg *contract.Config, client contract.ForgeClient, username string) (*schema.Identity, error) {
	users, err := client.FindUsersByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}

	match := pickExactMatch(users, username)

	if match == nil && !cfg.StrictMatch {
		candidates, err := client.SearchUsers(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("search users for %q: %w", username, err)
		}
		match = pickFuzzyMatch(candidates, username)
	}

	if match == nil {
		return nil, fmt.Errorf("user %q: %w", username, gitlab.ErrUserNotFound)
	}

	// The detail endpoint is the only place emails show up. Fall back to
	// the listing payload when it fails, since collection can still run.
	detail, err := client.GetUser(ctx, match.ID)
	if err != nil {
		detail = match
	}

	return &schema.Identity{
		ID:       detail.ID,
		Username: detail.Username,
		Name:     detail.Name,
		Emails:   detail.KnownEmails(),
	}, nil
}

// pickExactMatch prefers a case-insensitive username match, then falls
// back to the first result of the exact-username query.
func pickExactMatch(users []gitlab.User, username string) *gitlab.User {
	for i := range users {
		if strings.EqualFold(users[i].Username, username) {
			return &users[i]
		}
	}
	if len(users) > 0 {
		return &users[0]
	}
	return nil
}

// pickFuzzyMatch scores search results: username prefix beats name
// substring, and earlier results win ties.
func pickFuzzyMatch(users []gitlab.User, query string) *gitlab.User {
	lowered := strings.ToLower(query)

	for i := range users {
		if strings.HasPrefix(strings.ToLower(users[i].Username), lowered) {
			return &users[i]
		}
	}
	for i := range users {
		if strings.Contains(strings.ToLower(users[i].Name), lowered) {
			return &users[i]
		}
	}
	return nil
}
