package core

import (
	"context"
	"fmt"

	"github.com/Rohit-Singh-01/git-tracker/internal/contract"
	"github.com/Rohit-Singh-01/git-tracker/internal/gitlab"
	"github.com/Rohit-Singh-01/git-tracker/schema"
)

// discoverProjects gathers the projects a user relates to, deduplicates
// them, and caps the set at cfg.ProjectCap. Ownership precedence is
// owned, then contributed, then accessible. A source that fails produces
// a warning instead of sinking the whole user, but an authorization
// failure is terminal, and if every source fails the error is surfaced.
func discoverProjects(ctx context.Context, cfg *contract.Config, client contract.ForgeClient, identity *schema.Identity) (schema.ProjectSet, []string, error) {
	var warnings []string
	failures := 0
	sources := 2

	owned, err := client.ListOwnedProjects(ctx, identity.ID)
	if err != nil {
		if gitlab.IsAuthError(err) {
			return schema.ProjectSet{}, nil, fmt.Errorf("unauthorized while listing owned projects: %w", err)
		}
		failures++
		warnings = append(warnings, fmt.Sprintf("owned projects unavailable: %v", err))
	}

	contributed, err := client.ListContributedProjects(ctx, identity.ID)
	if err != nil {
		if gitlab.IsAuthError(err) {
			return schema.ProjectSet{}, nil, fmt.Errorf("unauthorized while listing contributed projects: %w", err)
		}
		failures++
		warnings = append(warnings, fmt.Sprintf("contributed projects unavailable: %v", err))
	}

	var accessible []gitlab.Project
	if cfg.IncludeAccessible {
		sources++
		accessible, err = client.ListMemberProjects(ctx)
		if err != nil {
			if gitlab.IsAuthError(err) {
				return schema.ProjectSet{}, nil, fmt.Errorf("unauthorized while listing accessible projects: %w", err)
			}
			failures++
			warnings = append(warnings, fmt.Sprintf("accessible projects unavailable: %v", err))
		}
	}

	if failures == sources {
		return schema.ProjectSet{}, warnings, fmt.Errorf("no project source reachable for %s", identity.Username)
	}

	set := dedupeProjects(owned, contributed, accessible, cfg.ProjectCap)
	return set, warnings, nil
}

// dedupeProjects merges the three sources by project ID, keeping the
// highest-precedence ownership for duplicates, and truncates at the cap.
func dedupeProjects(owned, contributed, accessible []gitlab.Project, limit int) schema.ProjectSet {
	var set schema.ProjectSet
	seen := make(map[int]struct{})

	add := func(projects []gitlab.Project, ownership schema.Ownership) {
		for _, p := range projects {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			if len(set.Projects) >= limit {
				set.Truncated = true
				continue
			}
			set.Projects = append(set.Projects, schema.Project{
				ID:                p.ID,
				Name:              p.Name,
				PathWithNamespace: p.PathWithNamespace,
				WebURL:            p.WebURL,
				Ownership:         ownership,
			})
		}
	}

	add(owned, schema.OwnedProject)
	add(contributed, schema.ContributedProject)
	add(accessible, schema.AccessibleProject)
	return set
}
