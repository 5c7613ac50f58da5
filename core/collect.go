package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Rohit-Singh-01/git-tracker/internal/contract"
	"github.com/Rohit-Singh-01/git-tracker/internal/gitlab"
	"github.com/Rohit-Singh-01/git-tracker/schema"
)

// projectTally is the per-project contribution count produced by one
// worker. A non-nil err means collection hit a failure that must abort
// the whole query, not just this project.
type projectTally struct {
	commits       int
	mergeRequests schema.MergeRequestCounts
	issues        schema.IssueCounts
	mrComments    int
	issueComments int
	warnings      []string
	err           error
}

// collectContributions fans project collection out over a worker pool and
// folds the tallies into a single aggregate record. A project that fails
// becomes a warning on the record; an authorization failure aborts the
// whole query.
func collectContributions(ctx context.Context, cfg *contract.Config, client contract.ForgeClient, identity *schema.Identity) (*schema.AggregateRecord, error) {
	set, warnings, err := discoverProjects(ctx, cfg, client, identity)
	if err != nil {
		return nil, err
	}
	if set.Truncated {
		warnings = append(warnings, fmt.Sprintf("project list truncated at %d", cfg.ProjectCap))
	}

	window := cfg.Window()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	projectCh := make(chan schema.Project, len(set.Projects))
	resultCh := make(chan projectTally, len(set.Projects))

	workers := cfg.Concurrency
	if workers > len(set.Projects) {
		workers = len(set.Projects)
	}

	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for project := range projectCh {
				tally := collectProject(ctx, cfg, client, identity, project, window)
				if tally.err != nil {
					cancel()
				}
				resultCh <- tally
			}
		})
	}

	for _, project := range set.Projects {
		projectCh <- project
	}
	close(projectCh)
	wg.Wait()
	close(resultCh)

	record := &schema.AggregateRecord{
		Username:        identity.Username,
		Name:            identity.Name,
		UserID:          identity.ID,
		ProjectsScanned: len(set.Projects),
		WindowStart:     window.Start,
		WindowEnd:       window.End,
	}
	for _, p := range set.Projects {
		switch p.Ownership {
		case schema.OwnedProject:
			record.ProjectsOwned++
		case schema.ContributedProject:
			record.ProjectsContributed++
		}
	}
	var fatal error
	for tally := range resultCh {
		if tally.err != nil && fatal == nil {
			fatal = tally.err
		}
		record.Commits += tally.commits
		record.MergeRequests.Total += tally.mergeRequests.Total
		record.MergeRequests.Opened += tally.mergeRequests.Opened
		record.MergeRequests.Closed += tally.mergeRequests.Closed
		record.MergeRequests.Merged += tally.mergeRequests.Merged
		record.Issues.Total += tally.issues.Total
		record.Issues.Opened += tally.issues.Opened
		record.Issues.Closed += tally.issues.Closed
		record.MRComments += tally.mrComments
		record.IssueComments += tally.issueComments
		warnings = append(warnings, tally.warnings...)
	}
	if fatal != nil {
		return nil, fatal
	}

	sort.Strings(warnings)
	record.Warnings = warnings
	return record, nil
}

// collectProject counts one project's contributions for the user.
// A 404 from any listing means an empty or vanished resource and counts
// as zero; a 401/403 is terminal for the whole query.
func collectProject(ctx context.Context, cfg *contract.Config, client contract.ForgeClient, identity *schema.Identity, project schema.Project, window schema.Window) projectTally {
	var tally projectTally
	warn := func(kind string, err error) {
		tally.warnings = append(tally.warnings, fmt.Sprintf("%s: %s failed: %v", project.PathWithNamespace, kind, err))
	}
	classify := func(kind string, err error) bool {
		switch {
		case err == nil:
		case gitlab.IsAuthError(err):
			tally.err = fmt.Errorf("unauthorized while listing %s on %s: %w", kind, project.PathWithNamespace, err)
			return false
		case gitlab.IsNotFoundError(err):
			// Empty repository or deleted resource, nothing to count.
		default:
			warn(kind, err)
		}
		return true
	}

	commits, err := collectCommits(ctx, cfg, client, identity, project.ID, window)
	if !classify("commits", err) {
		return tally
	}
	tally.commits = commits

	// Parents are listed without a lower creation bound so that
	// in-window comments on older items are still reachable.
	listOpts := gitlab.ListOptions{
		AuthorID:      identity.ID,
		CreatedBefore: window.End,
	}

	mrs, err := client.ListMergeRequests(ctx, project.ID, listOpts)
	if !classify("merge requests", err) {
		return tally
	}
	tally.mergeRequests = countMergeRequests(mrs, identity.ID, window)

	issues, err := client.ListIssues(ctx, project.ID, listOpts)
	if !classify("issues", err) {
		return tally
	}
	tally.issues = countIssues(issues, identity.ID, window)

	mrComments, issueComments, err := collectComments(ctx, client, identity, project.ID, mrs, issues, window)
	if !classify("comments", err) {
		return tally
	}
	tally.mrComments = mrComments
	tally.issueComments = issueComments

	return tally
}

// collectCommits applies the three-tier author filter cascade:
// username first, then each known email, and finally an unfiltered
// listing matched client-side. A tier is only tried when every tier
// before it came back empty.
func collectCommits(ctx context.Context, cfg *contract.Config, client contract.ForgeClient, identity *schema.Identity, projectID int, window schema.Window) (int, error) {
	byUsername, err := client.ListCommits(ctx, projectID, gitlab.CommitOptions{
		Author: identity.Username,
		Since:  window.Start,
		Until:  window.End,
	})
	if err != nil {
		return 0, err
	}
	if n := countCommitsInWindow(byUsername, window); n > 0 {
		return n, nil
	}

	seen := make(map[string]struct{})
	for _, email := range identity.Emails {
		byEmail, err := client.ListCommits(ctx, projectID, gitlab.CommitOptions{
			AuthorEmail: email,
			Since:       window.Start,
			Until:       window.End,
		})
		if err != nil {
			return 0, err
		}
		for _, c := range byEmail {
			if !commitInWindow(c, window) {
				continue
			}
			seen[c.ID] = struct{}{}
		}
	}
	if len(seen) > 0 {
		return len(seen), nil
	}

	unfiltered, err := client.ListCommits(ctx, projectID, gitlab.CommitOptions{
		Since: window.Start,
		Until: window.End,
	})
	if err != nil {
		return 0, err
	}
	count := 0
	for _, c := range unfiltered {
		if !commitInWindow(c, window) {
			continue
		}
		if authorMatches(c, identity, cfg.StrictMatch) {
			count++
		}
	}
	return count, nil
}

// collectComments counts the user's non-system notes on the already
// listed merge requests and issues. Notes are windowed by their own
// creation time, not the parent's, so parents older than the window
// still contribute.
func collectComments(ctx context.Context, client contract.ForgeClient, identity *schema.Identity, projectID int, mrs []gitlab.MergeRequest, issues []gitlab.Issue, window schema.Window) (int, int, error) {
	mrComments := 0
	for _, mr := range mrs {
		notes, err := client.ListMergeRequestNotes(ctx, projectID, mr.IID)
		if err != nil {
			if gitlab.IsNotFoundError(err) {
				continue
			}
			return mrComments, 0, err
		}
		mrComments += countUserNotes(notes, identity.ID, window)
	}

	issueComments := 0
	for _, issue := range issues {
		notes, err := client.ListIssueNotes(ctx, projectID, issue.IID)
		if err != nil {
			if gitlab.IsNotFoundError(err) {
				continue
			}
			return mrComments, issueComments, err
		}
		issueComments += countUserNotes(notes, identity.ID, window)
	}

	return mrComments, issueComments, nil
}

// countUserNotes counts genuine discussion notes authored by the user.
// System notes, whitespace-only bodies, and notes whose timestamp is
// missing, unparseable, or outside the window are excluded.
func countUserNotes(notes []gitlab.Note, userID int, window schema.Window) int {
	count := 0
	for _, note := range notes {
		if note.System || note.Author.ID != userID {
			continue
		}
		if strings.TrimSpace(note.Body) == "" {
			continue
		}
		t, ok := gitlab.ParseTimestamp(note.CreatedAtRaw)
		if !ok || !window.Contains(t) {
			continue
		}
		count++
	}
	return count
}
