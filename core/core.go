// Package core has core logic for resolving users, collecting
// contributions, and grading them against a cohort.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rohit-Singh-01/git-tracker/internal/contract"
	"github.com/Rohit-Singh-01/git-tracker/internal/gitlab"
	"github.com/Rohit-Singh-01/git-tracker/internal/outwriter"
	"github.com/Rohit-Singh-01/git-tracker/schema"
)

// newForgeClient builds the GitLab client from validated config.
func newForgeClient(cfg *contract.Config) (contract.ForgeClient, error) {
	return gitlab.NewClient(gitlab.Config{
		BaseURL: cfg.BaseURL,
		Token:   cfg.Token,
		PerPage: cfg.PerPage,
		PageCap: cfg.PageCap,
	})
}

// GetQueryResult collects contributions for a single user without printing.
// This is exposed for the MCP server.
func GetQueryResult(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, username string) (*schema.AggregateRecord, error) {
	client, err := newForgeClient(cfg)
	if err != nil {
		return nil, err
	}
	return cachedCollect(ctx, cfg, client, mgr, username)
}

// GetBatchResults collects and grades a whole roster without printing.
// This is exposed for the MCP server.
func GetBatchResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.BatchResult, schema.CohortStats, error) {
	if len(cfg.Usernames) == 0 {
		return nil, schema.CohortStats{}, errors.New("no usernames given")
	}

	client, err := newForgeClient(cfg)
	if err != nil {
		return nil, schema.CohortStats{}, err
	}

	results := make([]schema.BatchResult, len(cfg.Usernames))
	records := make([]*schema.AggregateRecord, len(cfg.Usernames))
	var cohort []*schema.AggregateRecord
	for i, username := range cfg.Usernames {
		results[i].Username = username
		record, err := cachedCollect(ctx, cfg, client, mgr, username)
		if err != nil {
			results[i].Err = err
			continue
		}
		records[i] = record
		cohort = append(cohort, record)
	}

	stats := computeCohortStats(cohort)
	for i := range results {
		if records[i] != nil {
			results[i].Record = gradeRecord(records[i], stats)
		}
	}

	return results, stats, nil
}

// ExecuteQuery runs the single-user flow and prints the record.
func ExecuteQuery(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	if len(cfg.Usernames) != 1 {
		return fmt.Errorf("query takes exactly one username, got %d", len(cfg.Usernames))
	}
	username := cfg.Usernames[0]

	if !shouldSuppressHeader(ctx) {
		fmt.Printf("🔎 Collecting contributions for %s (%s → %s)\n",
			username, cfg.StartTime.Format(time.DateOnly), cfg.EndTime.Format(time.DateOnly))
	}

	start := time.Now()
	record, err := GetQueryResult(ctx, cfg, mgr, username)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	return outwriter.WriteQueryResult(record, cfg, duration)
}

// ExecuteBatch runs the roster flow, persists the run to the archive
// store when one is configured, and prints the graded table.
func ExecuteBatch(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	if !shouldSuppressHeader(ctx) {
		fmt.Printf("🔎 Collecting contributions for %d users (%s → %s)\n",
			len(cfg.Usernames), cfg.StartTime.Format(time.DateOnly), cfg.EndTime.Format(time.DateOnly))
	}

	start := time.Now()
	results, stats, err := GetBatchResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	archiveBatchRun(mgr, cfg, results, start)

	return outwriter.WriteBatchResults(results, stats, cfg, duration)
}

// archiveBatchRun records the batch into the archive store. Archive
// failures are warnings; the run output already exists at this point.
func archiveBatchRun(mgr contract.CacheManager, cfg *contract.Config, results []schema.BatchResult, start time.Time) {
	if mgr == nil {
		return
	}
	store := mgr.GetArchiveStore()
	if store == nil {
		return
	}

	runID, err := store.BeginRun(start, map[string]any{
		"base_url":    cfg.BaseURL,
		"start":       cfg.StartTime.Format(time.RFC3339),
		"end":         cfg.EndTime.Format(time.RFC3339),
		"project_cap": cfg.ProjectCap,
		"users":       len(cfg.Usernames),
	})
	if err != nil {
		contract.LogWarn("Failed to begin archive run", err)
		return
	}

	recorded := 0
	for _, result := range results {
		if result.Record == nil {
			continue
		}
		if err := store.RecordContribution(runID, result.Record); err != nil {
			contract.LogWarn(fmt.Sprintf("Failed to archive record for %s", result.Username), err)
			continue
		}
		recorded++
	}

	if err := store.EndRun(runID, time.Now(), recorded); err != nil {
		contract.LogWarn("Failed to end archive run", err)
	}
}
