package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Rohit-Singh-01/git-tracker/internal/contract"
	"github.com/Rohit-Singh-01/git-tracker/schema"
)

// currentCacheVersion defines the version of the cache schema.
// Bumped when the serialized record shape changes so stale entries
// fall out instead of deserializing with zeroed fields.
const currentCacheVersion = 2

// cacheTTL bounds how long a cached record stays valid. Contribution data
// moves daily, so this is much shorter than a typical analysis cache.
const cacheTTL = 24 * time.Hour

// cachedCollect wraps the resolve-and-collect pipeline with the record cache.
func cachedCollect(ctx context.Context, cfg *contract.Config, client contract.ForgeClient, mgr contract.CacheManager, username string) (*schema.AggregateRecord, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetRecordStore()
	}
	if store == nil {
		// Fallback to direct computation
		return resolveAndCollect(ctx, cfg, client, username)
	}

	key := generateCacheKey(cfg, username)

	if record := checkCacheHit(store, key); record != nil {
		return record, nil
	}

	return computeAndStore(ctx, cfg, client, store, key, username)
}

// resolveAndCollect is the uncached pipeline for one user.
func resolveAndCollect(ctx context.Context, cfg *contract.Config, client contract.ForgeClient, username string) (*schema.AggregateRecord, error) {
	identity, err := resolveIdentity(ctx, cfg, client, username)
	if err != nil {
		return nil, err
	}
	return collectContributions(ctx, cfg, client, identity)
}

// checkCacheHit attempts to retrieve and validate a cached record
func checkCacheHit(store contract.CacheStore, key string) *schema.AggregateRecord {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= cacheTTL {
			var record schema.AggregateRecord
			if err := json.Unmarshal(data, &record); err == nil {
				return &record // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// computeAndStore computes the record and stores it in cache
func computeAndStore(ctx context.Context, cfg *contract.Config, client contract.ForgeClient, store contract.CacheStore, key, username string) (*schema.AggregateRecord, error) {
	record, err := resolveAndCollect(ctx, cfg, client, username)
	if err != nil {
		return nil, err
	}

	// Store in cache
	if data, err := json.Marshal(record); err == nil {
		_ = store.Set(key, data, currentCacheVersion, time.Now().Unix())
	}

	return record, nil
}

// generateCacheKey creates a unique key from everything that changes
// what a collection would return.
func generateCacheKey(cfg *contract.Config, username string) string {
	key := fmt.Sprintf("%s:%s:%d:%d:%t:%t:%d",
		cfg.BaseURL,
		username,
		cfg.StartTime.Unix(),
		cfg.EndTime.Unix(),
		cfg.StrictMatch,
		cfg.IncludeAccessible,
		cfg.ProjectCap,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
