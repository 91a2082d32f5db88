package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/docdiff/internal/contract"
	"github.com/huangsam/docdiff/schema"
)

// currentCacheVersion defines the version of the cached report schema
const currentCacheVersion = 1

// cacheTTL bounds how long a cached report is served.
const cacheTTL = 7 * 24 * time.Hour

// cachedCompare serves a report from the cache when allowed, otherwise fetches
// it and stores the raw JSON for later runs.
func cachedCompare(ctx context.Context, cfg *contract.Config, req schema.CompareRequest, store contract.CacheStore, client contract.ReportClient) (*schema.ComparisonReport, schema.RunSource, error) {
	if store == nil {
		report, err := fetchReport(ctx, req, client)
		return report, schema.APISource, err
	}

	key := generateCacheKey(req)
	if cfg.UseCache {
		if report := checkCacheHit(store, key); report != nil {
			contract.Logger().Debug().Str("key", key).Msg("serving report from cache")
			return report, schema.CacheSource, nil
		}
	}

	report, err := fetchReport(ctx, req, client)
	if err != nil {
		return nil, schema.APISource, err
	}
	// Reports that break the contract are never cached
	if err := ValidateReport(report); err != nil {
		return nil, schema.APISource, fmt.Errorf("invalid comparison report: %w", err)
	}
	storeReport(store, key, report)
	return report, schema.APISource, nil
}

// fetchReport calls the compare API.
func fetchReport(ctx context.Context, req schema.CompareRequest, client contract.ReportClient) (*schema.ComparisonReport, error) {
	if client == nil {
		return nil, fmt.Errorf("no compare client configured")
	}
	report, err := client.Compare(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comparison: %w", err)
	}
	return report, nil
}

// checkCacheHit attempts to retrieve and validate a cached report
func checkCacheHit(store contract.CacheStore, key string) *schema.ComparisonReport {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheTTL {
		return nil
	}
	var report schema.ComparisonReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil
	}
	if ValidateReport(&report) != nil {
		return nil
	}
	return &report
}

// storeReport writes the report to the cache. Failures only cost a future miss.
func storeReport(store contract.CacheStore, key string, report *schema.ComparisonReport) {
	data, err := json.Marshal(report)
	if err != nil {
		contract.LogWarn("failed to encode report for cache", err)
		return
	}
	if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("failed to cache report", err)
	}
}

// generateCacheKey creates a unique key from the request parameters
func generateCacheKey(req schema.CompareRequest) string {
	query := ""
	if req.Query != nil {
		query = *req.Query
	}
	key := fmt.Sprintf("%s|%s|%s|%s", req.FileID1, req.FileID2, req.Mode, query)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
