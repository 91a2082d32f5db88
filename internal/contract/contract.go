// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/docdiff/schema"
)

// ReportClient fetches comparison reports from the compare API.
// This allows the executors to be tested without a live server.
type ReportClient interface {
	// Compare requests a report for two documents at the given granularity.
	Compare(ctx context.Context, req schema.CompareRequest) (*schema.ComparisonReport, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetReportStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking report runs and their results.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(info schema.RunInfo) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, finishedAt time.Time, totalComparisons int, avgSimilarity float64) error

	// RecordResult stores the summary of one comparison result
	RecordResult(runID int64, record schema.ResultRecord) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run ordered by ID
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllResults returns every recorded result ordered by run and position
	GetAllResults() ([]schema.ResultRecord, error)

	// Close closes the underlying connection
	Close() error
}
