package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/docdiff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistoryStore(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	store, err := NewHistoryStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*HistoryStoreImpl)
}

func TestHistoryStoreRoundTrip(t *testing.T) {
	store := newTestHistoryStore(t)
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	runID, err := store.BeginRun(schema.RunInfo{
		RequestID: "req-1",
		StartedAt: started,
		FileID1:   "doc-a",
		FileID2:   "doc-b",
		Mode:      schema.SectionMode,
		Source:    schema.APISource,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), runID)

	require.NoError(t, store.RecordResult(runID, schema.ResultRecord{
		Position: 0, ItemType: "section", ItemID: "Intro", Overall: 0.92, Tier: "excellent", EqualCount: 2, ReplaceCount: 1,
	}))
	require.NoError(t, store.RecordResult(runID, schema.ResultRecord{
		Position: 1, ItemType: "section", ItemID: "Appendix", Overall: 0.4, Tier: "poor", DeleteCount: 1,
	}))
	require.NoError(t, store.EndRun(runID, started.Add(1250*time.Millisecond), 2, 0.66))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, "req-1", run.RequestID)
	assert.True(t, started.Equal(run.StartedAt))
	require.NotNil(t, run.FinishedAt)
	require.NotNil(t, run.DurationMs)
	assert.Equal(t, int64(1250), *run.DurationMs)
	require.NotNil(t, run.TotalComparisons)
	assert.Equal(t, int32(2), *run.TotalComparisons)
	require.NotNil(t, run.AvgSimilarity)
	assert.InDelta(t, 0.66, *run.AvgSimilarity, 1e-9)
	assert.Equal(t, "section", run.Mode)
	assert.Equal(t, "api", run.Source)

	results, err := store.GetAllResults()
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Intro", results[0].ItemID)
	assert.Equal(t, int32(2), results[0].EqualCount)
	assert.Equal(t, "poor", results[1].Tier)
	assert.Equal(t, int32(1), results[1].DeleteCount)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.True(t, started.Equal(status.LastRunTime))
	assert.Equal(t, 2, status.TotalResults)
	assert.Equal(t, int64(1), status.TableSizes[runsTable])
	assert.Equal(t, int64(2), status.TableSizes[resultsTable])
}

func TestHistoryStoreUnfinishedRun(t *testing.T) {
	store := newTestHistoryStore(t)
	_, err := store.BeginRun(schema.RunInfo{RequestID: "r", StartedAt: time.Now(), FileID1: "a", FileID2: "b", Mode: schema.PageMode, Source: schema.FileSource})
	require.NoError(t, err)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].FinishedAt)
	assert.Nil(t, runs[0].DurationMs)
	assert.Nil(t, runs[0].TotalComparisons)
	assert.Nil(t, runs[0].AvgSimilarity)
}

func TestHistoryStoreEndUnknownRun(t *testing.T) {
	store := newTestHistoryStore(t)
	err := store.EndRun(42, time.Now(), 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run 42")
}

func TestHistoryStoreDuplicatePosition(t *testing.T) {
	store := newTestHistoryStore(t)
	record := schema.ResultRecord{Position: 0, ItemType: "page", ItemID: "1", Tier: "poor"}
	require.NoError(t, store.RecordResult(1, record))
	assert.Error(t, store.RecordResult(1, record))
}

func TestHistoryStoreNoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(schema.RunInfo{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), runID)
	assert.NoError(t, store.RecordResult(runID, schema.ResultRecord{}))
	assert.NoError(t, store.EndRun(runID, time.Now(), 0, 0))

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, "none", status.Backend)
	assert.NoError(t, store.Close())
}

func TestCreateQueriesPerBackend(t *testing.T) {
	assert.Contains(t, getCreateRunsQuery(schema.MySQLBackend), "AUTO_INCREMENT")
	assert.Contains(t, getCreateRunsQuery(schema.PostgreSQLBackend), "BIGSERIAL")
	assert.Contains(t, getCreateRunsQuery(schema.SQLiteBackend), "AUTOINCREMENT")
	for _, backend := range []schema.DatabaseBackend{schema.MySQLBackend, schema.PostgreSQLBackend, schema.SQLiteBackend} {
		assert.Contains(t, getCreateResultsQuery(backend), "PRIMARY KEY (run_id, position)")
	}
}
