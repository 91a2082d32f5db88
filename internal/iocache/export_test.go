package iocache

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/docdiff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteHistoryExport(t *testing.T) {
	store := newTestHistoryStore(t)
	started := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun(schema.RunInfo{RequestID: "r1", StartedAt: started, FileID1: "a", FileID2: "b", Mode: schema.TableMode, Source: schema.CacheSource})
	require.NoError(t, err)
	require.NoError(t, store.RecordResult(runID, schema.ResultRecord{Position: 0, ItemType: "table", ItemID: "T1", Overall: 0.8, Tier: "good"}))
	require.NoError(t, store.EndRun(runID, started.Add(time.Second), 1, 0.8))

	out := filepath.Join(t.TempDir(), "export")
	var buf bytes.Buffer
	require.NoError(t, ExecuteHistoryExport(&buf, store, out))

	for _, suffix := range []string{".runs.parquet", ".results.parquet"} {
		info, err := os.Stat(out + suffix)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Contains(t, buf.String(), "Exported 1 runs")
	assert.Contains(t, buf.String(), "Exported 1 results")
}

func TestExecuteHistoryExportErrors(t *testing.T) {
	var buf bytes.Buffer

	err := ExecuteHistoryExport(&buf, &MockHistoryStore{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-file is required")

	err = ExecuteHistoryExport(&buf, nil, "out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")

	empty := &MockHistoryStore{}
	empty.On("GetStatus").Return(schema.HistoryStatus{Backend: "sqlite", Connected: true}, nil)
	err = ExecuteHistoryExport(&buf, empty, "out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no history data")

	failing := &MockHistoryStore{}
	failing.On("GetStatus").Return(schema.HistoryStatus{}, errors.New("boom"))
	err = ExecuteHistoryExport(&buf, failing, "out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	broken := &MockHistoryStore{}
	broken.On("GetStatus").Return(schema.HistoryStatus{TotalRuns: 1}, nil)
	broken.On("GetAllRuns").Return(nil, errors.New("query failed"))
	err = ExecuteHistoryExport(&buf, broken, filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to retrieve runs")
	broken.AssertExpectations(t)
}
