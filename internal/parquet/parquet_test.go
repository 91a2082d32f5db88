package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/docdiff/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{"runs", new(RunRow), []string{
			"run_id", "request_id", "started_at", "finished_at", "duration_ms",
			"file_id_1", "file_id_2", "mode", "source", "total_comparisons", "avg_similarity",
		}},
		{"results", new(ResultRow), []string{
			"run_id", "position", "item_type", "item_id", "overall", "tier",
			"equal_count", "delete_count", "insert_count", "replace_count",
		}},
		{"report", new(ReportRow), []string{
			"file_id_1", "file_id_2", "mode", "index", "item_type", "item_id", "overall", "tier",
			"structural", "content", "lexical", "semantic", "embedding",
			"equal_groups", "delete_groups", "insert_groups", "replace_groups",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			require.NotNil(t, s)
			for _, col := range tt.columns {
				_, ok := s.Lookup(col)
				assert.True(t, ok, "column %s should exist", col)
			}
		})
	}
}

func TestWriteRunsParquet(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	finished := started.Add(1500 * time.Millisecond)
	duration := int64(1500)
	total := int32(2)
	avg := 0.7

	records := []schema.RunRecord{
		{
			RunID: 1, RequestID: "req-1", StartedAt: started, FinishedAt: &finished, DurationMs: &duration,
			FileID1: "a", FileID2: "b", Mode: "section", Source: "api", TotalComparisons: &total, AvgSimilarity: &avg,
		},
		{RunID: 2, RequestID: "req-2", StartedAt: started, FileID1: "a", FileID2: "c", Mode: "page", Source: "file"},
	}

	path := filepath.Join(t.TempDir(), "runs.parquet")
	require.NoError(t, WriteRunsParquet(ConvertRunRecords(records), path))

	rows := readAll[RunRow](t, path)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(1), rows[0].RunID)
	assert.Equal(t, "req-1", rows[0].RequestID)
	assert.True(t, started.Equal(rows[0].StartedAt))
	require.NotNil(t, rows[0].FinishedAt)
	assert.True(t, finished.Equal(*rows[0].FinishedAt))
	require.NotNil(t, rows[0].DurationMs)
	assert.Equal(t, duration, *rows[0].DurationMs)
	require.NotNil(t, rows[0].AvgSimilarity)
	assert.InDelta(t, avg, *rows[0].AvgSimilarity, 1e-9)

	assert.Equal(t, "file", rows[1].Source)
	assert.Nil(t, rows[1].FinishedAt)
	assert.Nil(t, rows[1].DurationMs)
	assert.Nil(t, rows[1].TotalComparisons)
	assert.Nil(t, rows[1].AvgSimilarity)
}

func TestWriteResultsParquet(t *testing.T) {
	records := []schema.ResultRecord{
		{RunID: 1, Position: 0, ItemType: "section", ItemID: "Intro", Overall: 0.92, Tier: "excellent", EqualCount: 2, ReplaceCount: 1},
		{RunID: 1, Position: 1, ItemType: "section", ItemID: "Appendix", Overall: 0.4, Tier: "poor", DeleteCount: 1},
	}

	path := filepath.Join(t.TempDir(), "results.parquet")
	require.NoError(t, WriteResultsParquet(ConvertResultRecords(records), path))

	rows := readAll[ResultRow](t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "Intro", rows[0].ItemID)
	assert.Equal(t, int32(2), rows[0].EqualCount)
	assert.Equal(t, int32(1), rows[0].ReplaceCount)
	assert.Equal(t, "poor", rows[1].Tier)
	assert.Equal(t, int32(1), rows[1].Position)
}

func TestConvertReportView(t *testing.T) {
	view := schema.ReportView{
		FileID1: "a", FileID2: "b", Mode: schema.SectionMode,
		Results: []schema.ResultView{
			{
				Index: 0, ItemType: "section", ItemID: "Intro", Overall: 0.92,
				Badge: schema.Classification{Tier: schema.ExcellentTier},
				Dimensions: []schema.DimensionView{
					{Name: "Structural", Score: 0.9},
					{Name: "Content", Score: 0.8},
					{Name: "Lexical", Score: 0.7},
					{Name: "Semantic", Score: 0.6},
					{Name: "Embedding", Score: 0.5},
				},
				Groups: []schema.GroupView{
					{Operation: schema.EqualOp},
					{Operation: schema.ReplaceOp},
					{Operation: schema.EqualOp},
				},
			},
			{Index: 1, ItemID: "Table 1", Overall: 0.3, Badge: schema.Classification{Tier: schema.PoorTier}},
		},
	}

	rows := ConvertReportView(view)
	require.Len(t, rows, 2)

	assert.Equal(t, "section", rows[0].Mode)
	assert.Equal(t, "excellent", rows[0].Tier)
	assert.InDelta(t, 0.9, rows[0].Structural, 1e-9)
	assert.InDelta(t, 0.6, rows[0].Semantic, 1e-9)
	require.NotNil(t, rows[0].Embedding)
	assert.InDelta(t, 0.5, *rows[0].Embedding, 1e-9)
	assert.Equal(t, int32(2), rows[0].EqualGroups)
	assert.Equal(t, int32(1), rows[0].ReplaceGroups)
	assert.Equal(t, int32(0), rows[0].InsertGroups)

	assert.Nil(t, rows[1].Embedding)
	assert.Equal(t, int32(1), rows[1].Index)

	path := filepath.Join(t.TempDir(), "report.parquet")
	require.NoError(t, WriteReportParquet(rows, path))
	read := readAll[ReportRow](t, path)
	require.Len(t, read, 2)
	assert.Equal(t, "Table 1", read[1].ItemID)
}

func TestWriteEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteRunsParquet(nil, path))
	assert.Empty(t, readAll[RunRow](t, path))
}

func TestWriteInvalidPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.parquet")
	err := WriteResultsParquet([]ResultRow{{RunID: 1}}, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}
