package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/docdiff/internal/contract"
	"github.com/huangsam/docdiff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleView() schema.ReportView {
	return schema.ReportView{
		FileID1:               "doc-a",
		FileID2:               "doc-b",
		Mode:                  schema.SectionMode,
		ComparisonTimeSeconds: 1.25,
		TotalComparisons:      2,
		Stats:                 schema.AggregateStats{Equal: 2, Delete: 1, Replace: 1, AvgSimilarity: 0.66},
		Results: []schema.ResultView{
			{
				Index: 0, ItemType: "section", ItemID: "Introduction", Overall: 0.92,
				Badge: schema.Classification{Tier: schema.ExcellentTier, ColorWeight: 0.9},
				Dimensions: []schema.DimensionView{
					{Name: "Structural", Score: 0.9, Bar: schema.BarClassification{Level: schema.HighBar}},
					{Name: "Content", Score: 0.8, Bar: schema.BarClassification{Level: schema.HighBar}},
					{Name: "Lexical", Score: 0.7, Bar: schema.BarClassification{Level: schema.MediumBar}},
					{Name: "Semantic", Score: 0.6, Bar: schema.BarClassification{Level: schema.MediumBar}},
					{Name: "Embedding", Score: 0.88, Bar: schema.BarClassification{Level: schema.HighBar}},
				},
				Groups: []schema.GroupView{
					{Operation: schema.EqualOp, Title: "Common - 10 chars", Text: schema.Truncation{Shown: "The quick ", TotalLength: 10}},
					{Operation: schema.ReplaceOp, Title: "Changed - 600 chars", Text: schema.Truncation{Shown: "red", Truncated: true, TotalLength: 600}},
				},
				Metadata: []schema.MetadataEntry{{Key: "page", Value: "1"}},
			},
			{
				Index: 1, ItemType: "section", ItemID: "Appendix", Overall: 0.4,
				Badge: schema.Classification{Tier: schema.PoorTier},
				Dimensions: []schema.DimensionView{
					{Name: "Structural", Score: 0.5}, {Name: "Content", Score: 0.3},
					{Name: "Lexical", Score: 0.2}, {Name: "Semantic", Score: 0.6},
				},
			},
		},
	}
}

func testConfig(t *testing.T, output schema.OutputMode, name string) *contract.Config {
	t.Helper()
	return &contract.Config{
		Output:       output,
		OutputFile:   filepath.Join(t.TempDir(), name),
		Precision:    1,
		Width:        160,
		CacheBackend: schema.NoneBackend,
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

type onlyFirst struct{}

func (onlyFirst) IsExpanded(index int) bool { return index == 0 }

func TestWriteReportText(t *testing.T) {
	cfg := testConfig(t, schema.TextOut, "report.txt")
	require.NoError(t, NewOutWriter().WriteReport(sampleView(), nil, cfg, time.Second))

	out := readFile(t, cfg.OutputFile)
	assert.Contains(t, out, "doc-a vs doc-b (mode: section, 2 comparisons, 1.25s)")
	assert.Contains(t, out, "Average similarity: 66.0%")
	assert.Contains(t, out, "Introduction")
	assert.Contains(t, out, "Excellent")
	assert.Contains(t, out, "88.0%")
	assert.Contains(t, out, "[1] section Introduction: Excellent 92.0%")
	assert.Contains(t, out, "Common - 10 chars")
	assert.Contains(t, out, "red...")
	assert.Contains(t, out, "... (600 chars total)")
	assert.Contains(t, out, "page: 1")
	assert.Contains(t, out, "[2] section Appendix: Poor 40.0%")
	assert.Contains(t, out, schema.NoDifferencesLabel)
	assert.Contains(t, out, "Cache backend: none")
}

func TestWriteReportTextExpansion(t *testing.T) {
	cfg := testConfig(t, schema.TextOut, "report.txt")
	require.NoError(t, NewOutWriter().WriteReport(sampleView(), onlyFirst{}, cfg, 0))
	out := readFile(t, cfg.OutputFile)
	assert.Contains(t, out, "[1] section Introduction")
	assert.NotContains(t, out, "[2] section Appendix")

	cfg.Collapse = true
	require.NoError(t, NewOutWriter().WriteReport(sampleView(), nil, cfg, 0))
	out = readFile(t, cfg.OutputFile)
	assert.NotContains(t, out, "[1] section Introduction")
	assert.NotContains(t, out, "Rendered in")
}

func TestWriteReportTextEmpty(t *testing.T) {
	cfg := testConfig(t, schema.TextOut, "empty.txt")
	view := schema.ReportView{FileID1: "a", FileID2: "b", Mode: schema.PageMode}
	require.NoError(t, NewOutWriter().WriteReport(view, nil, cfg, 0))
	assert.Contains(t, readFile(t, cfg.OutputFile), "No comparison results")
}

func TestWriteReportJSON(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut, "report.json")
	require.NoError(t, NewOutWriter().WriteReport(sampleView(), nil, cfg, 0))

	var decoded schema.ReportView
	require.NoError(t, json.Unmarshal([]byte(readFile(t, cfg.OutputFile)), &decoded))
	assert.Equal(t, sampleView(), decoded)
}

func TestWriteReportYAML(t *testing.T) {
	cfg := testConfig(t, schema.YAMLOut, "report.yaml")
	require.NoError(t, NewOutWriter().WriteReport(sampleView(), nil, cfg, 0))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(readFile(t, cfg.OutputFile)), &decoded))
	assert.Equal(t, "doc-a", decoded["file_id_1"])
	assert.Equal(t, "section", decoded["mode"])
	results, ok := decoded["results"].([]any)
	require.True(t, ok)
	assert.Len(t, results, 2)
}

func TestWriteReportCSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut, "report.csv")
	require.NoError(t, NewOutWriter().WriteReport(sampleView(), nil, cfg, 0))

	records, err := csv.NewReader(strings.NewReader(readFile(t, cfg.OutputFile))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "item_id", records[0][2])
	assert.Equal(t, []string{"0", "section", "Introduction", "0.92", "excellent", "0.90", "0.80", "0.70", "0.60", "0.88", "2"}, records[1])
	assert.Equal(t, "", records[2][9])
	assert.Equal(t, "0", records[2][10])
}

func TestWriteReportParquet(t *testing.T) {
	cfg := testConfig(t, schema.ParquetOut, "report.parquet")
	require.NoError(t, NewOutWriter().WriteReport(sampleView(), nil, cfg, 0))
	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	cfg.OutputFile = ""
	err = NewOutWriter().WriteReport(sampleView(), nil, cfg, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-file")
}

func TestWriteStats(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "stats.txt")
		require.NoError(t, NewOutWriter().WriteStats(sampleView(), cfg))
		out := readFile(t, cfg.OutputFile)
		assert.Contains(t, out, "Common")
		assert.Contains(t, out, "Removed")
		assert.Contains(t, out, "Average similarity: 66.0%")
	})

	t.Run("json", func(t *testing.T) {
		cfg := testConfig(t, schema.JSONOut, "stats.json")
		require.NoError(t, NewOutWriter().WriteStats(sampleView(), cfg))
		var decoded struct {
			TotalComparisons int                   `json:"total_comparisons"`
			Stats            schema.AggregateStats `json:"stats"`
		}
		require.NoError(t, json.Unmarshal([]byte(readFile(t, cfg.OutputFile)), &decoded))
		assert.Equal(t, 2, decoded.TotalComparisons)
		assert.Equal(t, 2, decoded.Stats.Equal)
		assert.InDelta(t, 0.66, decoded.Stats.AvgSimilarity, 1e-9)
	})

	t.Run("csv", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut, "stats.csv")
		require.NoError(t, NewOutWriter().WriteStats(sampleView(), cfg))
		records, err := csv.NewReader(strings.NewReader(readFile(t, cfg.OutputFile))).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"metric", "value"},
			{"equal", "2"}, {"delete", "1"}, {"insert", "0"}, {"replace", "1"},
			{"avg_similarity", "0.66"},
		}, records)
	})

	t.Run("parquet unsupported", func(t *testing.T) {
		cfg := testConfig(t, schema.ParquetOut, "stats.parquet")
		assert.Error(t, NewOutWriter().WriteStats(sampleView(), cfg))
	})
}

func TestWriteGroups(t *testing.T) {
	groups := sampleView().Results[0].Groups

	cfg := testConfig(t, schema.TextOut, "groups.txt")
	require.NoError(t, NewOutWriter().WriteGroups(groups, cfg))
	out := readFile(t, cfg.OutputFile)
	assert.Equal(t, "Common - 10 chars\n  The quick \nChanged - 600 chars\n  red...\n  ... (600 chars total)\n", out)

	require.NoError(t, NewOutWriter().WriteGroups(nil, cfg))
	assert.Equal(t, schema.NoDifferencesLabel+"\n", readFile(t, cfg.OutputFile))

	cfg = testConfig(t, schema.CSVOut, "groups.csv")
	require.NoError(t, NewOutWriter().WriteGroups(groups, cfg))
	records, err := csv.NewReader(strings.NewReader(readFile(t, cfg.OutputFile))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"replace", "Changed - 600 chars", "red", "true", "600"}, records[2])

	cfg = testConfig(t, schema.JSONOut, "groups.json")
	require.NoError(t, NewOutWriter().WriteGroups(groups, cfg))
	var decoded []schema.GroupView
	require.NoError(t, json.Unmarshal([]byte(readFile(t, cfg.OutputFile)), &decoded))
	assert.Equal(t, groups, decoded)
}

func TestWriteClassifications(t *testing.T) {
	rows := []schema.ScoreClassification{
		{Score: 0.95, Badge: schema.Classification{Tier: schema.ExcellentTier, ColorWeight: 0.9}, Bar: schema.BarClassification{Level: schema.HighBar, ColorWeight: 0.75}},
		{Score: 0.55, Badge: schema.Classification{Tier: schema.PoorTier}, Bar: schema.BarClassification{Level: schema.MediumBar, ColorWeight: 0.5}},
	}

	cfg := testConfig(t, schema.TextOut, "classify.txt")
	require.NoError(t, NewOutWriter().WriteClassifications(rows, cfg))
	out := readFile(t, cfg.OutputFile)
	assert.Contains(t, out, "95.0%")
	assert.Contains(t, out, "Excellent")
	assert.Contains(t, out, "medium")

	cfg = testConfig(t, schema.CSVOut, "classify.csv")
	require.NoError(t, NewOutWriter().WriteClassifications(rows, cfg))
	records, err := csv.NewReader(strings.NewReader(readFile(t, cfg.OutputFile))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"0.55", "poor", "0.00", "medium", "0.50"}, records[2])

	cfg = testConfig(t, schema.YAMLOut, "classify.yaml")
	require.NoError(t, NewOutWriter().WriteClassifications(rows, cfg))
	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(readFile(t, cfg.OutputFile)), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, 0.95, decoded[0]["score"])
}
