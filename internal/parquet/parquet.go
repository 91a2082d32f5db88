// Package parquet provides data structures and functions for exporting docdiff
// run history and rendered reports to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/docdiff/schema"
	"github.com/parquet-go/parquet-go"
)

// RunRow represents a single report run.
// This struct maps to the docdiff_runs database table.
type RunRow struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// RequestID correlates the run with the X-Request-ID sent to the compare API
	RequestID string `parquet:"request_id,snappy"`

	// StartedAt is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartedAt time.Time `parquet:"started_at,snappy"`

	// FinishedAt is when the run completed (nullable)
	FinishedAt *time.Time `parquet:"finished_at,optional,snappy"`

	// DurationMs is the run duration in milliseconds (nullable)
	DurationMs *int64 `parquet:"duration_ms,optional,snappy"`

	FileID1 string `parquet:"file_id_1,snappy"`
	FileID2 string `parquet:"file_id_2,snappy"`
	Mode    string `parquet:"mode,snappy"`

	// Source is where the report came from: api, cache or file
	Source string `parquet:"source,snappy"`

	// TotalComparisons is the number of results in the report (nullable until the run ends)
	TotalComparisons *int32 `parquet:"total_comparisons,optional,snappy"`

	// AvgSimilarity is the mean overall similarity (nullable until the run ends)
	AvgSimilarity *float64 `parquet:"avg_similarity,optional,snappy"`
}

// ResultRow represents a single comparison result within a run.
// This struct maps to the docdiff_results database table.
type ResultRow struct {
	// RunID references the parent run
	RunID int64 `parquet:"run_id,snappy"`

	// Position is the index of the result in the report
	Position int32 `parquet:"position,snappy"`

	ItemType string  `parquet:"item_type,snappy"`
	ItemID   string  `parquet:"item_id,snappy"`
	Overall  float64 `parquet:"overall,snappy"`
	Tier     string  `parquet:"tier,snappy"`

	// Segment counts per operation
	EqualCount   int32 `parquet:"equal_count,snappy"`
	DeleteCount  int32 `parquet:"delete_count,snappy"`
	InsertCount  int32 `parquet:"insert_count,snappy"`
	ReplaceCount int32 `parquet:"replace_count,snappy"`
}

// ReportRow is one rendered result of a report, used by --output parquet.
type ReportRow struct {
	FileID1  string `parquet:"file_id_1,snappy"`
	FileID2  string `parquet:"file_id_2,snappy"`
	Mode     string `parquet:"mode,snappy"`
	Index    int32  `parquet:"index,snappy"`
	ItemType string `parquet:"item_type,snappy"`
	ItemID   string `parquet:"item_id,snappy"`

	Overall float64 `parquet:"overall,snappy"`
	Tier    string  `parquet:"tier,snappy"`

	Structural float64 `parquet:"structural,snappy"`
	Content    float64 `parquet:"content,snappy"`
	Lexical    float64 `parquet:"lexical,snappy"`
	Semantic   float64 `parquet:"semantic,snappy"`

	// Embedding is absent for modes that do not compute it
	Embedding *float64 `parquet:"embedding,optional,snappy"`

	// Group counts per operation after merging adjacent segments
	EqualGroups   int32 `parquet:"equal_groups,snappy"`
	DeleteGroups  int32 `parquet:"delete_groups,snappy"`
	InsertGroups  int32 `parquet:"insert_groups,snappy"`
	ReplaceGroups int32 `parquet:"replace_groups,snappy"`
}

// ConvertRunRecords maps history rows to their parquet form.
func ConvertRunRecords(records []schema.RunRecord) []RunRow {
	rows := make([]RunRow, len(records))
	for i, r := range records {
		rows[i] = RunRow{
			RunID:            r.RunID,
			RequestID:        r.RequestID,
			StartedAt:        r.StartedAt,
			FinishedAt:       r.FinishedAt,
			DurationMs:       r.DurationMs,
			FileID1:          r.FileID1,
			FileID2:          r.FileID2,
			Mode:             r.Mode,
			Source:           r.Source,
			TotalComparisons: r.TotalComparisons,
			AvgSimilarity:    r.AvgSimilarity,
		}
	}
	return rows
}

// ConvertResultRecords maps history result rows to their parquet form.
func ConvertResultRecords(records []schema.ResultRecord) []ResultRow {
	rows := make([]ResultRow, len(records))
	for i, r := range records {
		rows[i] = ResultRow{
			RunID:        r.RunID,
			Position:     r.Position,
			ItemType:     r.ItemType,
			ItemID:       r.ItemID,
			Overall:      r.Overall,
			Tier:         r.Tier,
			EqualCount:   r.EqualCount,
			DeleteCount:  r.DeleteCount,
			InsertCount:  r.InsertCount,
			ReplaceCount: r.ReplaceCount,
		}
	}
	return rows
}

// ConvertReportView flattens a rendered report into one row per result.
func ConvertReportView(view schema.ReportView) []ReportRow {
	rows := make([]ReportRow, len(view.Results))
	for i, rv := range view.Results {
		row := ReportRow{
			FileID1:  view.FileID1,
			FileID2:  view.FileID2,
			Mode:     string(view.Mode),
			Index:    int32(rv.Index),
			ItemType: rv.ItemType,
			ItemID:   rv.ItemID,
			Overall:  rv.Overall,
			Tier:     string(rv.Badge.Tier),
		}
		for _, d := range rv.Dimensions {
			switch d.Name {
			case "Structural":
				row.Structural = d.Score
			case "Content":
				row.Content = d.Score
			case "Lexical":
				row.Lexical = d.Score
			case "Semantic":
				row.Semantic = d.Score
			case "Embedding":
				score := d.Score
				row.Embedding = &score
			}
		}
		for _, g := range rv.Groups {
			switch g.Operation {
			case schema.EqualOp:
				row.EqualGroups++
			case schema.DeleteOp:
				row.DeleteGroups++
			case schema.InsertOp:
				row.InsertGroups++
			case schema.ReplaceOp:
				row.ReplaceGroups++
			}
		}
		rows[i] = row
	}
	return rows
}

// WriteRunsParquet writes run rows to a Parquet file.
func WriteRunsParquet(data []RunRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteResultsParquet writes result rows to a Parquet file.
func WriteResultsParquet(data []ResultRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteReportParquet writes rendered report rows to a Parquet file.
func WriteReportParquet(data []ReportRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// writeRows writes rows with a schema derived from the struct tags of T.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	// Close flushes the footer, so its error matters
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
