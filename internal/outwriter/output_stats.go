package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/docdiff/internal/contract"
	"github.com/huangsam/docdiff/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// statsOutput is the structured form of the stats command.
type statsOutput struct {
	FileID1          string                `json:"file_id_1" yaml:"file_id_1"`
	FileID2          string                `json:"file_id_2" yaml:"file_id_2"`
	Mode             schema.CompareMode    `json:"mode" yaml:"mode"`
	TotalComparisons int                   `json:"total_comparisons" yaml:"total_comparisons"`
	Stats            schema.AggregateStats `json:"stats" yaml:"stats"`
}

// WriteStatsView outputs the aggregate statistics of a report.
func WriteStatsView(view schema.ReportView, cfg *contract.Config) error {
	fmtFloat, fmtPercent := createFormatters(cfg.Precision)
	out := statsOutput{
		FileID1:          view.FileID1,
		FileID2:          view.FileID2,
		Mode:             view.Mode,
		TotalComparisons: view.TotalComparisons,
		Stats:            view.Stats,
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error { return writeJSON(w, out) }, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error { return writeYAML(w, out) }, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsCSV(w, view.Stats, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for stats")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsTable(w, view.Stats, fmtPercent)
		}, "Wrote stats")
	}
}

// writeStatsCSV writes one row per operation and a final average row.
func writeStatsCSV(w io.Writer, stats schema.AggregateStats, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, []string{"metric", "value"}, func(cw *csv.Writer) error {
		for _, op := range schema.AllOperations {
			if err := cw.Write([]string{string(op), strconv.Itoa(stats.Count(op))}); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return cw.Write([]string{"avg_similarity", fmtFloat(stats.AvgSimilarity)})
	})
}

// writeStatsTable renders segment counts per operation and the mean similarity.
func writeStatsTable(w io.Writer, stats schema.AggregateStats, fmtPercent func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Operation", "Segments"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, op := range schema.AllOperations {
		data = append(data, []string{schema.OperationLabel(op), strconv.Itoa(stats.Count(op))})
	}
	data = append(data, []string{"Total", strconv.Itoa(stats.Total())})
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Average similarity: %s\n", fmtPercent(stats.AvgSimilarity))
	return err
}
