package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/docdiff/internal/contract"
	"github.com/huangsam/docdiff/internal/parquet"
	"github.com/huangsam/docdiff/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// barCells is the number of cells in a dimension bar.
const barCells = 10

// WriteReportView outputs a rendered report, dispatching based on the output format configured.
func WriteReportView(view schema.ReportView, expansion Expander, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtPercent := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, view)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.YAMLOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, view)
		}, "Wrote YAML"); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, view, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("parquet output requires --output-file")
		}
		if err := parquet.WriteReportParquet(parquet.ConvertReportView(view), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		contract.Logger().Info().Str("file", cfg.OutputFile).Msg("Wrote Parquet")
	default:
		// Default to human-readable tables
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(w, view, expansion, cfg, fmtPercent, duration)
		}, "Wrote report")
	}
	return nil
}

// writeReportCSV writes one row per result.
func writeReportCSV(w io.Writer, view schema.ReportView, fmtFloat func(float64) string) error {
	header := []string{
		"index", "item_type", "item_id", "overall", "tier",
		"structural", "content", "lexical", "semantic", "embedding", "groups",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range view.Results {
			scores := dimensionScores(r.Dimensions)
			embedding := ""
			if score, ok := scores["Embedding"]; ok {
				embedding = fmtFloat(score)
			}
			rec := []string{
				strconv.Itoa(r.Index),
				r.ItemType,
				r.ItemID,
				fmtFloat(r.Overall),
				string(r.Badge.Tier),
				fmtFloat(scores["Structural"]),
				fmtFloat(scores["Content"]),
				fmtFloat(scores["Lexical"]),
				fmtFloat(scores["Semantic"]),
				embedding,
				strconv.Itoa(len(r.Groups)),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// dimensionScores indexes dimension scores by name.
func dimensionScores(dims []schema.DimensionView) map[string]float64 {
	scores := make(map[string]float64, len(dims))
	for _, d := range dims {
		scores[d.Name] = d.Score
	}
	return scores
}

// writeReportText generates the header, the stats table, the results table
// and the body of every expanded result.
func writeReportText(w io.Writer, view schema.ReportView, expansion Expander, cfg *contract.Config, fmtPercent func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "%s vs %s (mode: %s, %d comparisons, %.2fs)\n",
		view.FileID1, view.FileID2, view.Mode, view.TotalComparisons, view.ComparisonTimeSeconds); err != nil {
		return err
	}
	if err := writeStatsTable(w, view.Stats, fmtPercent); err != nil {
		return err
	}
	if len(view.Results) == 0 {
		_, err := fmt.Fprintln(w, "No comparison results")
		return err
	}
	if err := writeResultsTable(w, view.Results, cfg, fmtPercent); err != nil {
		return err
	}

	if !cfg.Collapse {
		for _, r := range view.Results {
			if !expansion.IsExpanded(r.Index) {
				continue
			}
			if err := writeResultBody(w, r, cfg, fmtPercent); err != nil {
				return err
			}
		}
	}

	if duration > 0 {
		if _, err := fmt.Fprintf(w, "Rendered in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
			return err
		}
	}
	return nil
}

// writeResultsTable renders one row per result with its badge and dimension scores.
func writeResultsTable(w io.Writer, results []schema.ResultView, cfg *contract.Config, fmtPercent func(float64) string) error {
	tierLabel, _ := colorizers(cfg)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Item", "Type", "Overall", "Tier", "Struct", "Content", "Lexical", "Semantic", "Embed"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	itemWidth := getMaxItemWidth(cfg)
	var data [][]string
	for _, r := range results {
		scores := dimensionScores(r.Dimensions)
		embedding := "-"
		if score, ok := scores["Embedding"]; ok {
			embedding = fmtPercent(score)
		}
		data = append(data, []string{
			strconv.Itoa(r.Index + 1),
			contract.TruncateLabel(r.ItemID, itemWidth),
			r.ItemType,
			fmtPercent(r.Overall),
			tierLabel(r.Badge.Tier),
			fmtPercent(scores["Structural"]),
			fmtPercent(scores["Content"]),
			fmtPercent(scores["Lexical"]),
			fmtPercent(scores["Semantic"]),
			embedding,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeResultBody renders dimension bars, diff groups and metadata for one result.
func writeResultBody(w io.Writer, r schema.ResultView, cfg *contract.Config, fmtPercent func(float64) string) error {
	tierLabel, opText := colorizers(cfg)

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n[%d] %s %s: %s %s\n", r.Index+1, r.ItemType, r.ItemID, tierLabel(r.Badge.Tier), fmtPercent(r.Overall))
	for _, d := range r.Dimensions {
		fmt.Fprintf(&sb, "  %-10s %s %s\n", d.Name, renderBar(d.Score), fmtPercent(d.Score))
	}

	if len(r.Groups) == 0 {
		fmt.Fprintf(&sb, "  %s\n", schema.NoDifferencesLabel)
	}
	for _, g := range r.Groups {
		fmt.Fprintf(&sb, "  %s\n", g.Title)
		fmt.Fprintf(&sb, "    %s\n", opText(g.Operation, g.Text.Display()))
		if note := g.Text.Note(); note != "" {
			fmt.Fprintf(&sb, "    %s\n", note)
		}
	}

	for _, m := range r.Metadata {
		fmt.Fprintf(&sb, "  %s: %s\n", m.Key, m.Value)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// renderBar draws a fixed-width bar for a score in [0,1].
func renderBar(score float64) string {
	filled := min(max(int(score*barCells+0.5), 0), barCells)
	return strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled)
}
