package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/docdiff/internal/contract"
	"github.com/huangsam/docdiff/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteGroupViews outputs grouped, truncated segments.
func WriteGroupViews(groups []schema.GroupView, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error { return writeJSON(w, groups) }, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error { return writeYAML(w, groups) }, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error { return writeGroupsCSV(w, groups) }, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for groups")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error { return writeGroupsText(w, groups, cfg) }, "Wrote groups")
	}
}

func writeGroupsCSV(w io.Writer, groups []schema.GroupView) error {
	header := []string{"operation", "title", "text", "truncated", "total_length"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, g := range groups {
			rec := []string{
				string(g.Operation),
				g.Title,
				g.Text.Shown,
				strconv.FormatBool(g.Text.Truncated),
				strconv.Itoa(g.Text.TotalLength),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

func writeGroupsText(w io.Writer, groups []schema.GroupView, cfg *contract.Config) error {
	if len(groups) == 0 {
		_, err := fmt.Fprintln(w, schema.NoDifferencesLabel)
		return err
	}
	_, opText := colorizers(cfg)

	var sb strings.Builder
	for _, g := range groups {
		fmt.Fprintf(&sb, "%s\n", g.Title)
		fmt.Fprintf(&sb, "  %s\n", opText(g.Operation, g.Text.Display()))
		if note := g.Text.Note(); note != "" {
			fmt.Fprintf(&sb, "  %s\n", note)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteScoreClassifications outputs scores classified on the badge and bar scales.
func WriteScoreClassifications(rows []schema.ScoreClassification, cfg *contract.Config) error {
	fmtFloat, fmtPercent := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error { return writeJSON(w, rows) }, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error { return writeYAML(w, rows) }, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"score", "tier", "tier_weight", "bar", "bar_weight"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, r := range rows {
					rec := []string{
						fmtFloat(r.Score),
						string(r.Badge.Tier),
						fmtFloat(r.Badge.ColorWeight),
						string(r.Bar.Level),
						fmtFloat(r.Bar.ColorWeight),
					}
					if err := cw.Write(rec); err != nil {
						return fmt.Errorf("failed to write CSV record: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for classify")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClassificationTable(w, rows, cfg, fmtPercent)
		}, "Wrote classifications")
	}
}

func writeClassificationTable(w io.Writer, rows []schema.ScoreClassification, cfg *contract.Config, fmtPercent func(float64) string) error {
	tierLabel, _ := colorizers(cfg)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Score", "Tier", "Bar", "Level"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range rows {
		data = append(data, []string{
			fmtPercent(r.Score),
			tierLabel(r.Badge.Tier),
			renderBar(r.Score),
			string(r.Bar.Level),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
