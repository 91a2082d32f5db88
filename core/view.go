package core

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/huangsam/docdiff/schema"
)

// BuildReportView derives the render model for a report: the aggregate stats,
// a classified badge and bars per result, and grouped, truncated diff text.
// Nothing is cached; call it again whenever the report changes.
func BuildReportView(report *schema.ComparisonReport, maxLength int) (schema.ReportView, error) {
	if report == nil {
		return schema.ReportView{}, schema.ErrNoReport
	}

	stats, err := Aggregate(report.Results)
	if err != nil {
		return schema.ReportView{}, err
	}

	view := schema.ReportView{
		FileID1:               report.FileID1,
		FileID2:               report.FileID2,
		Mode:                  report.Mode,
		ComparisonTimeSeconds: report.ComparisonTimeSeconds,
		TotalComparisons:      report.TotalComparisons,
		Stats:                 stats,
		Results:               make([]schema.ResultView, 0, len(report.Results)),
	}
	for i, r := range report.Results {
		rv, err := BuildResultView(i, r, maxLength)
		if err != nil {
			return schema.ReportView{}, err
		}
		view.Results = append(view.Results, rv)
	}
	return view, nil
}

// BuildResultView derives the render model for a single result.
func BuildResultView(index int, r schema.ComparisonResult, maxLength int) (schema.ResultView, error) {
	prefix := fmt.Sprintf("results[%d].similarity", index)
	if err := checkScore(prefix+".overall", r.Similarity.Overall); err != nil {
		return schema.ResultView{}, err
	}
	badge, _ := Classify(r.Similarity.Overall)

	dimensions, err := buildDimensions(prefix, r.Similarity)
	if err != nil {
		return schema.ResultView{}, err
	}

	for j, seg := range r.Segments {
		if _, ok := schema.ValidOperations[seg.Operation]; !ok {
			field := fmt.Sprintf("results[%d].segments[%d].operation", index, j)
			return schema.ResultView{}, schema.NewContractViolation(field, seg.Operation, "is not a known operation")
		}
	}

	return schema.ResultView{
		Index:      index,
		ItemType:   r.ItemType,
		ItemID:     r.ItemID,
		Overall:    r.Similarity.Overall,
		Badge:      badge,
		Dimensions: dimensions,
		Groups:     BuildGroupViews(r.Segments, maxLength),
		Metadata:   RenderMetadata(r.Metadata),
	}, nil
}

// buildDimensions classifies each similarity dimension on the bar scale.
// Embedding is included only when present.
func buildDimensions(prefix string, sim schema.SimilarityRecord) ([]schema.DimensionView, error) {
	type dim struct {
		name  string
		field string
		score float64
	}
	dims := []dim{
		{"Structural", "structural", sim.Structural},
		{"Content", "content", sim.Content},
		{"Lexical", "lexical", sim.Lexical},
		{"Semantic", "semantic", sim.Semantic},
	}
	if sim.Embedding != nil {
		dims = append(dims, dim{"Embedding", "embedding", *sim.Embedding})
	}

	views := make([]schema.DimensionView, 0, len(dims))
	for _, d := range dims {
		if err := checkScore(prefix+"."+d.field, d.score); err != nil {
			return nil, err
		}
		bar, _ := ClassifyBar(d.score)
		views = append(views, schema.DimensionView{Name: d.name, Score: d.score, Bar: bar})
	}
	return views, nil
}

// BuildGroupViews groups segments and truncates each group's text.
func BuildGroupViews(segments []schema.Segment, maxLength int) []schema.GroupView {
	groups := GroupSegments(segments)
	views := make([]schema.GroupView, 0, len(groups))
	for _, g := range groups {
		views = append(views, schema.GroupView{
			Operation: g.Operation,
			Title:     GroupTitle(g),
			Text:      Truncate(g.Text, maxLength),
		})
	}
	return views
}

// GroupTitle renders a group heading such as "Added - 12 chars".
func GroupTitle(g schema.DisplayGroup) string {
	return fmt.Sprintf("%s - %d chars", schema.OperationLabel(g.Operation), g.OriginalLength)
}

// TruncationNote renders the total-length hint shown under truncated text.
func TruncationNote(t schema.Truncation) string {
	return t.Note()
}

// RenderMetadata flattens metadata into sorted key/value strings.
// Objects and arrays are JSON-encoded; scalars use their default formatting.
func RenderMetadata(metadata map[string]any) []schema.MetadataEntry {
	if len(metadata) == 0 {
		return nil
	}
	entries := make([]schema.MetadataEntry, 0, len(metadata))
	for _, key := range slices.Sorted(maps.Keys(metadata)) {
		entries = append(entries, schema.MetadataEntry{Key: key, Value: renderMetadataValue(metadata[key])})
	}
	return entries
}

func renderMetadataValue(value any) string {
	if value == nil {
		return "null"
	}
	if s, ok := value.(string); ok {
		return s
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(data)
	default:
		return fmt.Sprint(value)
	}
}
