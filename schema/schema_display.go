package schema

import "fmt"

// DisplayGroup is a maximal run of consecutive same-operation segments.
// It is recomputed on every render and never persisted.
type DisplayGroup struct {
	Operation      OperationKind `json:"operation" yaml:"operation"`
	Text           string        `json:"text" yaml:"text"`
	OriginalLength int           `json:"original_length" yaml:"original_length"` // In code points
}

// TruncationMarker follows the shown text when it was cut short.
const TruncationMarker = "..."

// Truncation is the bounded rendering of a text.
type Truncation struct {
	Shown       string `json:"shown" yaml:"shown"`
	Truncated   bool   `json:"truncated" yaml:"truncated"`
	TotalLength int    `json:"total_length" yaml:"total_length"` // In code points
}

// Display returns the shown text followed by the marker when truncated.
func (t Truncation) Display() string {
	if t.Truncated {
		return t.Shown + TruncationMarker
	}
	return t.Shown
}

// Note renders the total-length hint shown under truncated text.
func (t Truncation) Note() string {
	if !t.Truncated {
		return ""
	}
	return fmt.Sprintf("... (%d chars total)", t.TotalLength)
}

// Classification is the 4-tier result used for overall badges.
type Classification struct {
	Tier        Tier    `json:"tier" yaml:"tier"`
	ColorWeight float64 `json:"color_weight" yaml:"color_weight"`
}

// BarClassification is the 3-tier result used for per-dimension bars.
type BarClassification struct {
	Level       BarLevel `json:"level" yaml:"level"`
	ColorWeight float64  `json:"color_weight" yaml:"color_weight"`
}

// AggregateStats summarizes a result list. Counts are segment-level.
type AggregateStats struct {
	Equal         int     `json:"equal" yaml:"equal"`
	Delete        int     `json:"delete" yaml:"delete"`
	Insert        int     `json:"insert" yaml:"insert"`
	Replace       int     `json:"replace" yaml:"replace"`
	AvgSimilarity float64 `json:"avg_similarity" yaml:"avg_similarity"`
}

// Count returns the count for a single operation.
func (s AggregateStats) Count(op OperationKind) int {
	switch op {
	case EqualOp:
		return s.Equal
	case DeleteOp:
		return s.Delete
	case InsertOp:
		return s.Insert
	case ReplaceOp:
		return s.Replace
	default:
		return 0
	}
}

// Total returns the number of counted segments.
func (s AggregateStats) Total() int {
	return s.Equal + s.Delete + s.Insert + s.Replace
}

// DimensionView is one classified similarity dimension.
type DimensionView struct {
	Name  string            `json:"name" yaml:"name"`
	Score float64           `json:"score" yaml:"score"`
	Bar   BarClassification `json:"bar" yaml:"bar"`
}

// GroupView is a display group after truncation.
type GroupView struct {
	Operation OperationKind `json:"operation" yaml:"operation"`
	Title     string        `json:"title" yaml:"title"`
	Text      Truncation    `json:"text" yaml:"text"`
}

// MetadataEntry is one rendered metadata value.
type MetadataEntry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// ResultView is the render model for one comparison result.
type ResultView struct {
	Index      int             `json:"index" yaml:"index"`
	ItemType   string          `json:"item_type" yaml:"item_type"`
	ItemID     string          `json:"item_id" yaml:"item_id"`
	Overall    float64         `json:"overall" yaml:"overall"`
	Badge      Classification  `json:"badge" yaml:"badge"`
	Dimensions []DimensionView `json:"dimensions" yaml:"dimensions"`
	Groups     []GroupView     `json:"groups" yaml:"groups"`
	Metadata   []MetadataEntry `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ReportView is the render model for a whole report.
type ReportView struct {
	FileID1               string         `json:"file_id_1" yaml:"file_id_1"`
	FileID2               string         `json:"file_id_2" yaml:"file_id_2"`
	Mode                  CompareMode    `json:"mode" yaml:"mode"`
	ComparisonTimeSeconds float64        `json:"comparison_time_seconds" yaml:"comparison_time_seconds"`
	TotalComparisons      int            `json:"total_comparisons" yaml:"total_comparisons"`
	Stats                 AggregateStats `json:"stats" yaml:"stats"`
	Results               []ResultView   `json:"results" yaml:"results"`
}

// ScoreClassification is a score placed on both classification scales.
type ScoreClassification struct {
	Score float64           `json:"score" yaml:"score"`
	Badge Classification    `json:"badge" yaml:"badge"`
	Bar   BarClassification `json:"bar" yaml:"bar"`
}
