package schema

// Segment is an atomic span of text tagged with one edit operation.
type Segment struct {
	Operation OperationKind `json:"operation" yaml:"operation" validate:"required,oneof=equal delete insert replace"`
	Text      string        `json:"text" yaml:"text"`
}

// SimilarityRecord is a multi-dimensional score bundle, all values in [0,1].
// Embedding is optional since not every compare mode computes it.
type SimilarityRecord struct {
	Overall    float64  `json:"overall" yaml:"overall" validate:"gte=0,lte=1"`
	Structural float64  `json:"structural" yaml:"structural" validate:"gte=0,lte=1"`
	Content    float64  `json:"content" yaml:"content" validate:"gte=0,lte=1"`
	Lexical    float64  `json:"lexical" yaml:"lexical" validate:"gte=0,lte=1"`
	Semantic   float64  `json:"semantic" yaml:"semantic" validate:"gte=0,lte=1"`
	Embedding  *float64 `json:"embedding" yaml:"embedding" validate:"omitempty,gte=0,lte=1"`
}

// ComparisonResult is one compared unit (page, section, table, or string match).
type ComparisonResult struct {
	ItemType   string           `json:"item_type" yaml:"item_type"`
	ItemID     string           `json:"item_id" yaml:"item_id"`
	Similarity SimilarityRecord `json:"similarity" yaml:"similarity"`
	Segments   []Segment        `json:"segments" yaml:"segments" validate:"omitempty,dive"`
	Metadata   map[string]any   `json:"metadata" yaml:"metadata"`
}

// ComparisonReport is the root of a comparison run and owns its results.
type ComparisonReport struct {
	FileID1               string             `json:"file_id_1" yaml:"file_id_1" validate:"required"`
	FileID2               string             `json:"file_id_2" yaml:"file_id_2" validate:"required"`
	Mode                  CompareMode        `json:"mode" yaml:"mode" validate:"required,oneof=page section table string structure"`
	ComparisonTimeSeconds float64            `json:"comparison_time_seconds" yaml:"comparison_time_seconds" validate:"gte=0"`
	TotalComparisons      int                `json:"total_comparisons" yaml:"total_comparisons" validate:"gte=0"`
	Results               []ComparisonResult `json:"results" yaml:"results" validate:"omitempty,dive"`
}

// CompareRequest is the body sent to the documents comparison endpoint.
type CompareRequest struct {
	FileID1 string      `json:"file_id_1" validate:"required"`
	FileID2 string      `json:"file_id_2" validate:"required"`
	Mode    CompareMode `json:"mode" validate:"required,oneof=page section table string structure"`
	Query   *string     `json:"query"`
}

// PageCompareRequest is the body for the page endpoint.
type PageCompareRequest struct {
	FileID1    string `json:"file_id_1"`
	FileID2    string `json:"file_id_2"`
	PageNumber int    `json:"page_number"`
}

// SectionCompareRequest is the body for the section endpoint.
type SectionCompareRequest struct {
	FileID1      string `json:"file_id_1"`
	FileID2      string `json:"file_id_2"`
	SectionQuery string `json:"section_query"`
}

// TableCompareRequest is the body for the table endpoint.
type TableCompareRequest struct {
	FileID1    string  `json:"file_id_1"`
	FileID2    string  `json:"file_id_2"`
	TableQuery *string `json:"table_query"`
}

// StringCompareRequest is the body for the string endpoint.
type StringCompareRequest struct {
	FileID1      string `json:"file_id_1"`
	FileID2      string `json:"file_id_2"`
	Query        string `json:"query"`
	ContextChars int    `json:"context_chars"`
}

// StructureCompareRequest is the body for the structure endpoint.
type StructureCompareRequest struct {
	FileID1 string `json:"file_id_1"`
	FileID2 string `json:"file_id_2"`
}
