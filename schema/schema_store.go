package schema

import "time"

// RunInfo describes a report run when it begins.
type RunInfo struct {
	RequestID string
	StartedAt time.Time
	FileID1   string
	FileID2   string
	Mode      CompareMode
	Source    RunSource
}

// RunRecord represents a row from the docdiff_runs table.
type RunRecord struct {
	RunID            int64
	RequestID        string
	StartedAt        time.Time
	FinishedAt       *time.Time
	DurationMs       *int64
	FileID1          string
	FileID2          string
	Mode             string
	Source           string
	TotalComparisons *int32
	AvgSimilarity    *float64
}

// ResultRecord represents a row from the docdiff_results table.
type ResultRecord struct {
	RunID        int64
	Position     int32
	ItemType     string
	ItemID       string
	Overall      float64
	Tier         string
	EqualCount   int32
	DeleteCount  int32
	InsertCount  int32
	ReplaceCount int32
}
