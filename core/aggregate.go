package core

import (
	"fmt"

	"github.com/huangsam/docdiff/schema"
)

// Aggregate reduces a result list into segment-level operation counts and the
// mean overall similarity. An empty list yields zero counts and a zero average.
func Aggregate(results []schema.ComparisonResult) (schema.AggregateStats, error) {
	var stats schema.AggregateStats
	if len(results) == 0 {
		return stats, nil
	}

	var sum float64
	for i, r := range results {
		if err := checkScore(fmt.Sprintf("results[%d].similarity.overall", i), r.Similarity.Overall); err != nil {
			return schema.AggregateStats{}, err
		}
		for j, seg := range r.Segments {
			switch seg.Operation {
			case schema.EqualOp:
				stats.Equal++
			case schema.DeleteOp:
				stats.Delete++
			case schema.InsertOp:
				stats.Insert++
			case schema.ReplaceOp:
				stats.Replace++
			default:
				field := fmt.Sprintf("results[%d].segments[%d].operation", i, j)
				return schema.AggregateStats{}, schema.NewContractViolation(field, seg.Operation, "is not a known operation")
			}
		}
		sum += r.Similarity.Overall
	}

	stats.AvgSimilarity = sum / float64(len(results))
	return stats, nil
}
