package core

import (
	"fmt"
	"math"

	"github.com/huangsam/docdiff/schema"
)

// Thresholds for the 4-tier overall badge scale (inclusive lower bounds).
const (
	ExcellentThreshold = 0.90
	GoodThreshold      = 0.75
	FairThreshold      = 0.60
)

// Thresholds for the 3-tier per-dimension bar scale (inclusive lower bounds).
// These intentionally differ from the badge scale.
const (
	HighBarThreshold   = 0.75
	MediumBarThreshold = 0.50
)

// checkScore reports a ContractViolation for scores outside [0,1] or NaN.
func checkScore(field string, score float64) error {
	if math.IsNaN(score) || score < 0 || score > 1 {
		return schema.NewContractViolation(field, score, "must be within [0,1]")
	}
	return nil
}

// Classify maps a score in [0,1] onto the 4-tier scale. The color weight is the
// lower bound of the matched tier.
func Classify(score float64) (schema.Classification, error) {
	if err := checkScore("score", score); err != nil {
		return schema.Classification{}, err
	}
	switch {
	case score >= ExcellentThreshold:
		return schema.Classification{Tier: schema.ExcellentTier, ColorWeight: ExcellentThreshold}, nil
	case score >= GoodThreshold:
		return schema.Classification{Tier: schema.GoodTier, ColorWeight: GoodThreshold}, nil
	case score >= FairThreshold:
		return schema.Classification{Tier: schema.FairTier, ColorWeight: FairThreshold}, nil
	default:
		return schema.Classification{Tier: schema.PoorTier, ColorWeight: 0}, nil
	}
}

// ClassifyBar maps a score in [0,1] onto the 3-tier bar scale.
func ClassifyBar(score float64) (schema.BarClassification, error) {
	if err := checkScore("score", score); err != nil {
		return schema.BarClassification{}, err
	}
	switch {
	case score >= HighBarThreshold:
		return schema.BarClassification{Level: schema.HighBar, ColorWeight: HighBarThreshold}, nil
	case score >= MediumBarThreshold:
		return schema.BarClassification{Level: schema.MediumBar, ColorWeight: MediumBarThreshold}, nil
	default:
		return schema.BarClassification{Level: schema.LowBar, ColorWeight: 0}, nil
	}
}

// FormatPercent renders a score as a percentage with one decimal, e.g. "87.5%".
func FormatPercent(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}
