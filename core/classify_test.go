package core

import (
	"errors"
	"math"
	"testing"

	"github.com/huangsam/docdiff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		score  float64
		tier   schema.Tier
		weight float64
	}{
		{1.0, schema.ExcellentTier, ExcellentThreshold},
		{0.90, schema.ExcellentTier, ExcellentThreshold},
		{0.8999, schema.GoodTier, GoodThreshold},
		{0.75, schema.GoodTier, GoodThreshold},
		{0.7499, schema.FairTier, FairThreshold},
		{0.6, schema.FairTier, FairThreshold},
		{0.5999, schema.PoorTier, 0},
		{0.0, schema.PoorTier, 0},
	}

	for _, tt := range tests {
		t.Run(FormatPercent(tt.score), func(t *testing.T) {
			c, err := Classify(tt.score)
			require.NoError(t, err)
			assert.Equal(t, tt.tier, c.Tier)
			assert.Equal(t, tt.weight, c.ColorWeight)
		})
	}
}

func TestClassifyBarBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		level schema.BarLevel
	}{
		{1.0, schema.HighBar},
		{0.75, schema.HighBar},
		{0.7499, schema.MediumBar},
		{0.5, schema.MediumBar},
		{0.49, schema.LowBar},
		{0.0, schema.LowBar},
	}

	for _, tt := range tests {
		t.Run(FormatPercent(tt.score), func(t *testing.T) {
			c, err := ClassifyBar(tt.score)
			require.NoError(t, err)
			assert.Equal(t, tt.level, c.Level)
		})
	}
}

func TestScalesDiverge(t *testing.T) {
	// 0.55 is poor on the badge scale but medium on the bar scale.
	badge, err := Classify(0.55)
	require.NoError(t, err)
	bar, err := ClassifyBar(0.55)
	require.NoError(t, err)
	assert.Equal(t, schema.PoorTier, badge.Tier)
	assert.Equal(t, schema.MediumBar, bar.Level)
}

func TestClassifyOutOfRange(t *testing.T) {
	for _, score := range []float64{-0.01, 1.0001, 42, math.NaN(), math.Inf(1)} {
		_, err := Classify(score)
		assert.True(t, errors.Is(err, schema.ErrContractViolation), "score %v", score)

		_, err = ClassifyBar(score)
		assert.True(t, errors.Is(err, schema.ErrContractViolation), "score %v", score)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "87.5%", FormatPercent(0.875))
	assert.Equal(t, "0.0%", FormatPercent(0))
	assert.Equal(t, "100.0%", FormatPercent(1))
}

// FuzzClassify checks that every in-range score classifies on both scales.
func FuzzClassify(f *testing.F) {
	for _, s := range []float64{0, 0.5, 0.6, 0.75, 0.9, 1} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, score float64) {
		c, err := Classify(score)
		b, barErr := ClassifyBar(score)
		inRange := score >= 0 && score <= 1
		if inRange != (err == nil) || inRange != (barErr == nil) {
			t.Fatalf("score %v: inRange=%v err=%v barErr=%v", score, inRange, err, barErr)
		}
		if !inRange {
			return
		}
		if score < c.ColorWeight || score < b.ColorWeight {
			t.Fatalf("score %v below its tier bound: %+v %+v", score, c, b)
		}
	})
}
