package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/huangsam/docdiff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReportView(t *testing.T) {
	view, err := BuildReportView(validReport(), DefaultMaxLength)
	require.NoError(t, err)

	assert.Equal(t, "doc-a", view.FileID1)
	assert.Equal(t, schema.SectionMode, view.Mode)
	assert.Equal(t, 2, view.Stats.Equal)
	assert.Equal(t, 1, view.Stats.Replace)
	assert.Equal(t, 1, view.Stats.Delete)
	assert.InDelta(t, 0.66, view.Stats.AvgSimilarity, 1e-9)
	require.Len(t, view.Results, 2)

	first := view.Results[0]
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, "Introduction", first.ItemID)
	assert.Equal(t, schema.ExcellentTier, first.Badge.Tier)
	require.Len(t, first.Dimensions, 5)
	assert.Equal(t, "Embedding", first.Dimensions[4].Name)
	assert.Equal(t, schema.HighBar, first.Dimensions[4].Bar.Level)
	require.Len(t, first.Groups, 3)
	assert.Equal(t, "Changed - 3 chars", first.Groups[1].Title)
	assert.Equal(t, []schema.MetadataEntry{{Key: "page", Value: "1"}}, first.Metadata)

	second := view.Results[1]
	assert.Equal(t, schema.PoorTier, second.Badge.Tier)
	require.Len(t, second.Dimensions, 4)
	assert.Equal(t, schema.LowBar, second.Dimensions[2].Bar.Level)
	assert.Equal(t, schema.MediumBar, second.Dimensions[3].Bar.Level)
	assert.Nil(t, second.Metadata)
}

func TestBuildReportViewNil(t *testing.T) {
	_, err := BuildReportView(nil, DefaultMaxLength)
	assert.ErrorIs(t, err, schema.ErrNoReport)
}

func TestBuildResultViewRejectsBadScores(t *testing.T) {
	r := validReport().Results[1]
	r.Similarity.Semantic = 1.5
	_, err := BuildResultView(3, r, DefaultMaxLength)
	require.Error(t, err)

	var cv *schema.ContractViolation
	require.True(t, errors.As(err, &cv))
	assert.Equal(t, "results[3].similarity.semantic", cv.Field)
}

func TestBuildResultViewRejectsUnknownOperation(t *testing.T) {
	r := validReport().Results[0]
	r.Segments = append(r.Segments, seg("move", "x"))
	_, err := BuildResultView(0, r, DefaultMaxLength)
	assert.ErrorIs(t, err, schema.ErrContractViolation)
}

func TestBuildGroupViewsTruncates(t *testing.T) {
	long := strings.Repeat("a", 520)
	views := BuildGroupViews([]schema.Segment{seg(schema.InsertOp, long[:300]), seg(schema.InsertOp, long[300:])}, DefaultMaxLength)
	require.Len(t, views, 1)
	assert.Equal(t, "Added - 520 chars", views[0].Title)
	assert.True(t, views[0].Text.Truncated)
	assert.Len(t, views[0].Text.Shown, DefaultMaxLength)
	assert.Equal(t, "... (520 chars total)", TruncationNote(views[0].Text))
}

func TestBuildGroupViewsEmpty(t *testing.T) {
	views := BuildGroupViews(nil, DefaultMaxLength)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestRenderMetadata(t *testing.T) {
	entries := RenderMetadata(map[string]any{
		"tags":    []any{"a", "b"},
		"bbox":    map[string]any{"x": 1.0},
		"page":    3.0,
		"heading": "Intro",
		"missing": nil,
		"flag":    true,
	})
	assert.Equal(t, []schema.MetadataEntry{
		{Key: "bbox", Value: `{"x":1}`},
		{Key: "flag", Value: "true"},
		{Key: "heading", Value: "Intro"},
		{Key: "missing", Value: "null"},
		{Key: "page", Value: "3"},
		{Key: "tags", Value: `["a","b"]`},
	}, entries)

	assert.Nil(t, RenderMetadata(nil))
}
