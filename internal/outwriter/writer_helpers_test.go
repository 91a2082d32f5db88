package outwriter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/huangsam/docdiff/internal/contract"
	"github.com/huangsam/docdiff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		precision int
		score     float64
		float     string
		percent   string
	}{
		{1, 0.875, "0.88", "87.5%"},
		{2, 0.875, "0.875", "87.50%"},
		{1, 0, "0.00", "0.0%"},
		{1, 1, "1.00", "100.0%"},
	}
	for _, tt := range tests {
		t.Run(tt.percent, func(t *testing.T) {
			fmtFloat, fmtPercent := createFormatters(tt.precision)
			assert.Equal(t, tt.float, fmtFloat(tt.score))
			assert.Equal(t, tt.percent, fmtPercent(tt.score))
		})
	}
}

func TestRenderBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░", renderBar(0))
	assert.Equal(t, "█████░░░░░", renderBar(0.5))
	assert.Equal(t, "██████████", renderBar(1))
	assert.Equal(t, "█████████░", renderBar(0.88))
}

func TestColorizersPlain(t *testing.T) {
	tierLabel, opText := colorizers(&contract.Config{UseColors: false})
	assert.Equal(t, "Fair", tierLabel(schema.FairTier))
	assert.Equal(t, "gone", opText(schema.DeleteOp, "gone"))
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"a", "b"}, func(w *csv.Writer) error {
		return w.Write([]string{"1", "x,y"})
	})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,\"x,y\"\n", buf.String())

	err = writeCSVWithHeader(&buf, []string{"a"}, func(*csv.Writer) error {
		return errors.New("row failure")
	})
	assert.EqualError(t, err, "row failure")
}

func TestWriteJSONAndYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())

	buf.Reset()
	require.NoError(t, writeYAML(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "a: 1\n", buf.String())
}

func TestGetMaxItemWidth(t *testing.T) {
	assert.Equal(t, minItemWidth, getMaxItemWidth(&contract.Config{Width: 80}))
	assert.Equal(t, 25, getMaxItemWidth(&contract.Config{Width: 120}))
	assert.Equal(t, maxItemWidth, getMaxItemWidth(&contract.Config{Width: 400}))
}
