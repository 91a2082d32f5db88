package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/huangsam/docdiff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorLabel(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	assert.Equal(t, "Excellent", GetColorLabel(schema.ExcellentTier))
	assert.Equal(t, "Good", GetColorLabel(schema.GoodTier))
	assert.Equal(t, "Fair", GetColorLabel(schema.FairTier))
	assert.Equal(t, "Poor", GetColorLabel(schema.PoorTier))
}

func TestColorizeOperation(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	assert.Equal(t, "same", ColorizeOperation(schema.EqualOp, "same"))
	for _, op := range []schema.OperationKind{schema.DeleteOp, schema.InsertOp, schema.ReplaceOp} {
		out := ColorizeOperation(op, "text")
		assert.Contains(t, out, "text")
		assert.NotEqual(t, "text", out, "op %s should be colored", op)
	}
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.txt")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}

func TestOpenInput(t *testing.T) {
	f, err := OpenInput("-")
	require.NoError(t, err)
	assert.Equal(t, os.Stdin, f)

	_, err = OpenInput("")
	assert.Error(t, err)

	_, err = OpenInput(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestDBFilePaths(t *testing.T) {
	assert.True(t, strings.HasSuffix(GetCacheDBFilePath(), ".docdiff_cache.db"))
	assert.True(t, strings.HasSuffix(GetHistoryDBFilePath(), ".docdiff_history.db"))
	assert.NotEqual(t, GetCacheDBFilePath(), GetHistoryDBFilePath())
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "short", TruncateLabel("short", 10))
	assert.Equal(t, "Introdu...", TruncateLabel("Introduction to Widgets", 10))
	assert.Equal(t, "日本...", TruncateLabel("日本語のテキスト", 5))
	assert.Equal(t, "abcdef", TruncateLabel("abcdef", 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("perhaps")
	assert.Error(t, err)
}

// FuzzTruncateLabel checks that truncated labels stay within width and valid UTF-8.
func FuzzTruncateLabel(f *testing.F) {
	f.Add("Introduction", 8)
	f.Add("日本語のテキスト", 4)
	f.Add("", 0)
	f.Fuzz(func(t *testing.T, label string, width int) {
		out := TruncateLabel(label, width)
		if width > 3 && len([]rune(out)) > width && len([]rune(label)) > width {
			t.Fatalf("label %q truncated to %q exceeds width %d", label, out, width)
		}
	})
}
