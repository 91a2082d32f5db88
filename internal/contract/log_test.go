package contract

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerConsole(t *testing.T) {
	t.Cleanup(func() { InitLogger(zerolog.WarnLevel, "", os.Stderr) })

	var buf bytes.Buffer
	InitLogger(zerolog.InfoLevel, "", &buf)

	Logger().Debug().Msg("hidden")
	Logger().Info().Str("file_id", "doc-a").Msg("fetched report")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "fetched report")
	assert.Contains(t, out, "doc-a")
}

func TestInitLoggerFile(t *testing.T) {
	t.Cleanup(func() { InitLogger(zerolog.WarnLevel, "", os.Stderr) })

	path := filepath.Join(t.TempDir(), "logs", "docdiff.log")
	InitLogger(zerolog.DebugLevel, path, nil)
	Logger().Warn().Msg("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestInitLoggerDiscard(t *testing.T) {
	t.Cleanup(func() { InitLogger(zerolog.WarnLevel, "", os.Stderr) })

	InitLogger(zerolog.DebugLevel, "", nil)
	assert.NotPanics(t, func() { Logger().Error().Msg("nowhere") })
}
