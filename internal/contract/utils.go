package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/docdiff/schema"
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold)
	GoodColor      = color.New(color.FgYellow)
	FairColor      = color.New(color.FgMagenta)
	PoorColor      = color.New(color.FgRed, color.Bold)

	DeleteColor  = color.New(color.FgRed)
	InsertColor  = color.New(color.FgGreen)
	ReplaceColor = color.New(color.FgYellow)
)

// GetColorLabel returns a colored tier label for console output (table).
func GetColorLabel(tier schema.Tier) string {
	text := schema.TierLabel(tier)

	switch tier {
	case schema.ExcellentTier:
		return ExcellentColor.Sprint(text)
	case schema.GoodTier:
		return GoodColor.Sprint(text)
	case schema.FairTier:
		return FairColor.Sprint(text)
	default:
		return PoorColor.Sprint(text)
	}
}

// ColorizeOperation colors diff text by its operation. Equal text is left plain.
func ColorizeOperation(op schema.OperationKind, text string) string {
	switch op {
	case schema.DeleteOp:
		return DeleteColor.Sprint(text)
	case schema.InsertOp:
		return InsertColor.Sprint(text)
	case schema.ReplaceOp:
		return ReplaceColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// OpenInput returns a reader for a report path. "-" reads from stdin.
func OpenInput(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("input path cannot be empty")
	}
	if path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger().Error().Err(err).Msg("fatal " + msg)
	os.Exit(1)
}

// LogWarn logs a non-fatal problem through the process logger.
func LogWarn(msg string, err error) {
	Logger().Warn().Err(err).Msg(msg)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for report caching.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".docdiff_cache.db"
	}
	return filepath.Join(homeDir, ".docdiff_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".docdiff_history.db"
	}
	return filepath.Join(homeDir, ".docdiff_history.db")
}

// TruncateLabel truncates a label to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is space for "..." and at least one character.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
