package outwriter

import (
	"os"

	"github.com/huangsam/docdiff/internal/contract"
	"golang.org/x/term"
)

// Bounds for the item column in the results table.
const (
	minItemWidth = 15
	maxItemWidth = 60
)

// getTerminalWidth returns the configured width, the detected terminal width,
// or a conservative default.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// getMaxItemWidth calculates the maximum width for item ids in the results table.
func getMaxItemWidth(cfg *contract.Config) int {
	// # + Type + Overall + Tier + five dimension columns, with borders and padding
	baseWidth := 95
	available := getTerminalWidth(cfg) - baseWidth
	return min(max(available, minItemWidth), maxItemWidth)
}
