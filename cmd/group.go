package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/huangsam/docdiff/core"
	"github.com/huangsam/docdiff/internal/contract"
	"github.com/huangsam/docdiff/schema"
	"github.com/spf13/cobra"
)

// groupCmd groups a bare segment list.
var groupCmd = &cobra.Command{
	Use:   "group [segments.json]",
	Short: "Group and truncate a list of diff segments",
	Long: `Merge adjacent segments with the same operation and truncate each group.

Input is either a JSON array of {operation, text} segments (a file or "-" for stdin),
or a diff-match-patch delta decoded against a base text file.

Examples:
  docdiff group segments.json --max-length 80
  docdiff group --base-file before.txt --delta "=12\t-4\t+new text" --merge-replacements`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(_ *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, reportArgs(args))
	},
	Run: func(cmd *cobra.Command, _ []string) {
		segments, err := loadSegments(cmd)
		if err != nil {
			contract.LogFatal("Failed to load segments", err)
		}
		if merge, _ := cmd.Flags().GetBool("merge-replacements"); merge {
			segments = core.MergeReplacements(segments)
		}
		if err := core.ExecuteGroup(rootCtx, cfg, segments); err != nil {
			contract.LogFatal("Failed to group segments", err)
		}
	},
}

// loadSegments reads segments from --delta or from the positional input.
func loadSegments(cmd *cobra.Command) ([]schema.Segment, error) {
	delta, _ := cmd.Flags().GetString("delta")
	baseFile, _ := cmd.Flags().GetString("base-file")
	if delta != "" || baseFile != "" {
		if delta == "" || baseFile == "" {
			return nil, fmt.Errorf("--base-file and --delta must be used together")
		}
		base, err := os.ReadFile(baseFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read base file: %w", err)
		}
		return core.SegmentsFromDelta(string(base), delta)
	}

	if cfg.ReportPath == "" {
		return nil, fmt.Errorf("a segments file or --base-file with --delta is required")
	}
	file, err := contract.OpenInput(cfg.ReportPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open segments: %w", err)
	}
	if cfg.ReportPath != "-" {
		defer func() { _ = file.Close() }()
	}
	return core.DecodeSegments(file)
}

// classifyCmd classifies scores on both scales.
var classifyCmd = &cobra.Command{
	Use:   "classify <score>...",
	Short: "Classify similarity scores into badge tiers and bar levels",
	Long: `Place each score in [0,1] on the 4-tier badge scale (excellent, good, fair, poor)
and the 3-tier bar scale (high, medium, low).

Examples:
  docdiff classify 0.92 0.61 0.3
  docdiff classify 0.75 --output json`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return sharedSetup(rootCtx, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		scores, err := parseScores(args)
		if err != nil {
			contract.LogFatal("Invalid score", err)
		}
		if err := core.ExecuteClassify(rootCtx, cfg, scores); err != nil {
			contract.LogFatal("Failed to classify scores", err)
		}
	},
}

// parseScores converts the positional arguments to floats.
func parseScores(args []string) ([]float64, error) {
	scores := make([]float64, 0, len(args))
	for _, arg := range args {
		score, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("score must be a number (received %q)", arg)
		}
		scores = append(scores, score)
	}
	return scores, nil
}
