package cmd

import (
	"github.com/huangsam/docdiff/core"
	"github.com/huangsam/docdiff/internal/client"
	"github.com/huangsam/docdiff/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd fetches a comparison report from the API and renders it.
var compareCmd = &cobra.Command{
	Use:   "compare <file-id-1> <file-id-2>",
	Short: "Compare two uploaded documents through the comparison API",
	Long: `Request a comparison between two documents and render the resulting report.

The report is validated before it is rendered. Every fetched report is stored
in the report cache, and --use-cache serves a fresh cached copy instead of
calling the API again.

Modes:
  page      - page by page
  section   - section by section (default)
  table     - table by table
  string    - occurrences of --query with surrounding context
  structure - document outline

Examples:
  # Section comparison rendered as a table
  docdiff compare 3f2a 9c1d

  # String comparison written as JSON
  docdiff compare 3f2a 9c1d --mode string --query "termination" --output json

  # Reuse a cached report
  docdiff compare 3f2a 9c1d --use-cache`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(_ *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, func(in *contract.ConfigRawInput) {
			in.FileID1Str, in.FileID2Str = args[0], args[1]
		})
	},
	Run: func(_ *cobra.Command, _ []string) {
		c := client.New(cfg.APIURL, cfg.Timeout)
		if err := core.ExecuteCompare(rootCtx, cfg, cacheManager, c); err != nil {
			contract.LogFatal("Failed to compare documents", err)
		}
	},
}
