package cmd

import (
	"fmt"

	"github.com/huangsam/docdiff/core"
	"github.com/huangsam/docdiff/internal/contract"
	"github.com/huangsam/docdiff/internal/tui"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"
)

// reportCommand builds a command that reads one report file and runs an executor on it.
func reportCommand(use, short, long string, executor core.ExecutorFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(_ *cobra.Command, args []string) error {
			return sharedSetup(rootCtx, reportArgs(args))
		},
		Run: func(_ *cobra.Command, _ []string) {
			if err := executor(rootCtx, cfg, cacheManager); err != nil {
				contract.LogFatal(fmt.Sprintf("Failed to run %s", short), err)
			}
		},
	}
}

// renderCmd renders a saved report.
var renderCmd = reportCommand(
	"render <report.json>",
	"Render a saved comparison report",
	`Render a comparison report from disk. Use "-" to read the report from stdin.

Examples:
  # Render as text tables with diff groups
  docdiff render report.json

  # Only the result tables
  docdiff render report.json --collapse

  # Convert to YAML
  cat report.json | docdiff render - --output yaml`,
	core.ExecuteRender,
)

// statsCmd prints only the aggregate statistics of a report.
var statsCmd = reportCommand(
	"stats <report.json>",
	"Show aggregate statistics of a comparison report",
	`Count segments per operation across all results and average the overall similarity.

Examples:
  docdiff stats report.json
  docdiff stats report.json --output csv`,
	core.ExecuteStats,
)

// viewCmd opens the interactive viewer.
var viewCmd = &cobra.Command{
	Use:   "view <report.json>",
	Short: "Browse a comparison report interactively",
	Long: `Open a report in an interactive terminal viewer.

Keys:
  ↑/k ↓/j      move between results
  enter/space  expand or collapse the selected result
  e / c        expand all / collapse all
  q            quit`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(_ *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, reportArgs(args))
	},
	Run: func(_ *cobra.Command, _ []string) {
		report, err := core.LoadReportFile(cfg.ReportPath)
		if err != nil {
			contract.LogFatal("Failed to load report", err)
		}
		session := core.NewSession()
		if err := session.Load(report); err != nil {
			contract.LogFatal("Invalid comparison report", err)
		}
		model, err := tui.New(session, cfg.MaxLength)
		if err != nil {
			contract.LogFatal("Failed to open viewer", err)
		}
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			contract.LogFatal("Viewer exited with error", err)
		}
	},
}
