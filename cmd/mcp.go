package cmd

import (
	"github.com/huangsam/docdiff/internal/client"
	"github.com/huangsam/docdiff/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the docdiff MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents compare documents, summarize reports, group segments and classify scores.`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if err := sharedSetup(rootCtx, nil); err != nil {
			return err
		}
		// stdout carries the protocol, so logs only go to --log-file
		initLogging(nil)
		return nil
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager, client.New(cfg.APIURL, cfg.Timeout))
	},
}
