package cmd

import (
	"github.com/openvitals/vitaline/core"
	"github.com/openvitals/vitaline/internal/contract"
	"github.com/openvitals/vitaline/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Vitaline MCP server",
	Long:  `Launch an MCP server that allows AI agents to build and edit vital-sign timelines via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Stdout carries the protocol, so nothing else may print there.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		t, err := buildTimeline()
		if err != nil {
			contract.LogFatal("Cannot build initial timeline", err)
		}
		return mcp.StartMCPServer(rootCtx, cfg, core.NewStore(t))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
