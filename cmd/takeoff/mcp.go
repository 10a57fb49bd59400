package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/philipparndt/takeoff/version"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the measurement tools over MCP on stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout so that an assistant
can calibrate, measure and summarize pages. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := newRegistry().NewMCPServer("takeoff", version.GetVersion())
		logger.Info("mcp server running on stdio")
		return srv.Run(ctx, &mcp.StdioTransport{})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
