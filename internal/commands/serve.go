// internal/commands/serve.go
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nimbusmcp/nimbus/internal/logging"
	"github.com/nimbusmcp/nimbus/internal/mcpserver"
	"github.com/nimbusmcp/nimbus/internal/tools"
	"github.com/nimbusmcp/nimbus/internal/upstream"
)

// buildServer wires the fetcher, tool service and registry for a
// transport. The registry is an explicit value handed over at startup;
// nothing tool-related lives in package state.
func buildServer() *mcpserver.Server {
	cfg := *currentConfig
	client := upstream.New(cfg.RequestTimeout(), cfg.UserAgentOrDefault())
	registry := tools.NewRegistry(tools.NewService(cfg, client))
	return mcpserver.New(registry)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the weather tools to an MCP host over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		server := buildServer()
		logging.Infof("weather tool server listening on stdio")
		return server.ServeStdio(cmd.Context(), os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
