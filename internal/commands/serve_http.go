// internal/commands/serve_http.go
package commands

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/nimbusmcp/nimbus/internal/logging"
)

var httpAddr string

var serveHTTPCmd = &cobra.Command{
	Use:   "serve-http",
	Short: "Serve the weather tools over HTTP (JSON-RPC at /mcp)",
	RunE: func(cmd *cobra.Command, args []string) error {
		server := buildServer()
		addr := httpAddr
		if addr == "" {
			addr = currentConfig.HTTPAddrOrDefault()
		}
		logging.Infof("weather tool server listening on %s", addr)
		return http.ListenAndServe(addr, server.HTTPHandler())
	},
}

func init() {
	serveHTTPCmd.Flags().StringVar(&httpAddr, "addr", "", "bind address (overrides httpAddr from config)")
	rootCmd.AddCommand(serveHTTPCmd)
}
