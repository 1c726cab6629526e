// internal/commands/tools.go
package commands

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nimbusmcp/nimbus/internal/tools"
	"github.com/nimbusmcp/nimbus/internal/upstream"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools this server exposes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := *currentConfig
		svc := tools.NewService(cfg, upstream.New(cfg.RequestTimeout(), cfg.UserAgentOrDefault()))
		registry := tools.NewRegistry(svc)

		out := cmd.OutOrStdout()
		heading := color.New(color.FgCyan, color.Bold)
		for _, def := range registry.Definitions() {
			_, _ = heading.Fprintln(out, def.Name)
			fmt.Fprintf(out, "  %s\n", def.Description)
			for _, arg := range describeParameters(def) {
				fmt.Fprintf(out, "    %s\n", arg)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

// describeParameters flattens a tool's JSON schema into "name (type)"
// lines, sorted by name.
func describeParameters(def tools.Definition) []string {
	props, ok := def.Parameters["properties"].(map[string]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		typ := "any"
		if attr, ok := props[name].(map[string]any); ok {
			if s, ok := attr["type"].(string); ok {
				typ = s
			}
		}
		lines = append(lines, fmt.Sprintf("%s (%s)", name, typ))
	}
	return lines
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
