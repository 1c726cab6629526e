// internal/commands/commands_test.go
package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nimbusmcp/nimbus/internal/tools"
)

func TestToolsCommandListsAllTools(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"tools"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("tools command failed: %v", err)
	}

	output := buf.String()
	for _, name := range []string{
		"get_weather_by_city",
		"get_precipitation_chance",
		"get_air_quality",
		"get_alerts_by_type",
	} {
		if !strings.Contains(output, name) {
			t.Errorf("missing tool %s in output:\n%s", name, output)
		}
	}
	if !strings.Contains(output, "latitude (number)") {
		t.Errorf("missing parameter description in output:\n%s", output)
	}
}

func TestDescribeParameters(t *testing.T) {
	lines := describeParameters(tools.AlertsByTypeDefinition())
	if len(lines) != 2 {
		t.Fatalf("expected 2 parameter lines, got %v", lines)
	}
	if lines[0] != "event_type (string)" || lines[1] != "state (string)" {
		t.Fatalf("expected sorted parameter lines, got %v", lines)
	}
}

func TestDescribeParametersNoProperties(t *testing.T) {
	if lines := describeParameters(tools.Definition{Parameters: map[string]any{"type": "object"}}); lines != nil {
		t.Fatalf("expected nil for schema without properties, got %v", lines)
	}
}
