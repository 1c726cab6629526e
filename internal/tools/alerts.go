package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/nimbusmcp/nimbus/internal/util"
)

// alertsResponse defines the fields we need from the NWS active-alerts
// feed. Features is a pointer so a payload that omits the key (fetch
// worked, shape wrong) is distinguishable from an empty feature list.
type alertsResponse struct {
	Features *[]struct {
		Properties struct {
			Event       string `json:"event"`
			AreaDesc    string `json:"areaDesc"`
			Severity    string `json:"severity"`
			Description string `json:"description"`
			Instruction string `json:"instruction"`
		} `json:"properties"`
	} `json:"features"`
}

// AlertsByTypeDefinition describes the alerts tool to the host.
func AlertsByTypeDefinition() Definition {
	return Definition{
		Name:        AlertsByTypeName,
		Description: "Get active weather alerts of a specific type for a US state.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"state": map[string]any{
					"type":        "string",
					"description": "Two-letter US state code (e.g. 'CA', 'TX')",
				},
				"event_type": map[string]any{
					"type":        "string",
					"description": "Type of event (e.g. 'Flood', 'Storm', 'Heat')",
				},
			},
			"required": []string{"state", "event_type"},
		},
	}
}

// AlertsByType fetches active alerts for the state and keeps those whose
// event name contains eventType case-insensitively.
func (s *Service) AlertsByType(ctx context.Context, state, eventType string) string {
	state = strings.ToUpper(strings.TrimSpace(state))

	var alerts alertsResponse
	err := s.client.GetJSON(ctx, s.cfg.AlertsEndpoint(state), nil, &alerts)
	if err != nil || alerts.Features == nil {
		return fmt.Sprintf("Unable to fetch alerts for %s.", state)
	}

	needle := strings.ToLower(eventType)
	var blocks []string
	for _, feature := range *alerts.Features {
		props := feature.Properties
		if !strings.Contains(strings.ToLower(props.Event), needle) {
			continue
		}
		blocks = append(blocks, s.formatAlert(props.Event, props.AreaDesc, props.Severity, props.Description, props.Instruction))
	}

	if len(blocks) == 0 {
		return fmt.Sprintf("No active %s alerts for %s.", eventType, state)
	}
	return strings.Join(blocks, "\n---\n")
}

func (s *Service) formatAlert(event, area, severity, description, instruction string) string {
	lines := []string{
		"Event: " + orDefault(event, "Unknown"),
		"Area: " + orDefault(area, "Unknown"),
		"Severity: " + orDefault(severity, "Unknown"),
		"Description: " + util.TruncateRunes(orDefault(description, "No description available"), s.cfg.AlertDescriptionLimit),
	}
	if strings.TrimSpace(instruction) != "" {
		lines = append(lines, "Instructions: "+instruction)
	}
	return strings.Join(lines, "\n")
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func (s *Service) alertsByTypeHandler(ctx context.Context, args map[string]any) (string, error) {
	state, err := stringArg(args, "state")
	if err != nil {
		return "", err
	}
	eventType, err := stringArg(args, "event_type")
	if err != nil {
		return "", err
	}
	return s.AlertsByType(ctx, state, eventType), nil
}
