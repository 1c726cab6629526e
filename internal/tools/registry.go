package tools

import (
	"context"
	"fmt"

	"github.com/nimbusmcp/nimbus/internal/logging"
)

// registeredTool pairs a Definition with its handler.
type registeredTool struct {
	definition Definition
	handler    Handler
}

// Registry is the explicit tool table handed to a transport at startup.
// It is immutable after construction, so concurrent dispatch needs no
// coordination here.
type Registry struct {
	ordered []registeredTool
	byName  map[string]registeredTool
}

// NewRegistry builds the canonical tool table over a Service.
func NewRegistry(svc *Service) *Registry {
	ordered := []registeredTool{
		{WeatherByCityDefinition(), svc.weatherByCityHandler},
		{PrecipitationChanceDefinition(), svc.precipitationChanceHandler},
		{AirQualityDefinition(), svc.airQualityHandler},
		{AlertsByTypeDefinition(), svc.alertsByTypeHandler},
	}
	byName := make(map[string]registeredTool, len(ordered))
	for _, tool := range ordered {
		byName[tool.definition.Name] = tool
	}
	return &Registry{ordered: ordered, byName: byName}
}

// Definitions returns the tool definitions in registration order.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.ordered))
	for _, tool := range r.ordered {
		defs = append(defs, tool.definition)
	}
	return defs
}

// Call dispatches a tool invocation. Whatever happens, the result is
// text content: unknown names, bad arguments, and upstream failures all
// come back as strings the host can relay.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) []ContentPart {
	tool, ok := r.byName[name]
	if !ok {
		return textContent(fmt.Sprintf("Unknown tool: %s", name))
	}

	if err := ValidateArguments(tool.definition, args); err != nil {
		logging.Errorf("tool %s rejected arguments: %v", name, err)
		return textContent(fmt.Sprintf("Invalid arguments for %s: %v", name, err))
	}

	result, err := tool.handler(ctx, args)
	if err != nil {
		logging.Errorf("tool %s rejected arguments: %v", name, err)
		return textContent(fmt.Sprintf("Invalid arguments for %s: %v", name, err))
	}
	return textContent(result)
}

func textContent(text string) []ContentPart {
	return []ContentPart{{Type: "text", Text: text}}
}
