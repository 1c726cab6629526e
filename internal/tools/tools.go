// Package tools declares the weather tools exposed to the host and the
// handlers implementing them. Every handler returns plain text in all
// cases; upstream failures become fixed fallback strings and never cross
// the tool boundary as errors.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Definition describes the metadata the server exposes for a tool.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ContentPart represents a piece of data returned from a tool invocation.
type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Handler executes a tool using validated arguments. An error indicates
// unusable arguments, not an upstream failure; upstream failures are
// already folded into the returned text.
type Handler func(ctx context.Context, args map[string]any) (string, error)

const (
	// WeatherByCityName is the canonical name for the city-weather tool.
	WeatherByCityName = "get_weather_by_city"
	// PrecipitationChanceName is the canonical name for the precipitation tool.
	PrecipitationChanceName = "get_precipitation_chance"
	// AirQualityName is the canonical name for the air-quality tool.
	AirQualityName = "get_air_quality"
	// AlertsByTypeName is the canonical name for the alerts tool.
	AlertsByTypeName = "get_alerts_by_type"
)

// ValidateArguments checks a tool's arguments against its declared JSON
// schema and returns a descriptive error when they do not conform.
func ValidateArguments(def Definition, args map[string]any) error {
	schemaLoader := gojsonschema.NewGoLoader(def.Parameters)
	documentLoader := gojsonschema.NewGoLoader(args)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("argument validation failed: %s", strings.Join(errs, ", "))
}

// num renders an optional upstream number, substituting N/A when the
// field was absent from the payload.
func num(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// stringArg extracts a required string argument.
func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("'%s' argument is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("'%s' argument must be a string", key)
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("'%s' argument cannot be empty", key)
	}
	return s, nil
}

// floatArg extracts a required numeric argument.
func floatArg(args map[string]any, key string) (float64, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("'%s' argument is required", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("'%s' argument must be a number", key)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("'%s' argument must be a number", key)
	}
}

// coordinateArgs extracts and sanity-checks a latitude/longitude pair.
func coordinateArgs(args map[string]any) (float64, float64, error) {
	lat, err := floatArg(args, "latitude")
	if err != nil {
		return 0, 0, err
	}
	lon, err := floatArg(args, "longitude")
	if err != nil {
		return 0, 0, err
	}
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return 0, 0, fmt.Errorf("latitude and longitude must be finite")
	}
	return lat, lon, nil
}
