package tools

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// airQualityResponse defines the current block of the air-quality
// endpoint. Each metric is optional in the payload.
type airQualityResponse struct {
	Current *struct {
		PM25            *float64 `json:"pm2_5"`
		PM10            *float64 `json:"pm10"`
		CarbonMonoxide  *float64 `json:"carbon_monoxide"`
		NitrogenDioxide *float64 `json:"nitrogen_dioxide"`
		Ozone           *float64 `json:"ozone"`
	} `json:"current"`
}

// AirQualityDefinition describes the air-quality tool to the host.
func AirQualityDefinition() Definition {
	return Definition{
		Name:        AirQualityName,
		Description: "Get current air quality data for a given location.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"latitude": map[string]any{
					"type":        "number",
					"description": "Latitude of the location",
				},
				"longitude": map[string]any{
					"type":        "number",
					"description": "Longitude of the location",
				},
			},
			"required": []string{"latitude", "longitude"},
		},
	}
}

// AirQuality fetches the current pollutant snapshot and formats the five
// metrics in fixed order, substituting N/A for absent readings.
func (s *Service) AirQuality(ctx context.Context, latitude, longitude float64) string {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("current", strings.Join([]string{"pm10", "pm2_5", "carbon_monoxide", "nitrogen_dioxide", "ozone"}, ","))

	var quality airQualityResponse
	err := s.client.GetJSON(ctx, s.cfg.AirQualityEndpoint(), params, &quality)
	if err != nil || quality.Current == nil {
		return "Unable to fetch air quality data."
	}

	aq := quality.Current
	return strings.Join([]string{
		"Air Quality Data:",
		fmt.Sprintf("PM2.5: %s µg/m³", num(aq.PM25)),
		fmt.Sprintf("PM10: %s µg/m³", num(aq.PM10)),
		fmt.Sprintf("CO: %s µg/m³", num(aq.CarbonMonoxide)),
		fmt.Sprintf("NO₂: %s µg/m³", num(aq.NitrogenDioxide)),
		fmt.Sprintf("O₃: %s µg/m³", num(aq.Ozone)),
	}, "\n")
}

func (s *Service) airQualityHandler(ctx context.Context, args map[string]any) (string, error) {
	lat, lon, err := coordinateArgs(args)
	if err != nil {
		return "", err
	}
	return s.AirQuality(ctx, lat, lon), nil
}
