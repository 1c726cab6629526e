package tools

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nimbusmcp/nimbus/internal/util"
)

// dailyForecastResponse defines the daily block of the forecast endpoint.
// The upstream contract says the two arrays are index-parallel; that is
// never trusted here, iteration is clamped to the shorter one.
type dailyForecastResponse struct {
	Daily *struct {
		Time                        []string   `json:"time"`
		PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
	} `json:"daily"`
}

// PrecipitationChanceDefinition describes the precipitation tool to the host.
func PrecipitationChanceDefinition() Definition {
	return Definition{
		Name:        PrecipitationChanceName,
		Description: "Get the daily maximum precipitation probability for a location over the configured forecast window.",
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

// PrecipitationChance fetches the daily precipitation probability series
// and emits one line per day, preserving upstream chronological order.
func (s *Service) PrecipitationChance(ctx context.Context, latitude, longitude float64) string {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("daily", "precipitation_probability_max")
	params.Set("forecast_days", strconv.Itoa(s.cfg.ForecastDaysOrDefault()))
	params.Set("timezone", "auto")

	var forecast dailyForecastResponse
	err := s.client.GetJSON(ctx, s.cfg.ForecastEndpoint(), params, &forecast)
	if err != nil || forecast.Daily == nil {
		return "Unable to fetch precipitation forecast."
	}

	daily := forecast.Daily
	days := util.Min(len(daily.Time), len(daily.PrecipitationProbabilityMax))
	if days == 0 {
		return "No precipitation data available."
	}

	lines := make([]string, 0, days)
	for i := 0; i < days; i++ {
		lines = append(lines, fmt.Sprintf("%s: %s%% chance of precipitation", daily.Time[i], num(daily.PrecipitationProbabilityMax[i])))
	}
	return strings.Join(lines, "\n")
}

func (s *Service) precipitationChanceHandler(ctx context.Context, args map[string]any) (string, error) {
	lat, lon, err := coordinateArgs(args)
	if err != nil {
		return "", err
	}
	return s.PrecipitationChance(ctx, lat, lon), nil
}
