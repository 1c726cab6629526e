package tools

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// geocodeResponse defines the fields we need from the Open-Meteo
// geocoding search.
type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// currentConditionsResponse defines the fields we need from the forecast
// endpoint's current block. Pointer fields distinguish an absent metric
// from a zero reading.
type currentConditionsResponse struct {
	Current *struct {
		Temperature   *float64 `json:"temperature_2m"`
		WindSpeed10M  *float64 `json:"wind_speed_10m"`
		Precipitation *float64 `json:"precipitation"`
	} `json:"current"`
}

// WeatherByCityDefinition describes the city-weather tool to the host.
func WeatherByCityDefinition() Definition {
	return Definition{
		Name:        WeatherByCityName,
		Description: "Get current weather for a given city using Open-Meteo API.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"city": map[string]any{
					"type":        "string",
					"description": "City name (e.g. \"Chennai\", \"New York\")",
				},
			},
			"required": []string{"city"},
		},
	}
}

// WeatherByCity geocodes the city, then fetches current conditions. The
// two fetches are sequential: the second depends on the first's
// coordinates.
func (s *Service) WeatherByCity(ctx context.Context, city string) string {
	geoParams := url.Values{}
	geoParams.Set("name", city)
	geoParams.Set("count", "1")

	var geo geocodeResponse
	err := s.client.GetJSON(ctx, s.cfg.GeocodingEndpoint(), geoParams, &geo)
	if err != nil || len(geo.Results) == 0 {
		return fmt.Sprintf("Unable to find location for '%s'.", city)
	}

	lat := geo.Results[0].Latitude
	lon := geo.Results[0].Longitude

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("current", strings.Join([]string{"temperature_2m", "wind_speed_10m", "precipitation"}, ","))

	var conditions currentConditionsResponse
	err = s.client.GetJSON(ctx, s.cfg.ForecastEndpoint(), params, &conditions)
	if err != nil || conditions.Current == nil {
		return fmt.Sprintf("Unable to fetch current weather for %s.", city)
	}

	current := conditions.Current
	// A fresh Caser per call: cases.Caser carries internal state and is
	// not safe for concurrent use.
	title := cases.Title(language.English)
	return strings.Join([]string{
		fmt.Sprintf("Current Weather in %s:", title.String(city)),
		fmt.Sprintf("Temperature: %s°C", num(current.Temperature)),
		fmt.Sprintf("Wind Speed: %s m/s", num(current.WindSpeed10M)),
		fmt.Sprintf("Precipitation: %s mm", num(current.Precipitation)),
	}, "\n")
}

func (s *Service) weatherByCityHandler(ctx context.Context, args map[string]any) (string, error) {
	city, err := stringArg(args, "city")
	if err != nil {
		return "", err
	}
	return s.WeatherByCity(ctx, city), nil
}
