// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultRequestTimeout bounds every upstream HTTP request.
	defaultRequestTimeout = 30 * time.Second
	// defaultForecastDays is how many days of precipitation probability to request.
	defaultForecastDays = 7
	// defaultUserAgent identifies this client to the upstream providers.
	defaultUserAgent = "weather-mcp/1.0"
	// defaultHTTPAddr is the bind address for the HTTP transport.
	defaultHTTPAddr = ":8900"
)

// Upstream provider endpoints. The paths are part of the behavioral
// contract with the providers; the bases are overridable so tests can
// point handlers at local fakes.
const (
	DefaultGeocodingURL  = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL   = "https://api.open-meteo.com/v1/forecast"
	DefaultAirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"
	DefaultAlertsBaseURL = "https://api.weather.gov"
)

// Config represents the top-level application configuration.
type Config struct {
	TimeoutSeconds        int    `json:"timeout,omitempty" mapstructure:"timeout" validate:"gte=0"`
	ForecastDays          int    `json:"forecastDays,omitempty" mapstructure:"forecastDays" validate:"gte=0,lte=16"`
	AlertDescriptionLimit int    `json:"alertDescriptionLimit,omitempty" mapstructure:"alertDescriptionLimit" validate:"gte=0"`
	UserAgent             string `json:"userAgent,omitempty" mapstructure:"userAgent"`
	LogFile               string `json:"logFile,omitempty" mapstructure:"logFile"`
	HTTPAddr              string `json:"httpAddr,omitempty" mapstructure:"httpAddr"`
	Debug                 bool   `json:"debug" mapstructure:"debug"`

	GeocodingURL  string `json:"geocodingUrl,omitempty" mapstructure:"geocodingUrl" validate:"omitempty,url"`
	ForecastURL   string `json:"forecastUrl,omitempty" mapstructure:"forecastUrl" validate:"omitempty,url"`
	AirQualityURL string `json:"airQualityUrl,omitempty" mapstructure:"airQualityUrl" validate:"omitempty,url"`
	AlertsBaseURL string `json:"alertsBaseUrl,omitempty" mapstructure:"alertsBaseUrl" validate:"omitempty,url"`

	ConfigPath string `json:"-" mapstructure:"-"`
}

// RequestTimeout returns the timeout for upstream HTTP requests, falling
// back to the default when unset.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ForecastDaysOrDefault returns the configured precipitation forecast
// window. The legacy deployments disagreed between 3 and 7 days; 7 is the
// default here and the value is configuration, not code.
func (c Config) ForecastDaysOrDefault() int {
	if c.ForecastDays <= 0 {
		return defaultForecastDays
	}
	return c.ForecastDays
}

// UserAgentOrDefault returns the User-Agent header value for upstream requests.
func (c Config) UserAgentOrDefault() string {
	if ua := strings.TrimSpace(c.UserAgent); ua != "" {
		return ua
	}
	return defaultUserAgent
}

// HTTPAddrOrDefault returns the bind address for the HTTP transport.
func (c Config) HTTPAddrOrDefault() string {
	if addr := strings.TrimSpace(c.HTTPAddr); addr != "" {
		return addr
	}
	return defaultHTTPAddr
}

// LogFilePath returns the path to the application log file. Empty means
// stderr only.
func (c Config) LogFilePath() string {
	return strings.TrimSpace(c.LogFile)
}

// GeocodingEndpoint returns the geocoding search URL.
func (c Config) GeocodingEndpoint() string {
	if u := strings.TrimSpace(c.GeocodingURL); u != "" {
		return u
	}
	return DefaultGeocodingURL
}

// ForecastEndpoint returns the forecast URL.
func (c Config) ForecastEndpoint() string {
	if u := strings.TrimSpace(c.ForecastURL); u != "" {
		return u
	}
	return DefaultForecastURL
}

// AirQualityEndpoint returns the air quality URL.
func (c Config) AirQualityEndpoint() string {
	if u := strings.TrimSpace(c.AirQualityURL); u != "" {
		return u
	}
	return DefaultAirQualityURL
}

// AlertsEndpoint returns the active-alerts URL for a normalized state code.
func (c Config) AlertsEndpoint(state string) string {
	base := strings.TrimSpace(c.AlertsBaseURL)
	if base == "" {
		base = DefaultAlertsBaseURL
	}
	return strings.TrimRight(base, "/") + "/alerts/active/area/" + state
}

// Validate checks field constraints on the loaded configuration.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Load reads the application configuration from the specified path. A
// missing file is not an error: the server runs fine on defaults, so an
// absent config yields a zero Config with only ConfigPath unset.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if path == DefaultConfigPath {
				return Config{}, nil
			}
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
