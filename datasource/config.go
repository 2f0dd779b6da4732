package datasource

import (
	"encoding/json"
	"os"
)

// Config represents the application configuration
type Config struct {
	OpenWeatherMap struct {
		APIKey string `json:"apiKey"`
	} `json:"openWeatherMap"`

	Geocoding struct {
		// Provider selects the geocoding backend: "openweathermap"
		// (keyed) or "openmeteo" (keyless).
		Provider string `json:"provider"`
	} `json:"geocoding"`

	// DefaultRegion is appended to queries that carry no explicit
	// region qualifier, e.g. "GH".
	DefaultRegion string `json:"defaultRegion"`

	// Units is the unit system passed to the weather provider.
	Units string `json:"units"`
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.Geocoding.Provider = "openweathermap"
	config.DefaultRegion = "GH"
	config.Units = "metric"
	return config
}
