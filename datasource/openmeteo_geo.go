package datasource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"raincheck/models"
)

// OpenMeteoGeocoder implements the Geocoder interface using the keyless
// open-meteo geocoding API. It needs no credential, which makes it a
// useful alternative when no OpenWeatherMap key is configured.
type OpenMeteoGeocoder struct {
	baseURL    string
	httpClient *http.Client
}

// Ensure OpenMeteoGeocoder implements Geocoder
var _ Geocoder = (*OpenMeteoGeocoder)(nil)

// NewOpenMeteoGeocoder creates a new open-meteo geocoding provider
func NewOpenMeteoGeocoder() *OpenMeteoGeocoder {
	return &OpenMeteoGeocoder{
		baseURL: "https://geocoding-api.open-meteo.com/v1",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetBaseURL overrides the API base URL (useful for testing)
func (p *OpenMeteoGeocoder) SetBaseURL(baseURL string) {
	p.baseURL = baseURL
}

// Name returns the provider name
func (p *OpenMeteoGeocoder) Name() string {
	return "Open-Meteo Geocoding"
}

// Search looks up candidate places for a free-text query
func (p *OpenMeteoGeocoder) Search(ctx context.Context, query string, limit int) ([]models.GeoResult, error) {
	endpoint := fmt.Sprintf("%s/search", p.baseURL)
	params := url.Values{}
	params.Add("name", query)
	params.Add("count", fmt.Sprintf("%d", limit))
	params.Add("language", "en")
	params.Add("format", "json")

	var response struct {
		Results []struct {
			Latitude    float64 `json:"latitude"`
			Longitude   float64 `json:"longitude"`
			Name        string  `json:"name"`
			Admin1      string  `json:"admin1"`
			CountryCode string  `json:"country_code"`
		} `json:"results"`
	}
	if err := getJSON(ctx, p.httpClient, p.Name(), endpoint+"?"+params.Encode(), &response); err != nil {
		return nil, err
	}

	results := make([]models.GeoResult, 0, len(response.Results))
	for _, hit := range response.Results {
		results = append(results, models.GeoResult{
			Latitude:  hit.Latitude,
			Longitude: hit.Longitude,
			Label:     joinLabel(hit.Name, hit.Admin1, hit.CountryCode),
		})
	}
	return results, nil
}
