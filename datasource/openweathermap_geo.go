package datasource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"raincheck/models"
)

// OpenWeatherMapGeocoder implements the Geocoder interface using the
// OpenWeatherMap direct geocoding API
type OpenWeatherMapGeocoder struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Ensure OpenWeatherMapGeocoder implements Geocoder
var _ Geocoder = (*OpenWeatherMapGeocoder)(nil)

// NewOpenWeatherMapGeocoder creates a new OpenWeatherMap geocoding provider
func NewOpenWeatherMapGeocoder(apiKey string) *OpenWeatherMapGeocoder {
	return &OpenWeatherMapGeocoder{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/geo/1.0",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetBaseURL overrides the API base URL (useful for testing)
func (p *OpenWeatherMapGeocoder) SetBaseURL(baseURL string) {
	p.baseURL = baseURL
}

// Name returns the provider name
func (p *OpenWeatherMapGeocoder) Name() string {
	return "OpenWeatherMap Geocoding"
}

// Search looks up candidate places for a free-text query
func (p *OpenWeatherMapGeocoder) Search(ctx context.Context, query string, limit int) ([]models.GeoResult, error) {
	endpoint := fmt.Sprintf("%s/direct", p.baseURL)
	params := url.Values{}
	params.Add("q", query)
	params.Add("limit", fmt.Sprintf("%d", limit))
	params.Add("appid", p.apiKey)

	var response []struct {
		Name    string  `json:"name"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
		State   string  `json:"state"`
		Country string  `json:"country"`
	}
	if err := getJSON(ctx, p.httpClient, p.Name(), endpoint+"?"+params.Encode(), &response); err != nil {
		return nil, err
	}

	results := make([]models.GeoResult, 0, len(response))
	for _, hit := range response {
		results = append(results, models.GeoResult{
			Latitude:  hit.Lat,
			Longitude: hit.Lon,
			Label:     joinLabel(hit.Name, hit.State, hit.Country),
		})
	}
	return results, nil
}

// joinLabel builds a display label from place name parts, omitting empties
func joinLabel(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, ", ")
}
