package datasource

import (
	"context"

	"raincheck/models"
)

// Geocoder is an interface for services that resolve a free-text place
// query into candidate locations
type Geocoder interface {
	// Search looks up a place query and returns candidates in provider
	// order, best match first. An empty slice means no match.
	Search(ctx context.Context, query string, limit int) ([]models.GeoResult, error)

	// Name returns the provider's name
	Name() string
}

// ForecastSource is an interface for services that fetch a normalized
// forecast bundle for a set of coordinates
type ForecastSource interface {
	// FetchBundle fetches current, hourly and daily data for the given
	// coordinates. Units is "metric" or "imperial".
	FetchBundle(ctx context.Context, coord models.Coordinates, units string) (models.ForecastBundle, error)

	// Name returns the source's name
	Name() string
}
