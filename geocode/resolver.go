package geocode

import (
	"context"
	"errors"
	"log"

	"raincheck/datasource"
	"raincheck/models"
)

// ErrPlaceNotFound is returned when no geocoding candidate matched after
// all query formulations were tried
var ErrPlaceNotFound = errors.New(`place not found: try adding the country (e.g. "Koforidua, GH")`)

// candidateLimit is how many candidates we ask the provider for; only the
// first (highest-confidence) entry of the first non-empty set is used
const candidateLimit = 5

// Resolver turns a free-text place query into coordinates and a display
// label, trying multiple query formulations against a geocoding provider
type Resolver struct {
	geocoder      datasource.Geocoder
	defaultRegion string
}

// NewResolver creates a resolver backed by the given geocoding provider.
// defaultRegion is appended to queries without an explicit qualifier.
func NewResolver(geocoder datasource.Geocoder, defaultRegion string) *Resolver {
	return &Resolver{
		geocoder:      geocoder,
		defaultRegion: defaultRegion,
	}
}

// Resolve looks up a raw place query. Candidates are tried in order: the
// normalized query first, then the region-hinted variant. A candidate's
// provider or network error advances the loop to the next candidate; an
// authentication error or cancellation propagates immediately. Exhausting
// every candidate without a match yields ErrPlaceNotFound.
func (r *Resolver) Resolve(ctx context.Context, rawQuery string) (models.GeoResult, error) {
	normalized, err := Normalize(rawQuery)
	if err != nil {
		return models.GeoResult{}, err
	}

	candidates := []string{normalized}
	if hinted := WithRegionHint(normalized, r.defaultRegion); hinted != normalized {
		candidates = append(candidates, hinted)
	}

	for _, candidate := range candidates {
		results, err := r.geocoder.Search(ctx, candidate, candidateLimit)
		if err != nil {
			var authErr *datasource.AuthError
			if errors.As(err, &authErr) {
				// Retrying with another formulation cannot help
				return models.GeoResult{}, err
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return models.GeoResult{}, err
			}
			log.Printf("Geocoding %q via %s failed, trying next candidate: %v", candidate, r.geocoder.Name(), err)
			continue
		}
		if len(results) > 0 {
			// Provider order is authoritative; the first entry wins
			return results[0], nil
		}
	}

	return models.GeoResult{}, ErrPlaceNotFound
}
