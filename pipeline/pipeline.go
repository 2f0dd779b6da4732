// Package pipeline composes the acquisition-and-inference chain: resolve a
// place, fetch its forecast, assess rain for the local day.
package pipeline

import (
	"context"
	"time"

	"raincheck/datasource"
	"raincheck/geocode"
	"raincheck/models"
	"raincheck/rain"
)

// Report is everything one pipeline run produces for a query
type Report struct {
	Label       string                `json:"label"`
	Coordinates models.Coordinates    `json:"coords"`
	Assessment  models.RainAssessment `json:"assessment"`
	Bundle      models.ForecastBundle `json:"bundle"`
}

// Pipeline runs the resolve -> fetch -> assess chain. Each call is
// independent: no state is shared or retained between invocations, and
// cancelling the context aborts whichever stage is in flight.
type Pipeline struct {
	resolver     *geocode.Resolver
	forecasts    datasource.ForecastSource
	defaultUnits string
	now          func() time.Time
}

// New creates a pipeline over the given resolver and forecast source.
// defaultUnits is used when a call does not specify a unit system.
func New(resolver *geocode.Resolver, forecasts datasource.ForecastSource, defaultUnits string) *Pipeline {
	return &Pipeline{
		resolver:     resolver,
		forecasts:    forecasts,
		defaultUnits: defaultUnits,
		now:          time.Now,
	}
}

// RainToday resolves rawQuery, fetches the forecast for the resolved
// coordinates and assesses rain for the location's current calendar day.
// The two provider stages run sequentially since the second depends on the
// first's output.
func (p *Pipeline) RainToday(ctx context.Context, rawQuery, units string) (Report, error) {
	if units == "" {
		units = p.defaultUnits
	}

	place, err := p.resolver.Resolve(ctx, rawQuery)
	if err != nil {
		return Report{}, err
	}

	bundle, err := p.forecasts.FetchBundle(ctx, place.Coordinates(), units)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Label:       place.Label,
		Coordinates: place.Coordinates(),
		Assessment:  rain.Assess(bundle, p.now().Unix()),
		Bundle:      bundle,
	}, nil
}
