package models

// Coordinates is a geographic point in decimal degrees
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeoResult represents a resolved place: coordinates plus a display label
type GeoResult struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Label     string  `json:"label"`
}

// Coordinates returns the result's position as a Coordinates value
func (g GeoResult) Coordinates() Coordinates {
	return Coordinates{Latitude: g.Latitude, Longitude: g.Longitude}
}

// CurrentSample represents observed conditions at a single moment
type CurrentSample struct {
	TimestampUTC int64   `json:"timestampUtc"`
	Temperature  float64 `json:"temperature"`
	FeelsLike    float64 `json:"feelsLike"`
	HumidityPct  int     `json:"humidityPct"`
	PressureHpa  int     `json:"pressureHpa"`
	WindSpeed    float64 `json:"windSpeed"`
	CloudsPct    int     `json:"cloudsPct"`
	VisibilityM  *int    `json:"visibilityMeters"` // nil when the provider omits it
	WeatherCode  int     `json:"weatherCode"`
	Description  string  `json:"description"`
}
