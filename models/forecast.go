package models

// HourlySample represents a single forecast hour (or fixed interval)
type HourlySample struct {
	TimestampUTC             int64   `json:"timestampUtc"`
	PrecipitationProbability float64 `json:"precipitationProbability"` // 0..1
	WeatherCode              int     `json:"weatherCode"`
	RainMm                   float64 `json:"rainMm"`
	SnowMm                   float64 `json:"snowMm"`
}

// DailySample represents one forecast day
type DailySample struct {
	TimestampUTC             int64   `json:"timestampUtc"`
	PrecipitationProbability float64 `json:"precipitationProbability"` // 0..1
	RainMmTotal              float64 `json:"rainMmTotal"`
	TemperatureMax           float64 `json:"temperatureMax"`
	TemperatureMin           float64 `json:"temperatureMin"`
	WeatherCode              int     `json:"weatherCode"`
}

// ForecastBundle is one normalized forecast snapshot, regardless of which
// provider version supplied it. Hourly and Daily are ordered by time and
// either may be empty.
type ForecastBundle struct {
	Current               CurrentSample  `json:"current"`
	Hourly                []HourlySample `json:"hourly"`
	Daily                 []DailySample  `json:"daily"`
	TimezoneOffsetSeconds int            `json:"timezoneOffsetSeconds"`
}

// RainAssessment is the outcome of the rain-today analysis for one location
type RainAssessment struct {
	WillRain      bool    `json:"willRain"`
	ChancePercent int     `json:"chancePercent"` // 0..100
	When          string  `json:"when"`          // first rainy local time, "HH:MM", or ""
	AmountMm      float64 `json:"amountMm"`
}
