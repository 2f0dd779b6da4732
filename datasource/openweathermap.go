package datasource

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"raincheck/models"
)

// OpenWeatherMapSource implements the ForecastSource interface. It tries
// the One Call v3.0 endpoint first and falls back to the legacy v2.5 pair
// (current conditions + 5-day/3-hour forecast) when the primary fails for
// any reason, normalizing both payload shapes into a ForecastBundle.
type OpenWeatherMapSource struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Ensure OpenWeatherMapSource implements ForecastSource
var _ ForecastSource = (*OpenWeatherMapSource)(nil)

// NewOpenWeatherMapSource creates a new OpenWeatherMap forecast source
func NewOpenWeatherMapSource(apiKey string) *OpenWeatherMapSource {
	return &OpenWeatherMapSource{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetBaseURL overrides the API base URL (useful for testing)
func (p *OpenWeatherMapSource) SetBaseURL(baseURL string) {
	p.baseURL = baseURL
}

// Name returns the source name
func (p *OpenWeatherMapSource) Name() string {
	return "OpenWeatherMap"
}

// weatherDescriptor is the weather[] element both API versions share
type weatherDescriptor struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// oneCallResponse is the richer One Call payload shape
type oneCallResponse struct {
	TimezoneOffset int `json:"timezone_offset"`
	Current        struct {
		Dt         int64               `json:"dt"`
		Temp       float64             `json:"temp"`
		FeelsLike  float64             `json:"feels_like"`
		Humidity   int                 `json:"humidity"`
		Pressure   int                 `json:"pressure"`
		WindSpeed  float64             `json:"wind_speed"`
		Clouds     int                 `json:"clouds"`
		Visibility *int                `json:"visibility"`
		Weather    []weatherDescriptor `json:"weather"`
	} `json:"current"`
	Hourly []struct {
		Dt      int64               `json:"dt"`
		Pop     float64             `json:"pop"`
		Weather []weatherDescriptor `json:"weather"`
		Rain    struct {
			OneHour float64 `json:"1h"`
		} `json:"rain"`
		Snow struct {
			OneHour float64 `json:"1h"`
		} `json:"snow"`
	} `json:"hourly"`
	Daily []struct {
		Dt   int64   `json:"dt"`
		Pop  float64 `json:"pop"`
		Rain float64 `json:"rain"`
		Temp struct {
			Max float64 `json:"max"`
			Min float64 `json:"min"`
		} `json:"temp"`
		Weather []weatherDescriptor `json:"weather"`
	} `json:"daily"`
}

// legacyCurrentResponse is the v2.5 current-conditions payload shape
type legacyCurrentResponse struct {
	Dt       int64 `json:"dt"`
	Timezone int   `json:"timezone"`
	Main     struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Visibility *int                `json:"visibility"`
	Weather    []weatherDescriptor `json:"weather"`
}

// legacyForecastResponse is the v2.5 5-day/3-hour forecast payload shape
type legacyForecastResponse struct {
	City struct {
		Timezone int `json:"timezone"`
	} `json:"city"`
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			TempMin float64 `json:"temp_min"`
			TempMax float64 `json:"temp_max"`
		} `json:"main"`
		Pop     float64             `json:"pop"`
		Weather []weatherDescriptor `json:"weather"`
		Rain    struct {
			ThreeHours float64 `json:"3h"`
		} `json:"rain"`
		Snow struct {
			ThreeHours float64 `json:"3h"`
		} `json:"snow"`
	} `json:"list"`
}

// FetchBundle fetches a normalized forecast bundle for the coordinates
func (p *OpenWeatherMapSource) FetchBundle(ctx context.Context, coord models.Coordinates, units string) (models.ForecastBundle, error) {
	if err := validateCoordinates(coord); err != nil {
		return models.ForecastBundle{}, err
	}

	bundle, err := p.fetchOneCall(ctx, coord, units)
	if err == nil {
		return bundle, nil
	}
	// Cancellation is the caller's decision, not a provider failure
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return models.ForecastBundle{}, err
	}

	// Any other primary failure falls back to the legacy pair; a legacy
	// failure propagates verbatim.
	return p.fetchLegacyPair(ctx, coord, units)
}

// validateCoordinates rejects missing or non-finite coordinates before any
// network call is made
func validateCoordinates(coord models.Coordinates) error {
	lat, lon := coord.Latitude, coord.Longitude
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return ErrInvalidCoordinates
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return ErrInvalidCoordinates
	}
	if lat == 0 && lon == 0 {
		// The zero value almost always means "no coordinates supplied"
		return ErrInvalidCoordinates
	}
	return nil
}

// fetchOneCall queries the One Call v3.0 endpoint
func (p *OpenWeatherMapSource) fetchOneCall(ctx context.Context, coord models.Coordinates, units string) (models.ForecastBundle, error) {
	endpoint := fmt.Sprintf("%s/data/3.0/onecall", p.baseURL)
	params := p.coordParams(coord, units)
	params.Add("exclude", "minutely,alerts")

	var response oneCallResponse
	if err := getJSON(ctx, p.httpClient, "One Call v3.0", endpoint+"?"+params.Encode(), &response); err != nil {
		return models.ForecastBundle{}, err
	}
	return normalizeOneCall(response), nil
}

// fetchLegacyPair queries the v2.5 current-conditions and 5-day/3-hour
// forecast endpoints concurrently; neither depends on the other
func (p *OpenWeatherMapSource) fetchLegacyPair(ctx context.Context, coord models.Coordinates, units string) (models.ForecastBundle, error) {
	currentURL := fmt.Sprintf("%s/data/2.5/weather?%s", p.baseURL, p.coordParams(coord, units).Encode())
	forecastURL := fmt.Sprintf("%s/data/2.5/forecast?%s", p.baseURL, p.coordParams(coord, units).Encode())

	var (
		wg          sync.WaitGroup
		current     legacyCurrentResponse
		forecast    legacyForecastResponse
		currentErr  error
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		currentErr = getJSON(ctx, p.httpClient, "Current weather v2.5", currentURL, &current)
	}()
	go func() {
		defer wg.Done()
		forecastErr = getJSON(ctx, p.httpClient, "Forecast v2.5", forecastURL, &forecast)
	}()
	wg.Wait()

	if currentErr != nil {
		return models.ForecastBundle{}, currentErr
	}
	if forecastErr != nil {
		return models.ForecastBundle{}, forecastErr
	}

	return normalizeLegacyPair(current, forecast), nil
}

// coordParams builds the query parameters shared by all weather endpoints
func (p *OpenWeatherMapSource) coordParams(coord models.Coordinates, units string) url.Values {
	params := url.Values{}
	params.Add("lat", fmt.Sprintf("%g", coord.Latitude))
	params.Add("lon", fmt.Sprintf("%g", coord.Longitude))
	params.Add("units", units)
	params.Add("appid", p.apiKey)
	return params
}

// normalizeOneCall maps the richer payload field-for-field into a bundle
func normalizeOneCall(response oneCallResponse) models.ForecastBundle {
	bundle := models.ForecastBundle{
		Current:               currentFromDescriptor(response.Current.Dt, response.Current.Temp, response.Current.FeelsLike, response.Current.Humidity, response.Current.Pressure, response.Current.WindSpeed, response.Current.Clouds, response.Current.Visibility, response.Current.Weather),
		TimezoneOffsetSeconds: response.TimezoneOffset,
	}

	for _, hour := range response.Hourly {
		code := 0
		if len(hour.Weather) > 0 {
			code = hour.Weather[0].ID
		}
		bundle.Hourly = append(bundle.Hourly, models.HourlySample{
			TimestampUTC:             hour.Dt,
			PrecipitationProbability: clampProbability(hour.Pop),
			WeatherCode:              code,
			RainMm:                   hour.Rain.OneHour,
			SnowMm:                   hour.Snow.OneHour,
		})
	}

	for _, day := range response.Daily {
		code := 0
		if len(day.Weather) > 0 {
			code = day.Weather[0].ID
		}
		bundle.Daily = append(bundle.Daily, models.DailySample{
			TimestampUTC:             day.Dt,
			PrecipitationProbability: clampProbability(day.Pop),
			RainMmTotal:              day.Rain,
			TemperatureMax:           day.Temp.Max,
			TemperatureMin:           day.Temp.Min,
			WeatherCode:              code,
		})
	}

	return bundle
}

// normalizeLegacyPair shapes the v2.5 pair like the richer bundle: the
// 3-hour steps feed Hourly directly and are grouped into local calendar
// days (using the location's UTC offset) to synthesize Daily
func normalizeLegacyPair(current legacyCurrentResponse, forecast legacyForecastResponse) models.ForecastBundle {
	offset := current.Timezone
	if offset == 0 {
		offset = forecast.City.Timezone
	}

	bundle := models.ForecastBundle{
		Current:               currentFromDescriptor(current.Dt, current.Main.Temp, current.Main.FeelsLike, current.Main.Humidity, current.Main.Pressure, current.Wind.Speed, current.Clouds.All, current.Visibility, current.Weather),
		TimezoneOffsetSeconds: offset,
	}

	type dayGroup struct {
		dt   int64
		max  float64
		min  float64
		pop  float64
		code int
	}
	byDay := make(map[int64]*dayGroup)

	for _, item := range forecast.List {
		code := 0
		if len(item.Weather) > 0 {
			code = item.Weather[0].ID
		}

		bundle.Hourly = append(bundle.Hourly, models.HourlySample{
			TimestampUTC:             item.Dt,
			PrecipitationProbability: clampProbability(item.Pop),
			WeatherCode:              code,
			RainMm:                   item.Rain.ThreeHours,
			SnowMm:                   item.Snow.ThreeHours,
		})

		key := floorDiv(item.Dt+int64(offset), 86400)
		group, ok := byDay[key]
		if !ok {
			group = &dayGroup{dt: item.Dt, max: math.Inf(-1), min: math.Inf(1)}
			byDay[key] = group
		}
		if item.Dt > group.dt {
			group.dt = item.Dt
		}
		group.max = math.Max(group.max, item.Main.TempMax)
		group.min = math.Min(group.min, item.Main.TempMin)
		group.pop = math.Max(group.pop, clampProbability(item.Pop))
		// The list is chronological, so the last interval's code wins
		group.code = code
	}

	for _, group := range byDay {
		bundle.Daily = append(bundle.Daily, models.DailySample{
			TimestampUTC:             group.dt,
			PrecipitationProbability: group.pop,
			RainMmTotal:              0, // not available from the legacy endpoints
			TemperatureMax:           group.max,
			TemperatureMin:           group.min,
			WeatherCode:              group.code,
		})
	}
	sort.Slice(bundle.Daily, func(i, j int) bool {
		return bundle.Daily[i].TimestampUTC < bundle.Daily[j].TimestampUTC
	})

	return bundle
}

// currentFromDescriptor assembles a CurrentSample from fields common to
// both payload shapes
func currentFromDescriptor(dt int64, temp, feelsLike float64, humidity, pressure int, windSpeed float64, clouds int, visibility *int, weather []weatherDescriptor) models.CurrentSample {
	sample := models.CurrentSample{
		TimestampUTC: dt,
		Temperature:  temp,
		FeelsLike:    feelsLike,
		HumidityPct:  humidity,
		PressureHpa:  pressure,
		WindSpeed:    windSpeed,
		CloudsPct:    clouds,
		VisibilityM:  visibility,
	}
	if len(weather) > 0 {
		sample.WeatherCode = weather[0].ID
		sample.Description = weather[0].Description
	}
	return sample
}

// clampProbability keeps provider probabilities inside [0,1]
func clampProbability(pop float64) float64 {
	if pop < 0 {
		return 0
	}
	if pop > 1 {
		return 1
	}
	return pop
}

// floorDiv divides rounding toward negative infinity, so day grouping
// stays correct for negative local timestamps
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
