package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"raincheck/datasource"
	"raincheck/geocode"
	"raincheck/models"
	"raincheck/pipeline"
)

type stubGeocoder struct {
	results []models.GeoResult
	err     error
}

func (s *stubGeocoder) Search(ctx context.Context, query string, limit int) ([]models.GeoResult, error) {
	return s.results, s.err
}

func (s *stubGeocoder) Name() string { return "Stub" }

type stubForecastSource struct {
	bundle models.ForecastBundle
	err    error
}

func (s *stubForecastSource) FetchBundle(ctx context.Context, coord models.Coordinates, units string) (models.ForecastBundle, error) {
	return s.bundle, s.err
}

func (s *stubForecastSource) Name() string { return "Stub" }

func newTestServer(geocoder datasource.Geocoder, forecasts datasource.ForecastSource) *Server {
	resolver := geocode.NewResolver(geocoder, "GH")
	return NewServer(pipeline.New(resolver, forecasts, "metric"), 0, 5*time.Second)
}

func TestHandleRainSuccess(t *testing.T) {
	geocoder := &stubGeocoder{
		results: []models.GeoResult{{Latitude: 6.09, Longitude: -0.26, Label: "Koforidua, GH"}},
	}
	forecasts := &stubForecastSource{
		bundle: models.ForecastBundle{
			Daily: []models.DailySample{{PrecipitationProbability: 0.4, RainMmTotal: 2.0}},
		},
	}
	server := newTestServer(geocoder, forecasts)

	rec := httptest.NewRecorder()
	server.handleRain(rec, httptest.NewRequest(http.MethodGet, "/api/rain?q=Koforidua", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report pipeline.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if report.Label != "Koforidua, GH" {
		t.Errorf("Unexpected label %q", report.Label)
	}
	if !report.Assessment.WillRain || report.Assessment.ChancePercent != 40 {
		t.Errorf("Unexpected assessment: %+v", report.Assessment)
	}
}

func TestHandleRainEmptyQuery(t *testing.T) {
	server := newTestServer(&stubGeocoder{}, &stubForecastSource{})

	rec := httptest.NewRecorder()
	server.handleRain(rec, httptest.NewRequest(http.MethodGet, "/api/rain?q=%20%20", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty query, got %d", rec.Code)
	}
}

func TestHandleRainPlaceNotFound(t *testing.T) {
	server := newTestServer(&stubGeocoder{}, &stubForecastSource{})

	rec := httptest.NewRecorder()
	server.handleRain(rec, httptest.NewRequest(http.MethodGet, "/api/rain?q=Atlantis", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown place, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse error body: %v", err)
	}
	if body["error"] == "" {
		t.Error("Expected a human-readable error message")
	}
}

func TestHandleRainProviderFailure(t *testing.T) {
	geocoder := &stubGeocoder{
		results: []models.GeoResult{{Latitude: 6.09, Longitude: -0.26, Label: "Koforidua, GH"}},
	}
	forecasts := &stubForecastSource{
		err: &datasource.APIError{Provider: "Stub", StatusCode: 500, Body: "boom"},
	}
	server := newTestServer(geocoder, forecasts)

	rec := httptest.NewRecorder()
	server.handleRain(rec, httptest.NewRequest(http.MethodGet, "/api/rain?q=Koforidua", nil))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("Expected 502 for provider failure, got %d", rec.Code)
	}
}

func TestHandleRainAuthFailure(t *testing.T) {
	geocoder := &stubGeocoder{err: &datasource.AuthError{Provider: "Stub", StatusCode: 401}}
	server := newTestServer(geocoder, &stubForecastSource{})

	rec := httptest.NewRecorder()
	server.handleRain(rec, httptest.NewRequest(http.MethodGet, "/api/rain?q=Koforidua", nil))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("Expected 502 for rejected credential, got %d", rec.Code)
	}
}

func TestHandleRainMethodNotAllowed(t *testing.T) {
	server := newTestServer(&stubGeocoder{}, &stubForecastSource{})

	rec := httptest.NewRecorder()
	server.handleRain(rec, httptest.NewRequest(http.MethodPost, "/api/rain?q=Koforidua", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

func TestHandleHealthCheck(t *testing.T) {
	server := newTestServer(&stubGeocoder{}, &stubForecastSource{})

	rec := httptest.NewRecorder()
	server.handleHealthCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}
