package datasource

import (
	"context"
	"strings"
	"testing"
	"time"

	"raincheck/models"
)

type countingGeocoder struct {
	calls int
}

func (c *countingGeocoder) Search(ctx context.Context, query string, limit int) ([]models.GeoResult, error) {
	c.calls++
	return nil, nil
}

func (c *countingGeocoder) Name() string { return "Counting" }

func TestRateLimitedGeocoderName(t *testing.T) {
	limited := NewRateLimitedGeocoder(&countingGeocoder{}, 1.0, 1)
	if !strings.Contains(limited.Name(), "Rate Limited") {
		t.Errorf("Expected decorated name, got %q", limited.Name())
	}
}

func TestRateLimitedGeocoderForwards(t *testing.T) {
	inner := &countingGeocoder{}
	limited := NewRateLimitedGeocoder(inner, 100.0, 5)

	for i := 0; i < 3; i++ {
		if _, err := limited.Search(context.Background(), "Accra", 5); err != nil {
			t.Fatalf("Search returned error: %v", err)
		}
	}
	if inner.calls != 3 {
		t.Errorf("Expected 3 forwarded calls, got %d", inner.calls)
	}
}

func TestRateLimitedGeocoderCancellation(t *testing.T) {
	inner := &countingGeocoder{}
	// Burst of 1 and a very slow refill: the second call must wait
	limited := NewRateLimitedGeocoder(inner, 0.001, 1)

	if _, err := limited.Search(context.Background(), "Accra", 5); err != nil {
		t.Fatalf("First search returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := limited.Search(ctx, "Accra", 5); err == nil {
		t.Fatal("Expected error when the limiter wait outlives the context")
	}
	if inner.calls != 1 {
		t.Errorf("Expected the second call never to reach the provider, got %d", inner.calls)
	}
}
