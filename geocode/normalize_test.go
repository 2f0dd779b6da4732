package geocode

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "plain query unchanged",
			raw:      "Koforidua",
			expected: "Koforidua",
		},
		{
			name:     "leading and trailing whitespace trimmed",
			raw:      "  Accra \t",
			expected: "Accra",
		},
		{
			name:     "inner whitespace runs collapsed",
			raw:      "New   York\t City",
			expected: "New York City",
		},
		{
			name:     "fullwidth characters fold to ASCII",
			raw:      "Ｋｏｆｏｒｉｄｕａ",
			expected: "Koforidua",
		},
		{
			name:     "non-breaking spaces collapse",
			raw:      "Cape  Coast",
			expected: "Cape Coast",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize returned error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNormalizeEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n", " "} {
		if _, err := Normalize(raw); !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("Normalize(%q): expected ErrEmptyQuery, got %v", raw, err)
		}
	}
}

func TestWithRegionHint(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		region   string
		expected string
	}{
		{
			name:     "hint appended to bare query",
			query:    "Koforidua",
			region:   "GH",
			expected: "Koforidua, GH",
		},
		{
			name:     "query with comma unchanged",
			query:    "Koforidua, GH",
			region:   "US",
			expected: "Koforidua, GH",
		},
		{
			name:     "any comma counts as a qualifier",
			query:    "Portland,",
			region:   "US",
			expected: "Portland,",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithRegionHint(tt.query, tt.region); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
