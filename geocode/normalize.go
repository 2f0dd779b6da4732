package geocode

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyQuery is returned when a query contains no usable text
var ErrEmptyQuery = errors.New("please enter a place name")

// Normalize canonicalizes a free-text place query: Unicode NFKC
// normalization, whitespace runs collapsed to single spaces, leading and
// trailing whitespace trimmed. Returns ErrEmptyQuery when nothing is left.
func Normalize(raw string) (string, error) {
	normalized := strings.Join(strings.Fields(norm.NFKC.String(raw)), " ")
	if normalized == "" {
		return "", ErrEmptyQuery
	}
	return normalized, nil
}

// WithRegionHint appends ", <region>" to a query that carries no explicit
// qualifier. A comma in the query signals the caller already supplied a
// region or country, so the query is returned unchanged.
func WithRegionHint(query, region string) string {
	if strings.Contains(query, ",") {
		return query
	}
	return query + ", " + region
}
