package models

import (
	"fmt"
	"strings"
)

// Pagination bounds and defaults for search requests.
const (
	DefaultPage     = 1
	DefaultPageSize = 15
	MinPageSize     = 5
	MaxPageSize     = 50
	DefaultRadius   = 5000
	MaxRadius       = 50000
)

// SearchQuery represents a provider search request.
type SearchQuery struct {
	Query    string  `json:"query"`
	Radius   float64 `json:"radius,omitempty"`
	Page     int     `json:"page,omitempty"`
	PageSize int     `json:"pageSize,omitempty"`
}

// Validate ensures the query has valid fields and sets defaults.
// Returns an error if the query text is empty or the radius is out of range;
// otherwise normalizes radius, page, and page size.
func (q *SearchQuery) Validate() error {
	q.Query = strings.TrimSpace(q.Query)
	if q.Query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	if q.Radius == 0 {
		q.Radius = DefaultRadius
	}
	if q.Radius < 0 || q.Radius > MaxRadius {
		return fmt.Errorf("radius must be in (0, %d]", MaxRadius)
	}
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize < MinPageSize {
		q.PageSize = MinPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return nil
}

// ParsedFacets holds the name, specialty, and location facets extracted from
// a raw query. Empty strings mean the facet was not found.
type ParsedFacets struct {
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	Specialty     string `json:"specialty,omitempty"`
	Location      string `json:"location,omitempty"`
	OriginalQuery string `json:"original_query"`
}

// HasName reports whether any name facet was extracted.
func (f *ParsedFacets) HasName() bool {
	return f.FirstName != "" || f.LastName != ""
}

// FullName returns the extracted name as a single string.
func (f *ParsedFacets) FullName() string {
	return strings.TrimSpace(f.FirstName + " " + f.LastName)
}

// NormalizedLocation is a parsed location. State, when present, is always a
// 2-letter code.
type NormalizedLocation struct {
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
}

// IsZero reports whether neither city nor state is set.
func (l NormalizedLocation) IsZero() bool {
	return l.City == "" && l.State == ""
}

// String renders the location as "City, ST", "City", or "ST".
func (l NormalizedLocation) String() string {
	switch {
	case l.City != "" && l.State != "":
		return l.City + ", " + l.State
	case l.City != "":
		return l.City
	default:
		return l.State
	}
}
