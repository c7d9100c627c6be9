package search

import (
	"fmt"

	"github.com/docscout/docscout/internal/models"
)

// Suggestions builds guidance for an empty result set, tailored to which
// facets the query actually carried.
func Suggestions(facets *models.ParsedFacets, loc models.NormalizedLocation) []string {
	var out []string

	if facets.HasName() {
		out = append(out, fmt.Sprintf("Check the spelling of %q or try the last name only", facets.FullName()))
	}
	if facets.Specialty != "" {
		out = append(out, fmt.Sprintf("Try a broader specialty than %q, or omit it", facets.Specialty))
	} else if facets.HasName() {
		out = append(out, "Add a specialty to narrow the search, e.g. \"cardiologist\"")
	}
	if !loc.IsZero() {
		out = append(out, fmt.Sprintf("Widen the search beyond %s or drop the location", loc.String()))
	} else {
		out = append(out, "Add a city or state, e.g. \"in Seattle, WA\"")
	}

	return out
}
