package search

import (
	"sort"
	"strings"

	"github.com/docscout/docscout/internal/location"
	"github.com/docscout/docscout/internal/models"
)

// MinConfidence is the floor below which scored results are discarded.
const MinConfidence = 60

// Rank sorts results by total confidence descending and drops everything
// under the confidence floor. The sort is stable so candidates with equal
// confidence keep their registry order.
func Rank(results []*models.RankedResult, minConfidence int) []*models.RankedResult {
	kept := results[:0]
	for _, r := range results {
		if r.Confidence.Total >= float64(minConfidence) {
			kept = append(kept, r)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Confidence.Total > kept[j].Confidence.Total
	})
	return kept
}

// Paginate slices the ranked results for one page and describes the whole
// set. Page numbers are 1-based; a page past the end yields an empty slice
// with pagination metadata intact.
func Paginate(results []*models.RankedResult, page, pageSize int) ([]*models.RankedResult, models.Pagination) {
	total := len(results)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	p := models.Pagination{
		CurrentPage:    page,
		ResultsPerPage: pageSize,
		TotalPages:     totalPages,
		HasMore:        page < totalPages,
		TotalResults:   total,
	}
	return results[start:end], p
}

// FilterByLocation keeps only providers whose practice address sits in the
// searched city and state. Candidates from stages that relaxed location can
// otherwise leak into the result set.
func FilterByLocation(providers []models.Provider, loc models.NormalizedLocation, norm *location.Normalizer) []models.Provider {
	if loc.IsZero() {
		return providers
	}
	kept := providers[:0]
	for _, p := range providers {
		addr := p.PracticeAddress()
		if addr == nil {
			continue
		}
		if loc.State != "" && !strings.EqualFold(addr.State, loc.State) {
			continue
		}
		if loc.City != "" && !citiesOverlap(norm.CanonicalAlias(addr.City), norm.CanonicalAlias(loc.City)) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// citiesOverlap accepts equal cities and containment in either direction, so
// a neighborhood or compound name ("East Los Angeles") still matches its
// parent city. Both arguments are canonical aliases, already lowercased.
func citiesOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
