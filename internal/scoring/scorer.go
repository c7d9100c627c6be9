// Package scoring combines per-facet match scores into a single 0-100
// confidence score per candidate provider.
package scoring

import (
	"strings"

	"github.com/docscout/docscout/internal/fuzzy"
	"github.com/docscout/docscout/internal/location"
	"github.com/docscout/docscout/internal/models"
	"github.com/docscout/docscout/internal/taxonomy"
)

// Facet weights and neutral scores. A facet absent from the query contributes
// its neutral value so candidates are still comparable.
const (
	nameWeight      = 0.4
	specialtyWeight = 0.3
	locationWeight  = 0.3

	neutralNameScore      = 20
	neutralSpecialtyScore = 15
	neutralLocationScore  = 15

	multiSourceBonus   = 10
	registryIDBonus    = 5
	citySimilarityFloor = 0.8
)

// Scorer scores candidates against parsed query facets.
type Scorer struct {
	tax *taxonomy.Taxonomy
	loc *location.Normalizer
}

// New creates a Scorer over the given lookup tables.
func New(tax *taxonomy.Taxonomy, loc *location.Normalizer) *Scorer {
	return &Scorer{tax: tax, loc: loc}
}

// Score computes the confidence breakdown for one candidate. The total is
// the capped sum of the weighted facet scores plus the source bonus.
func (s *Scorer) Score(p *models.Provider, facets *models.ParsedFacets, queryLoc models.NormalizedLocation) models.ConfidenceScore {
	score := models.ConfidenceScore{
		NameScore:      s.nameScore(p, facets),
		SpecialtyScore: s.specialtyScore(p, facets),
		LocationScore:  s.locationScore(p, queryLoc),
		SourceBonus:    sourceBonus(p),
	}
	total := score.NameScore + score.SpecialtyScore + score.LocationScore + score.SourceBonus
	if total > 100 {
		total = 100
	}
	score.Total = total
	return score
}

func (s *Scorer) nameScore(p *models.Provider, facets *models.ParsedFacets) float64 {
	if !facets.HasName() {
		return neutralNameScore
	}
	return fuzzy.MatchName(facets.FullName(), p.Name()).Score * nameWeight
}

func (s *Scorer) specialtyScore(p *models.Provider, facets *models.ParsedFacets) float64 {
	if facets.Specialty == "" {
		return neutralSpecialtyScore
	}
	return SpecialtyMatch(s.tax, facets.Specialty, p.SpecialtyDescriptions()) * specialtyWeight
}

// SpecialtyMatch returns the best 0-100 raw specialty score of a query
// specialty against a candidate's specialty descriptions: exact equality 100,
// substring either direction 90, expansion-set membership 85, otherwise the
// token overlap ratio.
func SpecialtyMatch(tax *taxonomy.Taxonomy, query string, candidates []string) float64 {
	queryLower := strings.ToLower(query)
	expansion := tax.Expansion(query)

	best := 0.0
	for _, cand := range candidates {
		candLower := strings.ToLower(cand)
		var score float64
		switch {
		case candLower == queryLower:
			score = 100
		case strings.Contains(candLower, queryLower) || strings.Contains(queryLower, candLower):
			score = 90
		case inExpansion(expansion, candLower):
			score = 85
		default:
			score = tokenOverlapRatio(queryLower, candLower) * 100
		}
		if score > best {
			best = score
		}
	}
	return best
}

func inExpansion(expansion []string, candidate string) bool {
	for _, e := range expansion {
		eLower := strings.ToLower(e)
		if candidate == eLower || strings.Contains(candidate, eLower) || strings.Contains(eLower, candidate) {
			return true
		}
	}
	return false
}

func tokenOverlapRatio(a, b string) float64 {
	aTokens := strings.Fields(a)
	if len(aTokens) == 0 {
		return 0
	}
	bSet := make(map[string]bool)
	for _, t := range strings.Fields(b) {
		bSet[t] = true
	}
	overlap := 0
	for _, t := range aTokens {
		if bSet[t] {
			overlap++
		}
	}
	return float64(overlap) / float64(len(aTokens))
}

// locationScore awards up to 50 raw points for the city and up to 30 for the
// state, weighted and capped at the full location weight share.
func (s *Scorer) locationScore(p *models.Provider, queryLoc models.NormalizedLocation) float64 {
	if queryLoc.IsZero() {
		return neutralLocationScore
	}
	addr := p.PracticeAddress()
	if addr == nil {
		return 0
	}

	raw := 0.0
	if queryLoc.City != "" && addr.City != "" {
		queryCity := s.loc.CanonicalAlias(queryLoc.City)
		candCity := s.loc.CanonicalAlias(addr.City)
		switch {
		case queryCity == candCity:
			raw += 50
		case strings.Contains(candCity, queryCity) || strings.Contains(queryCity, candCity):
			raw += 40
		case fuzzy.Similarity(queryCity, candCity) > citySimilarityFloor:
			raw += 35
		}
	}
	if queryLoc.State != "" && strings.EqualFold(queryLoc.State, addr.State) {
		raw += 30
	}

	score := raw * locationWeight
	if maxScore := 100 * locationWeight; score > maxScore {
		score = maxScore
	}
	return score
}

func sourceBonus(p *models.Provider) float64 {
	bonus := 0.0
	if p.SourceCount > 1 {
		bonus += multiSourceBonus
	}
	if p.Number != "" {
		bonus += registryIDBonus
	}
	return bonus
}
