// Package enrich defines the optional external collaborators consumed by the
// search core: a natural-language facet suggester and a business-directory
// enrichment provider. Both are injectable so the core can be tested with
// deterministic fakes and swapped onto different vendors.
package enrich

import "context"

// FacetSuggestion is one guess from the NLU suggestion service.
type FacetSuggestion struct {
	FirstName  string  `json:"first_name,omitempty"`
	LastName   string  `json:"last_name,omitempty"`
	Specialty  string  `json:"specialty,omitempty"`
	Location   string  `json:"location,omitempty"`
	Confidence float64 `json:"confidence"` // 0-100
}

// MinSuggestionConfidence is the minimum confidence for a suggestion to be
// used at all.
const MinSuggestionConfidence = 50

// FacetSuggester extracts facet guesses from a raw query. Implementations
// must return guesses in descending confidence order.
type FacetSuggester interface {
	Suggest(ctx context.Context, query string) ([]FacetSuggestion, error)
}

// Request identifies a provider for directory enrichment.
type Request struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
}

// Result carries the directory fields that can refine a registry record.
type Result struct {
	Phone   string  `json:"phone,omitempty"`
	Rating  float64 `json:"rating,omitempty"`
	Address string  `json:"address,omitempty"`
}

// Enricher looks up display details for an already-selected candidate. A
// failed or empty lookup must degrade to the registry-sourced fields only.
type Enricher interface {
	Enrich(ctx context.Context, req Request) (*Result, error)
}
