// Package search orchestrates the cascading registry search, confidence
// scoring, ranking, and pagination for provider queries.
package search

import (
	"context"

	"github.com/docscout/docscout/internal/fuzzy"
	"github.com/docscout/docscout/internal/models"
	"github.com/docscout/docscout/internal/registry"
	"github.com/docscout/docscout/internal/scoring"
	"github.com/docscout/docscout/internal/taxonomy"
	"go.uber.org/zap"
)

// Post-filter acceptance thresholds for relaxed cascade stages.
const (
	nameAcceptScore      = 70
	specialtyAcceptScore = 50
)

// RegistryClient is the slice of the registry client the cascade needs.
type RegistryClient interface {
	Lookup(ctx context.Context, p registry.LookupParams) ([]models.Provider, error)
}

// CascadeResult is the outcome of a cascade run: the active candidates of
// the first non-empty stage, the stage that produced them, and the specialty
// actually used (which may differ from the query's when a stage relaxed it).
type CascadeResult struct {
	Providers []models.Provider
	Stage     string
	Specialty string
	Lookups   int
}

// Cascade runs the ordered relaxation stages against the registry until one
// produces at least one active candidate. Stages are strictly sequential;
// the first success short-circuits the rest.
type Cascade struct {
	client   RegistryClient
	tax      *taxonomy.Taxonomy
	logger   *zap.Logger
	limit    int
	altTerms []string
}

// CascadeOption configures a Cascade.
type CascadeOption func(*Cascade)

// WithAltTerms sets legacy alternative specialty terms tried in the final
// broad stage.
func WithAltTerms(terms []string) CascadeOption {
	return func(c *Cascade) { c.altTerms = terms }
}

// WithLimit overrides the per-lookup result cap.
func WithLimit(limit int) CascadeOption {
	return func(c *Cascade) { c.limit = limit }
}

// NewCascade creates a cascade over the given registry client and taxonomy.
func NewCascade(client RegistryClient, tax *taxonomy.Taxonomy, logger *zap.Logger, opts ...CascadeOption) *Cascade {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Cascade{client: client, tax: tax, logger: logger, limit: registry.DefaultLimit}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// run tracks lookup dedup and counting for one cascade execution.
type cascadeRun struct {
	c       *Cascade
	ctx     context.Context
	tried   map[string]bool
	lookups int
}

// lookup issues one registry call unless identical parameters were already
// tried in this run. Upstream failures are logged and degrade to an empty
// result so the cascade can continue.
func (r *cascadeRun) lookup(params registry.LookupParams) []models.Provider {
	key := params.Key()
	if r.tried[key] {
		return nil
	}
	r.tried[key] = true
	r.lookups++
	params.Limit = r.c.limit

	providers, err := r.c.client.Lookup(r.ctx, params)
	if err != nil {
		r.c.logger.Warn("registry lookup failed, continuing cascade",
			zap.String("params", key), zap.Error(err))
		return nil
	}
	return registry.FilterActive(providers)
}

// Run executes the cascade for the given facets and parsed location.
func (c *Cascade) Run(ctx context.Context, facets *models.ParsedFacets, loc models.NormalizedLocation) *CascadeResult {
	r := &cascadeRun{c: c, ctx: ctx, tried: make(map[string]bool)}
	base := registry.LookupParams{
		FirstName: facets.FirstName,
		LastName:  facets.LastName,
		Specialty: facets.Specialty,
		City:      loc.City,
		State:     loc.State,
	}

	// Stage 1: exact, all known facets.
	if providers := r.lookup(base); len(providers) > 0 {
		return r.result("exact", facets.Specialty, providers)
	}

	// Stage 2: specialty relaxation, name and location fixed.
	if facets.Specialty != "" {
		for _, alt := range c.tax.RelatedTo(facets.Specialty) {
			params := base
			params.Specialty = alt
			if providers := r.lookup(params); len(providers) > 0 {
				return r.result("related-specialty", alt, providers)
			}
		}
	}

	// Stage 3: first name dropped, post-filtered by fuzzy full-name match.
	if facets.LastName != "" && facets.FirstName != "" {
		params := base
		params.FirstName = ""
		providers := filterByName(r.lookup(params), facets.FullName())
		if len(providers) > 0 {
			return r.result("last-name", facets.Specialty, providers)
		}
	}

	// Stage 4: location dropped, name and specialty fixed.
	if !loc.IsZero() {
		params := base
		params.City = ""
		params.State = ""
		if providers := r.lookup(params); len(providers) > 0 {
			return r.result("no-location", facets.Specialty, providers)
		}
	}

	// Stage 5: last name only with location kept and specialty dropped,
	// post-filtered by name and specialty comparators.
	if facets.LastName != "" && facets.Specialty != "" {
		params := base
		params.FirstName = ""
		params.Specialty = ""
		providers := filterByName(r.lookup(params), facets.FullName())
		providers = c.filterBySpecialty(providers, facets.Specialty)
		if len(providers) > 0 {
			return r.result("name-no-specialty", facets.Specialty, providers)
		}
	}

	// Stage 6: specialty and location only, for queries without a name.
	if !facets.HasName() && facets.Specialty != "" {
		params := registry.LookupParams{Specialty: facets.Specialty, City: loc.City, State: loc.State}
		if providers := r.lookup(params); len(providers) > 0 {
			return r.result("specialty-only", facets.Specialty, providers)
		}
	}

	// Stage 7: broader and alternate specialty terms with name and location,
	// then the no-name and no-specialty last resorts.
	if facets.Specialty != "" {
		terms := []string{}
		if broader, ok := c.tax.BroaderOf(facets.Specialty); ok {
			terms = append(terms, broader)
		}
		terms = append(terms, c.tax.RelatedTo(facets.Specialty)...)
		terms = append(terms, c.altTerms...)
		for _, term := range terms {
			params := base
			params.Specialty = term
			if providers := r.lookup(params); len(providers) > 0 {
				return r.result("broad-term", term, providers)
			}
		}
		params := registry.LookupParams{Specialty: facets.Specialty, City: loc.City, State: loc.State}
		if providers := r.lookup(params); len(providers) > 0 {
			return r.result("broad-no-name", facets.Specialty, providers)
		}
	}
	if facets.HasName() {
		params := base
		params.Specialty = ""
		if providers := r.lookup(params); len(providers) > 0 {
			return r.result("name-location", facets.Specialty, providers)
		}
	}

	return &CascadeResult{Stage: "exhausted", Specialty: facets.Specialty, Lookups: r.lookups}
}

func (r *cascadeRun) result(stage, specialty string, providers []models.Provider) *CascadeResult {
	r.c.logger.Debug("cascade stage succeeded",
		zap.String("stage", stage),
		zap.String("specialty", specialty),
		zap.Int("candidates", len(providers)),
		zap.Int("lookups", r.lookups),
	)
	return &CascadeResult{Providers: providers, Stage: stage, Specialty: specialty, Lookups: r.lookups}
}

// filterByName keeps candidates whose name fuzzy-matches the searched name.
func filterByName(providers []models.Provider, fullName string) []models.Provider {
	if fullName == "" {
		return providers
	}
	kept := providers[:0]
	for _, p := range providers {
		if m := fuzzy.MatchName(fullName, p.Name()); m.Matched && m.Score >= nameAcceptScore {
			kept = append(kept, p)
		}
	}
	return kept
}

// filterBySpecialty keeps candidates whose specialties still resemble the
// dropped query specialty.
func (c *Cascade) filterBySpecialty(providers []models.Provider, specialty string) []models.Provider {
	kept := providers[:0]
	for _, p := range providers {
		if scoring.SpecialtyMatch(c.tax, specialty, p.SpecialtyDescriptions()) >= specialtyAcceptScore {
			kept = append(kept, p)
		}
	}
	return kept
}
