package search

import (
	"context"
	"sync"
	"time"

	"github.com/docscout/docscout/internal/enrich"
	"github.com/docscout/docscout/internal/history"
	"github.com/docscout/docscout/internal/location"
	"github.com/docscout/docscout/internal/models"
	"github.com/docscout/docscout/internal/parser"
	"github.com/docscout/docscout/internal/scoring"
	"github.com/docscout/docscout/internal/taxonomy"
	"go.uber.org/zap"
)

// Enrichment fan-out defaults.
const (
	DefaultEnrichTopK    = 50
	DefaultEnrichWorkers = 8
)

// Engine ties the query parser, registry cascade, scorer, and optional
// collaborators into the full search pipeline.
type Engine struct {
	parser  *parser.Parser
	cascade *Cascade
	scorer  *scoring.Scorer
	loc     *location.Normalizer
	logger  *zap.Logger

	enricher      enrich.Enricher
	sink          history.Sink
	minConfidence int
	enrichTopK    int
	enrichWorkers int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEnricher attaches a directory enrichment provider.
func WithEnricher(e enrich.Enricher) EngineOption {
	return func(eng *Engine) { eng.enricher = e }
}

// WithHistory attaches a search history sink.
func WithHistory(s history.Sink) EngineOption {
	return func(eng *Engine) { eng.sink = s }
}

// WithMinConfidence overrides the confidence floor.
func WithMinConfidence(min int) EngineOption {
	return func(eng *Engine) { eng.minConfidence = min }
}

// WithEnrichBounds overrides how many top results are enriched and with how
// many concurrent workers.
func WithEnrichBounds(topK, workers int) EngineOption {
	return func(eng *Engine) {
		if topK > 0 {
			eng.enrichTopK = topK
		}
		if workers > 0 {
			eng.enrichWorkers = workers
		}
	}
}

// WithEngineLogger sets the engine logger.
func WithEngineLogger(l *zap.Logger) EngineOption {
	return func(eng *Engine) { eng.logger = l }
}

// NewEngine creates a search engine from its required collaborators.
func NewEngine(p *parser.Parser, c *Cascade, s *scoring.Scorer, loc *location.Normalizer, opts ...EngineOption) *Engine {
	eng := &Engine{
		parser:        p,
		cascade:       c,
		scorer:        s,
		loc:           loc,
		logger:        zap.NewNop(),
		minConfidence: MinConfidence,
		enrichTopK:    DefaultEnrichTopK,
		enrichWorkers: DefaultEnrichWorkers,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// Search runs the full pipeline for one query. It returns a ValidationError
// when the request or its extracted facets cannot anchor a registry search;
// zero matches is not an error and yields a response with suggestions.
func (e *Engine) Search(ctx context.Context, q *models.SearchQuery) (*models.SearchResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, NewValidationError(err.Error())
	}

	facets := e.parser.Parse(ctx, q.Query)
	if err := validateFacets(facets); err != nil {
		return nil, err
	}
	loc := e.loc.Parse(facets.Location)

	start := time.Now()
	cr := e.cascade.Run(ctx, facets, loc)
	providers := FilterByLocation(cr.Providers, loc, e.loc)

	results := make([]*models.RankedResult, 0, len(providers))
	now := time.Now()
	for i := range providers {
		p := &providers[i]
		score := e.scorer.Score(p, facets, loc)
		addr := p.PracticeAddress()
		locStr := ""
		if addr != nil {
			locStr = (models.NormalizedLocation{City: addr.City, State: addr.State}).String()
		}
		results = append(results, &models.RankedResult{
			ID:              p.Number,
			Name:            p.Name(),
			Specialty:       p.PrimarySpecialty(),
			Location:        locStr,
			Phone:           p.Phone(),
			YearsExperience: p.YearsActive(now),
			Confidence:      score,
		})
	}

	ranked := Rank(results, e.minConfidence)
	e.enrichTop(ctx, ranked, loc)
	page, pagination := Paginate(ranked, q.Page, q.PageSize)

	e.logger.Debug("search completed",
		zap.String("query", q.Query),
		zap.String("stage", cr.Stage),
		zap.Int("lookups", cr.Lookups),
		zap.Int("ranked", len(ranked)),
		zap.Duration("took", time.Since(start)),
	)

	resp := &models.SearchResponse{
		Query:        q.Query,
		Specialty:    cr.Specialty,
		Location:     loc.String(),
		Results:      page,
		ResultsCount: len(page),
		SearchRadius: q.Radius,
		Pagination:   &pagination,
	}
	if len(ranked) == 0 {
		resp.Error = "no matching providers found"
		resp.Suggestions = Suggestions(facets, loc)
	}

	if q.Page == 1 && e.sink != nil {
		e.recordHistory(q.Query, cr.Specialty, loc.String(), len(ranked))
	}
	return resp, nil
}

// validateFacets enforces the search precondition: a name alone is enough,
// anything else needs at least two facets. The catch-all specialty does not
// count as a facet; it carries no selectivity for a registry scan.
func validateFacets(f *models.ParsedFacets) error {
	count := 0
	if f.HasName() {
		count++
	}
	if f.Specialty != "" && f.Specialty != taxonomy.Generic {
		count++
	}
	if f.Location != "" {
		count++
	}
	if count == 0 {
		return NewValidationError("could not extract a name, specialty, or location from the query")
	}
	if count == 1 && !f.HasName() {
		return NewValidationError("query needs a provider name, or at least two of name, specialty, and location")
	}
	return nil
}

// enrichTop fans out directory lookups for the top results with bounded
// concurrency. Lookup failures leave the registry-sourced fields in place.
func (e *Engine) enrichTop(ctx context.Context, ranked []*models.RankedResult, loc models.NormalizedLocation) {
	if e.enricher == nil || len(ranked) == 0 {
		return
	}
	top := ranked
	if len(top) > e.enrichTopK {
		top = top[:e.enrichTopK]
	}

	sem := make(chan struct{}, e.enrichWorkers)
	var wg sync.WaitGroup
	for _, r := range top {
		wg.Add(1)
		sem <- struct{}{}
		go func(r *models.RankedResult) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := e.enricher.Enrich(ctx, enrich.Request{
				Name:      r.Name,
				Specialty: r.Specialty,
				City:      loc.City,
				State:     loc.State,
			})
			if err != nil {
				e.logger.Debug("enrichment skipped", zap.String("name", r.Name), zap.Error(err))
				return
			}
			if res == nil {
				return
			}
			if res.Phone != "" {
				r.Phone = res.Phone
			}
			if res.Rating > 0 {
				r.Rating = res.Rating
			}
		}(r)
	}
	wg.Wait()
}

// recordHistory persists the search asynchronously. History is best effort
// and never delays or fails a response.
func (e *Engine) recordHistory(query, specialty, location string, resultCount int) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.sink.Record(ctx, history.Event{
			Query:       query,
			Specialty:   specialty,
			Location:    location,
			ResultCount: resultCount,
		}); err != nil {
			e.logger.Warn("history write failed", zap.Error(err))
		}
	}()
}
