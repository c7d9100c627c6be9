package search

import (
	"context"
	"sync"

	"github.com/docscout/docscout/internal/enrich"
	"github.com/docscout/docscout/internal/history"
	"github.com/docscout/docscout/internal/models"
	"github.com/docscout/docscout/internal/parser"
	"github.com/docscout/docscout/internal/scoring"
	"github.com/docscout/docscout/internal/tables"
	"go.uber.org/zap"
)

// ServiceConfig carries the optional collaborators and tuning knobs for a
// Service. Zero values fall back to the engine defaults.
type ServiceConfig struct {
	Suggester         enrich.FacetSuggester
	Enricher          enrich.Enricher
	History           history.Sink
	MinConfidence     int
	EnrichTopK        int
	EnrichConcurrency int
	AltSpecialtyTerms []string
	LookupLimit       int
}

// Service builds search engines from the live table snapshot. The engine is
// rebuilt lazily whenever the tables are reloaded, so in-flight requests keep
// the generation they started with.
type Service struct {
	store  *tables.Store
	client RegistryClient
	cfg    ServiceConfig
	logger *zap.Logger

	mu     sync.Mutex
	snap   *tables.Snapshot
	engine *Engine
}

// NewService creates a Service over the table store and registry client.
func NewService(store *tables.Store, client RegistryClient, cfg ServiceConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, client: client, cfg: cfg, logger: logger}
}

// Search runs one query against the engine for the current table snapshot.
func (s *Service) Search(ctx context.Context, q *models.SearchQuery) (*models.SearchResponse, error) {
	return s.engineFor(s.store.Snapshot()).Search(ctx, q)
}

func (s *Service) engineFor(snap *tables.Snapshot) *Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine != nil && s.snap == snap {
		return s.engine
	}

	parserOpts := []parser.Option{parser.WithLogger(s.logger)}
	if s.cfg.Suggester != nil {
		parserOpts = append(parserOpts, parser.WithSuggester(s.cfg.Suggester))
	}

	cascadeOpts := []CascadeOption{WithAltTerms(s.cfg.AltSpecialtyTerms)}
	if s.cfg.LookupLimit > 0 {
		cascadeOpts = append(cascadeOpts, WithLimit(s.cfg.LookupLimit))
	}

	engineOpts := []EngineOption{
		WithEngineLogger(s.logger),
		WithEnrichBounds(s.cfg.EnrichTopK, s.cfg.EnrichConcurrency),
	}
	if s.cfg.Enricher != nil {
		engineOpts = append(engineOpts, WithEnricher(s.cfg.Enricher))
	}
	if s.cfg.History != nil {
		engineOpts = append(engineOpts, WithHistory(s.cfg.History))
	}
	if s.cfg.MinConfidence > 0 {
		engineOpts = append(engineOpts, WithMinConfidence(s.cfg.MinConfidence))
	}

	s.snap = snap
	s.engine = NewEngine(
		parser.New(snap.Taxonomy, snap.Locations, parserOpts...),
		NewCascade(s.client, snap.Taxonomy, s.logger, cascadeOpts...),
		scoring.New(snap.Taxonomy, snap.Locations),
		snap.Locations,
		engineOpts...,
	)
	return s.engine
}
