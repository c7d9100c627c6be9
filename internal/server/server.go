// Package server provides the HTTP API for DocScout.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/docscout/docscout/internal/config"
	"github.com/docscout/docscout/internal/history"
	"github.com/docscout/docscout/internal/models"
	"github.com/docscout/docscout/internal/tables"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SearchService is the slice of the search core the HTTP layer needs.
type SearchService interface {
	Search(ctx context.Context, q *models.SearchQuery) (*models.SearchResponse, error)
}

// Server is the HTTP server for the DocScout API.
type Server struct {
	service SearchService
	tables  *tables.Store
	sink    history.Sink
	config  *config.ServerConfig
	logger  *zap.Logger
	server  *http.Server
	started time.Time
}

// NewServer creates a server with the given dependencies. sink may be nil
// when history is disabled.
func NewServer(
	service SearchService,
	store *tables.Store,
	sink history.Sink,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		service: service,
		tables:  store,
		sink:    sink,
		config:  cfg,
		logger:  logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/specialties", s.handleSpecialties)
	r.Get("/api/v1/history", s.handleHistory)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.started = time.Now()
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
