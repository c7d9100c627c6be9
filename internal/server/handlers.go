package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/docscout/docscout/internal/models"
	"github.com/docscout/docscout/internal/search"
	"github.com/docscout/docscout/pkg/utils"
	"go.uber.org/zap"
)

const defaultHistoryLimit = 20

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request",
		zap.String("query", utils.Truncate(query.Query, 200)),
		zap.Int("page", query.Page))

	response, err := s.service.Search(r.Context(), &query)
	if err != nil {
		var verr *search.ValidationError
		if errors.As(err, &verr) {
			s.respondError(w, http.StatusBadRequest, verr.Reason)
			return
		}
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleSpecialties(w http.ResponseWriter, r *http.Request) {
	snap := s.tables.Snapshot()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"specialties": snap.Taxonomy.Canonicals(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.sink == nil {
		s.respondError(w, http.StatusNotImplemented, "history not enabled")
		return
	}
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	events, err := s.sink.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("history read failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"searches": events})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.tables.Snapshot()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"specialties":     len(snap.Taxonomy.Canonicals()),
		"history_enabled": s.sink != nil,
		"uptime_seconds":  int(time.Since(s.started).Seconds()),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
