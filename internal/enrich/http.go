package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// HTTPSuggester calls an NLU suggestion service over HTTP.
type HTTPSuggester struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPSuggester creates a suggester for the service at baseURL.
func NewHTTPSuggester(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPSuggester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPSuggester{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Suggest posts the raw query and returns the service's ranked guesses.
func (s *HTTPSuggester) Suggest(ctx context.Context, query string) ([]FacetSuggestion, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/suggest", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suggest request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggest request returned status %d", resp.StatusCode)
	}

	var out struct {
		Suggestions []FacetSuggestion `json:"suggestions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("suggest response malformed: %w", err)
	}
	return out.Suggestions, nil
}

// HTTPEnricher calls a business-directory service over HTTP.
type HTTPEnricher struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPEnricher creates an enricher for the service at baseURL.
func NewHTTPEnricher(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPEnricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPEnricher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Enrich fetches directory details for one candidate.
func (e *HTTPEnricher) Enrich(ctx context.Context, r Request) (*Result, error) {
	params := url.Values{}
	params.Set("name", r.Name)
	if r.Specialty != "" {
		params.Set("specialty", r.Specialty)
	}
	if r.City != "" {
		params.Set("city", r.City)
	}
	if r.State != "" {
		params.Set("state", r.State)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/v1/businesses?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("enrichment request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("enrichment request returned status %d", resp.StatusCode)
	}

	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("enrichment response malformed: %w", err)
	}
	return &out, nil
}
