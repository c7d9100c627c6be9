// Package registry provides the client for the external provider registry
// and the activity filter applied to its records.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/docscout/docscout/internal/models"
	"go.uber.org/zap"
)

// DefaultLimit is the per-lookup result cap sent to the registry.
const DefaultLimit = 50

// LookupParams are the exact-match, ANDed parameters the registry supports.
// Empty fields are omitted from the request.
type LookupParams struct {
	FirstName string
	LastName  string
	Specialty string
	City      string
	State     string
	Limit     int
}

// Key returns a canonical form of the parameters, used to avoid issuing the
// same registry lookup twice within one cascade.
func (p LookupParams) Key() string {
	return p.FirstName + "|" + p.LastName + "|" + p.Specialty + "|" + p.City + "|" + p.State
}

// Client issues lookups against the external provider registry.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a registry client for the API at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// registryRecord mirrors the registry's wire format.
type registryRecord struct {
	Number string `json:"number"`
	Basic  struct {
		FirstName       string `json:"first_name"`
		LastName        string `json:"last_name"`
		Credential      string `json:"credential"`
		Status          string `json:"status"`
		EnumerationDate string `json:"enumeration_date"`
	} `json:"basic"`
	Addresses []struct {
		AddressPurpose  string `json:"address_purpose"`
		Address1        string `json:"address_1"`
		City            string `json:"city"`
		State           string `json:"state"`
		PostalCode      string `json:"postal_code"`
		TelephoneNumber string `json:"telephone_number"`
		FaxNumber       string `json:"fax_number"`
	} `json:"addresses"`
	Taxonomies []struct {
		Desc    string `json:"desc"`
		Primary bool   `json:"primary"`
		License string `json:"license"`
		State   string `json:"state"`
	} `json:"taxonomies"`
	Identifiers []struct {
		Issuer     string `json:"issuer"`
		Identifier string `json:"identifier"`
	} `json:"identifiers"`
}

type registryResponse struct {
	ResultCount int              `json:"result_count"`
	Results     []registryRecord `json:"results"`
}

// Lookup runs one parameterized registry search. All parameters are ANDed by
// the registry. Returns an error on transport failure or a non-2xx status;
// callers treat that as an empty result and continue.
func (c *Client) Lookup(ctx context.Context, p LookupParams) ([]models.Provider, error) {
	values := url.Values{}
	if p.FirstName != "" {
		values.Set("first_name", p.FirstName)
	}
	if p.LastName != "" {
		values.Set("last_name", p.LastName)
	}
	if p.Specialty != "" {
		values.Set("taxonomy_description", p.Specialty)
	}
	if p.City != "" {
		values.Set("city", p.City)
	}
	if p.State != "" {
		values.Set("state", p.State)
	}
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	values.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry lookup failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("registry lookup returned status %d", resp.StatusCode)
	}

	var body registryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("registry response malformed: %w", err)
	}

	providers := make([]models.Provider, 0, len(body.Results))
	for _, rec := range body.Results {
		providers = append(providers, toProvider(rec))
	}
	c.logger.Debug("registry lookup",
		zap.String("params", p.Key()),
		zap.Int("results", len(providers)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return providers, nil
}

func toProvider(rec registryRecord) models.Provider {
	p := models.Provider{
		Number:          rec.Number,
		FirstName:       rec.Basic.FirstName,
		LastName:        rec.Basic.LastName,
		Credential:      rec.Basic.Credential,
		Status:          rec.Basic.Status,
		EnumerationDate: rec.Basic.EnumerationDate,
		SourceCount:     1 + len(rec.Identifiers),
	}
	for _, a := range rec.Addresses {
		p.Addresses = append(p.Addresses, models.Address{
			Purpose:    a.AddressPurpose,
			Street:     a.Address1,
			City:       a.City,
			State:      a.State,
			PostalCode: a.PostalCode,
			Phone:      a.TelephoneNumber,
			Fax:        a.FaxNumber,
		})
	}
	for _, t := range rec.Taxonomies {
		p.Taxonomies = append(p.Taxonomies, models.TaxonomyEntry{
			Description: t.Desc,
			Primary:     t.Primary,
			License:     t.License,
			State:       t.State,
		})
	}
	return p
}
