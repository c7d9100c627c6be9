// Package models defines core data structures for providers, queries, and search results.
package models

import (
	"strings"
	"time"
)

// Address is one practice or mailing address from the provider registry.
type Address struct {
	Purpose    string `json:"purpose"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	Fax        string `json:"fax"`
}

// TaxonomyEntry is one specialty classification attached to a provider record.
type TaxonomyEntry struct {
	Description string `json:"description"`
	Primary     bool   `json:"primary"`
	License     string `json:"license"`
	State       string `json:"state"`
}

// Provider is a raw candidate record as returned by the provider registry.
type Provider struct {
	// Number is the registry's authoritative identity key (e.g. NPI).
	Number          string          `json:"number"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Credential      string          `json:"credential"`
	Status          string          `json:"status"`
	EnumerationDate string          `json:"enumeration_date"`
	Addresses       []Address       `json:"addresses"`
	Taxonomies      []TaxonomyEntry `json:"taxonomies"`
	// SourceCount is the number of independent data sources corroborating
	// this record (1 = the registry itself).
	SourceCount int `json:"source_count"`
}

// Name returns the provider's full display name without credential.
func (p *Provider) Name() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// PrimarySpecialty returns the description of the primary taxonomy entry,
// falling back to the first entry when none is flagged primary.
func (p *Provider) PrimarySpecialty() string {
	for _, t := range p.Taxonomies {
		if t.Primary {
			return t.Description
		}
	}
	if len(p.Taxonomies) > 0 {
		return p.Taxonomies[0].Description
	}
	return ""
}

// SpecialtyDescriptions returns all taxonomy descriptions, primary first.
func (p *Provider) SpecialtyDescriptions() []string {
	descs := make([]string, 0, len(p.Taxonomies))
	primary := p.PrimarySpecialty()
	if primary != "" {
		descs = append(descs, primary)
	}
	for _, t := range p.Taxonomies {
		if t.Description != "" && t.Description != primary {
			descs = append(descs, t.Description)
		}
	}
	return descs
}

// PracticeAddress returns the provider's practice-location address, falling
// back to the first address when none is marked as a location.
func (p *Provider) PracticeAddress() *Address {
	for i := range p.Addresses {
		if strings.EqualFold(p.Addresses[i].Purpose, "LOCATION") {
			return &p.Addresses[i]
		}
	}
	if len(p.Addresses) > 0 {
		return &p.Addresses[0]
	}
	return nil
}

// Phone returns the first phone number found on any address.
func (p *Provider) Phone() string {
	for _, a := range p.Addresses {
		if a.Phone != "" {
			return a.Phone
		}
	}
	return ""
}

// YearsActive estimates years in practice from the enumeration date
// (YYYY-MM-DD). Returns 0 when the date is absent or malformed.
func (p *Provider) YearsActive(now time.Time) int {
	if len(p.EnumerationDate) < 4 {
		return 0
	}
	t, err := time.Parse("2006-01-02", p.EnumerationDate)
	if err != nil {
		return 0
	}
	years := int(now.Sub(t).Hours() / 24 / 365)
	if years < 0 {
		return 0
	}
	return years
}
