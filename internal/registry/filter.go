package registry

import (
	"strings"

	"github.com/docscout/docscout/internal/models"
)

// FilterActive removes records that look inactive: anything whose status,
// name, or specialty text mentions retirement, and anything without both a
// practice address with a street line and at least one phone or fax number.
func FilterActive(providers []models.Provider) []models.Provider {
	active := make([]models.Provider, 0, len(providers))
	for _, p := range providers {
		if isRetired(&p) {
			continue
		}
		if !hasPracticeStreet(&p) || !hasContactNumber(&p) {
			continue
		}
		active = append(active, p)
	}
	return active
}

func isRetired(p *models.Provider) bool {
	if containsRetired(p.Status) || containsRetired(p.Name()) || containsRetired(p.Credential) {
		return true
	}
	for _, t := range p.Taxonomies {
		if containsRetired(t.Description) {
			return true
		}
	}
	return false
}

func containsRetired(s string) bool {
	return strings.Contains(strings.ToLower(s), "retired")
}

func hasPracticeStreet(p *models.Provider) bool {
	sawLocation := false
	for _, a := range p.Addresses {
		if strings.EqualFold(a.Purpose, "LOCATION") {
			sawLocation = true
			if strings.TrimSpace(a.Street) != "" {
				return true
			}
		}
	}
	if sawLocation {
		return false
	}
	// Registries that do not tag purposes: accept any address with a street.
	for _, a := range p.Addresses {
		if strings.TrimSpace(a.Street) != "" {
			return true
		}
	}
	return false
}

func hasContactNumber(p *models.Provider) bool {
	for _, a := range p.Addresses {
		if strings.TrimSpace(a.Phone) != "" || strings.TrimSpace(a.Fax) != "" {
			return true
		}
	}
	return false
}
