package scoring

import (
	"testing"

	"github.com/docscout/docscout/internal/location"
	"github.com/docscout/docscout/internal/models"
	"github.com/docscout/docscout/internal/taxonomy"
)

func newScorer() *Scorer {
	return New(taxonomy.Default(), location.Default())
}

func provider() *models.Provider {
	return &models.Provider{
		Number:    "1234567890",
		FirstName: "John",
		LastName:  "Smith",
		Addresses: []models.Address{
			{Purpose: "LOCATION", Street: "100 Main St", City: "Tacoma", State: "WA", Phone: "253-555-0100"},
		},
		Taxonomies:  []models.TaxonomyEntry{{Description: "Ophthalmology", Primary: true}},
		SourceCount: 1,
	}
}

func TestScore_PerfectMatch(t *testing.T) {
	s := newScorer()
	facets := &models.ParsedFacets{FirstName: "John", LastName: "Smith", Specialty: "Ophthalmology"}
	loc := models.NormalizedLocation{City: "Tacoma", State: "WA"}

	got := s.Score(provider(), facets, loc)
	if got.NameScore != 40 {
		t.Errorf("NameScore = %v, want 40", got.NameScore)
	}
	if got.SpecialtyScore != 30 {
		t.Errorf("SpecialtyScore = %v, want 30", got.SpecialtyScore)
	}
	if got.LocationScore != 24 { // (50 city + 30 state) * 0.3
		t.Errorf("LocationScore = %v, want 24", got.LocationScore)
	}
	if got.SourceBonus != 5 {
		t.Errorf("SourceBonus = %v, want 5", got.SourceBonus)
	}
	if got.Total != 99 {
		t.Errorf("Total = %v, want 99", got.Total)
	}
}

func TestScore_TotalBounded(t *testing.T) {
	s := newScorer()
	facets := &models.ParsedFacets{FirstName: "John", LastName: "Smith", Specialty: "Ophthalmology"}
	loc := models.NormalizedLocation{City: "Tacoma", State: "WA"}

	p := provider()
	p.SourceCount = 4 // +10 plus +5 would push past 100
	got := s.Score(p, facets, loc)
	if got.Total > 100 || got.Total < 0 {
		t.Errorf("Total out of bounds: %v", got.Total)
	}
	if got.Total != 100 {
		t.Errorf("Total = %v, want capped 100", got.Total)
	}
}

func TestScore_NeutralFacets(t *testing.T) {
	s := newScorer()
	got := s.Score(provider(), &models.ParsedFacets{}, models.NormalizedLocation{})
	if got.NameScore != 20 {
		t.Errorf("neutral NameScore = %v, want 20", got.NameScore)
	}
	if got.SpecialtyScore != 15 {
		t.Errorf("neutral SpecialtyScore = %v, want 15", got.SpecialtyScore)
	}
	if got.LocationScore != 15 {
		t.Errorf("neutral LocationScore = %v, want 15", got.LocationScore)
	}
}

func TestSpecialtyMatch(t *testing.T) {
	tax := taxonomy.Default()
	tests := []struct {
		name       string
		query      string
		candidates []string
		want       float64
	}{
		{"exact", "Ophthalmology", []string{"Ophthalmology"}, 100},
		{"substring", "Ophthalmology", []string{"Pediatric Ophthalmology"}, 90},
		{"expansion member", "Retina Surgery", []string{"Glaucoma"}, 85},
		{"no match", "Cardiology", []string{"Dermatology"}, 0},
		{"empty candidates", "Cardiology", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpecialtyMatch(tax, tt.query, tt.candidates); got != tt.want {
				t.Errorf("SpecialtyMatch(%q, %v) = %v, want %v", tt.query, tt.candidates, got, tt.want)
			}
		})
	}
}

func TestScore_LocationTiers(t *testing.T) {
	s := newScorer()
	facets := &models.ParsedFacets{FirstName: "John", LastName: "Smith"}
	tests := []struct {
		name string
		loc  models.NormalizedLocation
		city string
		want float64
	}{
		{"alias equality", models.NormalizedLocation{City: "LA", State: "CA"}, "Los Angeles", 24},
		{"fuzzy city", models.NormalizedLocation{City: "Tacomma", State: "WA"}, "Tacoma", 19.5}, // (35+30)*0.3
		{"state only", models.NormalizedLocation{State: "WA"}, "Spokane", 9},                    // 30*0.3
		{"wrong geography", models.NormalizedLocation{City: "Miami", State: "FL"}, "Tacoma", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := provider()
			p.Addresses[0].City = tt.city
			if tt.name == "alias equality" {
				p.Addresses[0].State = "CA"
			}
			got := s.Score(p, facets, tt.loc)
			if got.LocationScore != tt.want {
				t.Errorf("LocationScore = %v, want %v", got.LocationScore, tt.want)
			}
		})
	}
}
