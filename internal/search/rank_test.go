package search

import (
	"testing"

	"github.com/docscout/docscout/internal/location"
	"github.com/docscout/docscout/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(name string, total float64) *models.RankedResult {
	return &models.RankedResult{Name: name, Confidence: models.ConfidenceScore{Total: total}}
}

func TestRank_SortsAndFilters(t *testing.T) {
	results := []*models.RankedResult{
		scored("low", 45),
		scored("mid", 72),
		scored("high", 98),
		scored("floor", 60),
	}

	ranked := Rank(results, MinConfidence)
	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0].Name)
	assert.Equal(t, "mid", ranked[1].Name)
	assert.Equal(t, "floor", ranked[2].Name)
}

func TestRank_StableForEqualScores(t *testing.T) {
	results := []*models.RankedResult{
		scored("first", 80),
		scored("second", 80),
		scored("third", 80),
	}
	ranked := Rank(results, MinConfidence)
	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].Name)
	assert.Equal(t, "second", ranked[1].Name)
	assert.Equal(t, "third", ranked[2].Name)
}

func TestPaginate(t *testing.T) {
	var results []*models.RankedResult
	for i := 0; i < 23; i++ {
		results = append(results, scored("r", 90))
	}

	tests := []struct {
		name     string
		page     int
		pageSize int
		wantLen  int
		wantMore bool
		wantTot  int
	}{
		{"first page", 1, 10, 10, true, 3},
		{"middle page", 2, 10, 10, true, 3},
		{"last partial page", 3, 10, 3, false, 3},
		{"past the end", 5, 10, 0, false, 3},
		{"exact fit", 1, 23, 23, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, p := Paginate(results, tt.page, tt.pageSize)
			assert.Len(t, page, tt.wantLen)
			assert.Equal(t, tt.page, p.CurrentPage)
			assert.Equal(t, tt.wantMore, p.HasMore)
			assert.Equal(t, tt.wantTot, p.TotalPages)
			assert.Equal(t, 23, p.TotalResults)
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	page, p := Paginate(nil, 1, 15)
	assert.Empty(t, page)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 0, p.TotalResults)
	assert.False(t, p.HasMore)
}

func TestFilterByLocation(t *testing.T) {
	norm := location.Default()
	loc := models.NormalizedLocation{City: "Los Angeles", State: "CA"}
	providers := []models.Provider{
		activeProvider("A", "One", "Cardiology", "Los Angeles", "CA"),
		activeProvider("B", "Two", "Cardiology", "LA", "CA"), // alias of the same city
		activeProvider("C", "Three", "Cardiology", "San Diego", "CA"),
		activeProvider("D", "Four", "Cardiology", "Los Angeles", "TX"),
	}

	kept := FilterByLocation(providers, loc, norm)
	require.Len(t, kept, 2)
	assert.Equal(t, "A One", kept[0].Name())
	assert.Equal(t, "B Two", kept[1].Name())
}

func TestFilterByLocation_CityContainment(t *testing.T) {
	norm := location.Default()
	providers := []models.Provider{
		activeProvider("A", "One", "Cardiology", "East Los Angeles", "CA"),
		activeProvider("B", "Two", "Cardiology", "Pasadena", "CA"),
	}

	// Candidate city contains the searched city.
	kept := FilterByLocation(providers, models.NormalizedLocation{City: "Los Angeles", State: "CA"}, norm)
	require.Len(t, kept, 1)
	assert.Equal(t, "A One", kept[0].Name())

	// Searched city contains the candidate city.
	kept = FilterByLocation(
		[]models.Provider{activeProvider("C", "Three", "Cardiology", "Los Angeles", "CA")},
		models.NormalizedLocation{City: "East Los Angeles", State: "CA"},
		norm,
	)
	require.Len(t, kept, 1)
	assert.Equal(t, "C Three", kept[0].Name())
}

func TestFilterByLocation_NoLocationKeepsAll(t *testing.T) {
	providers := []models.Provider{
		activeProvider("A", "One", "Cardiology", "Seattle", "WA"),
	}
	kept := FilterByLocation(providers, models.NormalizedLocation{}, location.Default())
	assert.Len(t, kept, 1)
}
