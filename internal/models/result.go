package models

// ConfidenceScore breaks down how well a candidate matched the parsed query.
// Total is always within [0, 100].
type ConfidenceScore struct {
	NameScore      float64 `json:"name_score"`
	SpecialtyScore float64 `json:"specialty_score"`
	LocationScore  float64 `json:"location_score"`
	SourceBonus    float64 `json:"source_bonus"`
	Total          float64 `json:"total"`
}

// RankedResult is a display-ready provider paired with its confidence score.
type RankedResult struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Specialty       string          `json:"specialty"`
	Location        string          `json:"location"`
	Phone           string          `json:"phone,omitempty"`
	Rating          float64         `json:"rating,omitempty"`
	YearsExperience int             `json:"years_experience,omitempty"`
	Confidence      ConfidenceScore `json:"confidence"`
}

// Pagination describes the slice of results returned for one page.
type Pagination struct {
	CurrentPage    int  `json:"currentPage"`
	ResultsPerPage int  `json:"resultsPerPage"`
	TotalPages     int  `json:"totalPages"`
	HasMore        bool `json:"hasMore"`
	TotalResults   int  `json:"totalResults"`
}

// SearchResponse is the response for a provider search request. On zero
// results, Results is empty and Suggestions carries actionable reformulations.
type SearchResponse struct {
	Query        string          `json:"query"`
	Specialty    string          `json:"specialty,omitempty"`
	Location     string          `json:"location,omitempty"`
	Results      []*RankedResult `json:"results"`
	ResultsCount int             `json:"resultsCount"`
	SearchRadius float64         `json:"searchRadius"`
	Pagination   *Pagination     `json:"pagination,omitempty"`
	Error        string          `json:"error,omitempty"`
	Suggestions  []string        `json:"suggestions,omitempty"`
}
