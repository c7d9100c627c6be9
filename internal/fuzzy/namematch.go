package fuzzy

import "strings"

// Name match kinds, strongest first.
const (
	KindExact    = "exact"
	KindInitials = "initials"
	KindPartial  = "partial"
	KindSimilar  = "similar"
)

// NameMatch is the outcome of comparing a searched name against a candidate.
type NameMatch struct {
	Matched bool    `json:"matched"`
	Score   float64 `json:"score"` // 0-100
	Kind    string  `json:"kind,omitempty"`
}

// MatchName compares a searched name against a candidate name and returns a
// tiered match score. Tiers, checked in order: exact equality (100),
// substring either direction (95), identical initials (90), last-name match
// with first-name agreement (88) or alone (75), token overlap (80), and
// whole-string similarity above 0.85 (similarity*100).
func MatchName(searchName, candidateName string) NameMatch {
	search := normalizeName(searchName)
	candidate := normalizeName(candidateName)
	if search == "" || candidate == "" {
		return NameMatch{}
	}

	if search == candidate {
		return NameMatch{Matched: true, Score: 100, Kind: KindExact}
	}
	if strings.Contains(candidate, search) || strings.Contains(search, candidate) {
		return NameMatch{Matched: true, Score: 95, Kind: KindExact}
	}

	searchTokens := strings.Fields(search)
	candTokens := strings.Fields(candidate)

	if m, ok := matchInitials(searchTokens, candTokens); ok {
		return m
	}
	if m, ok := matchLastName(searchTokens, candTokens); ok {
		return m
	}
	if m, ok := matchTokenOverlap(searchTokens, candTokens); ok {
		return m
	}

	if sim := Similarity(search, candidate); sim > 0.85 {
		return NameMatch{Matched: true, Score: sim * 100, Kind: KindSimilar}
	}
	return NameMatch{}
}

// matchInitials matches when both names reduce to the same initials sequence
// of at least two letters (e.g. "j r smith" vs "john robert smith" do not
// qualify; "j r s" vs "john robert smith" do).
func matchInitials(search, candidate []string) (NameMatch, bool) {
	if len(search) < 2 || len(candidate) < 2 || len(search) != len(candidate) {
		return NameMatch{}, false
	}
	allInitials := true
	for i := range search {
		if len(search[i]) != 1 && len(candidate[i]) != 1 {
			allInitials = false
			break
		}
		if search[i][0] != candidate[i][0] {
			return NameMatch{}, false
		}
	}
	if !allInitials {
		return NameMatch{}, false
	}
	return NameMatch{Matched: true, Score: 90, Kind: KindInitials}, true
}

// matchLastName matches on last-name equality (at least 3 characters).
// Agreement on the first name raises the score from 75 to 88.
func matchLastName(search, candidate []string) (NameMatch, bool) {
	searchLast := search[len(search)-1]
	candLast := candidate[len(candidate)-1]
	if len(searchLast) < 3 || searchLast != candLast {
		return NameMatch{}, false
	}
	if len(search) > 1 && len(candidate) > 1 {
		sf, cf := search[0], candidate[0]
		if sf == cf || strings.HasPrefix(cf, sf) || strings.HasPrefix(sf, cf) {
			return NameMatch{Matched: true, Score: 88, Kind: KindPartial}, true
		}
	}
	return NameMatch{Matched: true, Score: 75, Kind: KindPartial}, true
}

// matchTokenOverlap matches when at least two name tokens overlap, or all of
// them when fewer than two were searched.
func matchTokenOverlap(search, candidate []string) (NameMatch, bool) {
	candSet := make(map[string]bool, len(candidate))
	for _, t := range candidate {
		candSet[t] = true
	}
	overlap := 0
	for _, t := range search {
		if candSet[t] {
			overlap++
		}
	}
	need := 2
	if len(search) < 2 {
		need = len(search)
	}
	if need == 0 || overlap < need {
		return NameMatch{}, false
	}
	return NameMatch{Matched: true, Score: 80, Kind: KindPartial}, true
}

// normalizeName lowercases and keeps only letters and single spaces.
func normalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	lastSpace := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			lastSpace = false
		case !lastSpace:
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
