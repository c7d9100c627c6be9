// Package location fixes common location misspellings and aliases and splits
// free-text locations into city and state.
package location

import (
	"regexp"
	"strings"

	"github.com/docscout/docscout/internal/models"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// Table is the raw, data-driven correction and alias table. Corrections map
// misspellings and shorthand to the corrected display string; Aliases map
// shorthand to a canonical comparison key used only for equality and
// substring checks, never for display.
type Table struct {
	Corrections map[string]string `yaml:"corrections"`
	Aliases     map[string]string `yaml:"aliases"`
}

// Normalizer is an immutable location lookup built once from a Table.
type Normalizer struct {
	corrections map[string]string
	aliases     map[string]string
}

// New builds a Normalizer from a table.
func New(table *Table) *Normalizer {
	n := &Normalizer{
		corrections: make(map[string]string, len(table.Corrections)),
		aliases:     make(map[string]string, len(table.Aliases)),
	}
	for k, v := range table.Corrections {
		n.corrections[strings.ToLower(strings.TrimSpace(k))] = v
	}
	for k, v := range table.Aliases {
		n.aliases[strings.ToLower(strings.TrimSpace(k))] = strings.ToLower(v)
	}
	return n
}

// Normalize trims and collapses whitespace and applies the correction table
// case-insensitively. Returns the corrected string, the cleaned input when no
// rule matches, or "" for empty input.
func (n *Normalizer) Normalize(raw string) string {
	cleaned := whitespaceRE.ReplaceAllString(strings.TrimSpace(raw), " ")
	if cleaned == "" {
		return ""
	}
	if corrected, ok := n.corrections[strings.ToLower(cleaned)]; ok {
		return corrected
	}
	return cleaned
}

// Parse splits a location string into city and state. Recognized forms, in
// order: "City, ST" and "City, State-name"; "City Statename"; a bare 2-letter
// state code; a bare full state name; otherwise the whole string is a city.
func (n *Normalizer) Parse(locationString string) models.NormalizedLocation {
	s := whitespaceRE.ReplaceAllString(strings.TrimSpace(locationString), " ")
	if s == "" {
		return models.NormalizedLocation{}
	}

	if city, state, ok := splitOnComma(s); ok {
		return models.NormalizedLocation{City: city, State: state}
	}
	if city, state, ok := splitTrailingStateName(s); ok {
		return models.NormalizedLocation{City: city, State: state}
	}
	if len(s) == 2 && IsStateCode(s) {
		return models.NormalizedLocation{State: strings.ToUpper(s)}
	}
	if code, ok := StateCode(s); ok {
		return models.NormalizedLocation{State: code}
	}
	return models.NormalizedLocation{City: s}
}

// splitOnComma handles "City, ST" and "City, State-name".
func splitOnComma(s string) (city, state string, ok bool) {
	idx := strings.Index(s, ",")
	if idx < 0 {
		return "", "", false
	}
	city = strings.TrimSpace(s[:idx])
	rest := strings.TrimSpace(s[idx+1:])
	if city == "" || rest == "" {
		return "", "", false
	}
	if len(rest) == 2 && IsStateCode(rest) {
		return city, strings.ToUpper(rest), true
	}
	if code, found := StateCode(rest); found {
		return city, code, true
	}
	return "", "", false
}

// splitTrailingStateName handles "City Statename" where the last one or two
// words form a known full state name.
func splitTrailingStateName(s string) (city, state string, ok bool) {
	words := strings.Fields(s)
	if len(words) < 2 {
		return "", "", false
	}
	// Two-word state names first ("New York", "North Carolina")
	if len(words) >= 3 {
		tail := strings.Join(words[len(words)-2:], " ")
		if code, found := StateCode(tail); found {
			return strings.Join(words[:len(words)-2], " "), code, true
		}
	}
	if code, found := StateCode(words[len(words)-1]); found {
		return strings.Join(words[:len(words)-1], " "), code, true
	}
	return "", "", false
}

// CanonicalAlias maps a known alias (e.g. "la") to its canonical comparison
// key ("los angeles"). Unknown terms are returned lowercased and trimmed.
func (n *Normalizer) CanonicalAlias(term string) string {
	key := strings.ToLower(whitespaceRE.ReplaceAllString(strings.TrimSpace(term), " "))
	if canonical, ok := n.aliases[key]; ok {
		return canonical
	}
	return key
}
