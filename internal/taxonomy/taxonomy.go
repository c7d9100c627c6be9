// Package taxonomy maps free-text specialty terms to canonical specialties
// and provides broader/related specialty sets for search relaxation.
package taxonomy

import (
	"sort"
	"strings"

	"github.com/docscout/docscout/internal/fuzzy"
)

// Generic is the catch-all specialty. A query that resolved only to this
// value does not count as a real specialty facet for validation purposes.
const Generic = "General Practice"

// Fuzzy acceptance thresholds for synonym resolution.
const (
	wordThreshold = 0.75
	pairThreshold = 0.7
)

// Table is the raw, data-driven specialty lookup table. Synonym keys are
// matched case-insensitively; every synonym maps to exactly one canonical
// specialty, and canonical specialties map to themselves.
type Table struct {
	Synonyms map[string]string   `yaml:"synonyms"`
	Broader  map[string]string   `yaml:"broader"`
	Related  map[string][]string `yaml:"related"`
}

// Taxonomy is an immutable specialty lookup built once from a Table.
type Taxonomy struct {
	synonyms map[string]string
	broader  map[string]string
	related  map[string][]string
	// synonym keys ordered longest-first so substring matching is
	// deterministic and prefers the most specific term
	ordered []string
}

// New builds a Taxonomy from a table. Canonical values are added as synonyms
// of themselves when the table does not list them.
func New(table *Table) *Taxonomy {
	t := &Taxonomy{
		synonyms: make(map[string]string, len(table.Synonyms)),
		broader:  make(map[string]string, len(table.Broader)),
		related:  make(map[string][]string, len(table.Related)),
	}
	for syn, canonical := range table.Synonyms {
		t.synonyms[strings.ToLower(strings.TrimSpace(syn))] = canonical
	}
	addSelf := func(canonical string) {
		key := strings.ToLower(canonical)
		if _, ok := t.synonyms[key]; !ok {
			t.synonyms[key] = canonical
		}
	}
	for _, canonical := range table.Synonyms {
		addSelf(canonical)
	}
	for child, parent := range table.Broader {
		t.broader[child] = parent
		addSelf(child)
		addSelf(parent)
	}
	for canonical, siblings := range table.Related {
		t.related[canonical] = append([]string(nil), siblings...)
		addSelf(canonical)
		for _, s := range siblings {
			addSelf(s)
		}
	}

	t.ordered = make([]string, 0, len(t.synonyms))
	for syn := range t.synonyms {
		t.ordered = append(t.ordered, syn)
	}
	sort.Slice(t.ordered, func(i, j int) bool {
		if len(t.ordered[i]) != len(t.ordered[j]) {
			return len(t.ordered[i]) > len(t.ordered[j])
		}
		return t.ordered[i] < t.ordered[j]
	})
	return t
}

// Canonicalize resolves free text to a canonical specialty. It tries, in
// order: direct substring match against known synonyms, per-word fuzzy match
// (similarity > 0.75), and adjacent two-word fuzzy match (similarity > 0.7).
func (t *Taxonomy) Canonicalize(text string) (string, bool) {
	canonical, _, ok := t.Resolve(text)
	return canonical, ok
}

// Resolve is Canonicalize plus the query text that actually matched, so
// callers can strip it before name extraction.
func (t *Taxonomy) Resolve(text string) (canonical, matched string, ok bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return "", "", false
	}

	for _, syn := range t.ordered {
		if strings.Contains(lower, syn) {
			return t.synonyms[syn], syn, true
		}
	}

	words := strings.Fields(lower)

	best := ""
	bestSim := wordThreshold
	bestWord := ""
	for _, w := range words {
		for _, syn := range t.ordered {
			if sim := fuzzy.Similarity(w, syn); sim > bestSim {
				best = t.synonyms[syn]
				bestSim = sim
				bestWord = w
			}
		}
	}
	if best != "" {
		return best, bestWord, true
	}

	bestSim = pairThreshold
	for i := 0; i+1 < len(words); i++ {
		pair := words[i] + " " + words[i+1]
		for _, syn := range t.ordered {
			if sim := fuzzy.Similarity(pair, syn); sim > bestSim {
				best = t.synonyms[syn]
				bestSim = sim
				bestWord = pair
			}
		}
	}
	if best != "" {
		return best, bestWord, true
	}
	return "", "", false
}

// Canonicals returns every canonical specialty, sorted alphabetically.
func (t *Taxonomy) Canonicals() []string {
	seen := make(map[string]bool)
	var out []string
	for _, canonical := range t.synonyms {
		if !seen[canonical] {
			seen[canonical] = true
			out = append(out, canonical)
		}
	}
	sort.Strings(out)
	return out
}

// BroaderOf returns the single parent specialty when one is defined.
func (t *Taxonomy) BroaderOf(specialty string) (string, bool) {
	parent, ok := t.broader[specialty]
	return parent, ok
}

// RelatedTo returns sibling specialties usable for search relaxation, in
// curated priority order. Empty when none are defined.
func (t *Taxonomy) RelatedTo(specialty string) []string {
	return append([]string(nil), t.related[specialty]...)
}

// Expansion returns the comparison set for a specialty: its synonyms, its
// broader specialty, and its related specialties. Used for membership checks
// when scoring, never for display.
func (t *Taxonomy) Expansion(specialty string) []string {
	seen := map[string]bool{strings.ToLower(specialty): true}
	out := []string{}
	add := func(s string) {
		key := strings.ToLower(s)
		if !seen[key] {
			seen[key] = true
			out = append(out, s)
		}
	}
	for _, syn := range t.ordered {
		if t.synonyms[syn] == specialty {
			add(syn)
		}
	}
	if parent, ok := t.broader[specialty]; ok {
		add(parent)
	}
	for _, s := range t.related[specialty] {
		add(s)
	}
	return out
}
