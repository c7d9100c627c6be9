// Package parser extracts name, specialty, and location facets from raw
// free-text provider queries.
package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/docscout/docscout/internal/enrich"
	"github.com/docscout/docscout/internal/location"
	"github.com/docscout/docscout/internal/models"
	"github.com/docscout/docscout/internal/taxonomy"
	"go.uber.org/zap"
)

// fillerWords are query tokens that never belong to a person's name.
var fillerWords = map[string]bool{
	"a": true, "an": true, "the": true, "find": true, "me": true, "my": true,
	"good": true, "best": true, "top": true, "who": true, "that": true,
	"takes": true, "accepts": true, "for": true, "looking": true, "need": true,
	"want": true, "show": true, "list": true, "please": true, "physician": true,
	"specialist": true, "provider": true, "in": true, "near": true, "at": true,
	"around": true, "doctor": true, "dr": true, "doc": true,
}

var (
	// "in/near/at X": the preposition form wins over everything else.
	prepositionRE = regexp.MustCompile(`(?i)\b(?:in|near|at|around)\s+([A-Za-z][A-Za-z .',-]*)$`)
	// "City, ST"
	cityStateCodeRE = regexp.MustCompile(`\b([A-Za-z][A-Za-z .'-]*?),\s*([A-Za-z]{2})\b`)
	// Capitalized 2+-word run, used as a last-resort name extractor.
	capitalizedRunRE = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z]\.?\s+|\s+)[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\b`)

	doctorPrefixRE = regexp.MustCompile(`(?i)^(dr\.?|doctor)\s+`)
)

// Parser turns a raw query string into ParsedFacets using the specialty
// taxonomy, the location tables, and name-pattern heuristics. An optional
// facet suggester may seed facets the structural parse left empty.
type Parser struct {
	tax       *taxonomy.Taxonomy
	loc       *location.Normalizer
	suggester enrich.FacetSuggester
	logger    *zap.Logger
	// "City <full state name>", compiled from the state table
	cityStateNameRE *regexp.Regexp
}

// Option configures a Parser.
type Option func(*Parser)

// WithSuggester sets the optional NLU facet suggester.
func WithSuggester(s enrich.FacetSuggester) Option {
	return func(p *Parser) { p.suggester = s }
}

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// New creates a Parser over the given taxonomy and location tables.
func New(tax *taxonomy.Taxonomy, loc *location.Normalizer, opts ...Option) *Parser {
	names := location.StateNames()
	for i, n := range names {
		names[i] = regexp.QuoteMeta(n)
	}
	p := &Parser{
		tax:             tax,
		loc:             loc,
		logger:          zap.NewNop(),
		cityStateNameRE: regexp.MustCompile(`(?i)\b([A-Za-z]+)\s+(` + strings.Join(names, "|") + `)\b`),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts facets from the raw query. Location is extracted first and
// removed from the working text, then specialty, then name; a fallback name
// extractor and the optional suggester fill anything still missing.
func (p *Parser) Parse(ctx context.Context, query string) *models.ParsedFacets {
	facets := &models.ParsedFacets{OriginalQuery: query}
	working := strings.TrimSpace(query)

	working = p.extractLocation(working, facets)
	working = p.extractSpecialty(working, facets)
	p.extractName(working, facets)

	if !facets.HasName() {
		p.fallbackName(query, facets)
	}
	p.applySuggestions(ctx, query, facets)

	p.logger.Debug("parsed facets",
		zap.String("first_name", facets.FirstName),
		zap.String("last_name", facets.LastName),
		zap.String("specialty", facets.Specialty),
		zap.String("location", facets.Location),
	)
	return facets
}

// extractLocation tries the three regex families in order; the first match
// wins and is removed from the working text.
func (p *Parser) extractLocation(working string, facets *models.ParsedFacets) string {
	if m := prepositionRE.FindStringSubmatchIndex(working); m != nil {
		raw := strings.Trim(working[m[2]:m[3]], " ,.")
		facets.Location = p.loc.Normalize(raw)
		return strings.TrimSpace(working[:m[0]] + working[m[1]:])
	}
	if m := p.cityStateNameRE.FindStringSubmatchIndex(working); m != nil {
		city := working[m[2]:m[3]]
		state := working[m[4]:m[5]]
		// A specialty or filler word before the state name is not a city
		// ("dermatologist new york"): keep it in the working text.
		if _, isSpecialty := p.tax.Canonicalize(city); isSpecialty || fillerWords[strings.ToLower(city)] {
			facets.Location = stateToCode(state)
			return strings.TrimSpace(working[:m[0]] + city + " " + working[m[1]:])
		}
		facets.Location = p.loc.Normalize(city + ", " + stateToCode(state))
		return strings.TrimSpace(working[:m[0]] + working[m[1]:])
	}
	if m := cityStateCodeRE.FindStringSubmatchIndex(working); m != nil {
		state := working[m[4]:m[5]]
		if location.IsStateCode(state) {
			// The captured "city" runs from the match start to the comma and
			// can swallow specialty or filler words; hand those back.
			rest, city := p.trimCityTokens(working[m[2]:m[3]])
			if city != "" {
				facets.Location = p.loc.Normalize(city + ", " + strings.ToUpper(state))
			} else {
				facets.Location = strings.ToUpper(state)
			}
			return strings.TrimSpace(working[:m[0]] + rest + working[m[1]:])
		}
	}
	return working
}

// trimCityTokens splits a captured city phrase into a non-city prefix
// (specialty or filler words) and the trailing words that plausibly form the
// city itself.
func (p *Parser) trimCityTokens(captured string) (rest, city string) {
	words := strings.Fields(captured)
	i := len(words)
	for i > 0 {
		w := words[i-1]
		if fillerWords[strings.ToLower(w)] {
			break
		}
		if _, isSpecialty := p.tax.Canonicalize(w); isSpecialty {
			break
		}
		i--
	}
	return strings.Join(words[:i], " "), strings.Join(words[i:], " ")
}

func stateToCode(state string) string {
	if code, ok := location.StateCode(state); ok {
		return code
	}
	return strings.ToUpper(state)
}

// extractSpecialty resolves a specialty from the working text and strips the
// matched synonym tokens so they do not pollute name extraction.
func (p *Parser) extractSpecialty(working string, facets *models.ParsedFacets) string {
	canonical, matched, ok := p.tax.Resolve(working)
	if !ok {
		return working
	}
	facets.Specialty = canonical
	lower := strings.ToLower(working)
	if idx := strings.Index(lower, matched); idx >= 0 {
		working = working[:idx] + working[idx+len(matched):]
	}
	return strings.TrimSpace(working)
}

// extractName parses a name out of whatever text remains after location and
// specialty extraction.
func (p *Parser) extractName(working string, facets *models.ParsedFacets) {
	working = doctorPrefixRE.ReplaceAllString(strings.TrimSpace(working), "")
	// A bare state left over ("dermatologist washington") is a location,
	// not a name.
	if working != "" {
		if parsed := p.loc.Parse(working); parsed.City == "" && parsed.State != "" {
			if facets.Location == "" {
				facets.Location = parsed.State
			}
			return
		}
	}
	words := nameTokens(working)
	switch {
	// More than four tokens left over is leftover prose, not a name; let
	// the fallback extractor look for a capitalized run instead.
	case len(words) == 0 || len(words) > 4:
		return
	case len(words) >= 3 && isInitial(words[1]):
		facets.FirstName = words[0]
		facets.LastName = strings.Join(words[2:], " ")
	case len(words) == 2:
		facets.FirstName = words[0]
		facets.LastName = words[1]
	case len(words) >= 3:
		facets.FirstName = words[0]
		facets.LastName = strings.Join(words[1:], " ")
	default:
		facets.LastName = words[0]
	}
}

// fallbackName recovers a capitalized multi-word run from the original query
// when the structural parse found nothing. Runs that are part of the
// extracted location are skipped.
func (p *Parser) fallbackName(query string, facets *models.ParsedFacets) {
	loc := strings.ToLower(facets.Location)
	for _, m := range capitalizedRunRE.FindAllString(query, -1) {
		run := doctorPrefixRE.ReplaceAllString(m, "")
		if run == "" || (loc != "" && strings.Contains(loc, strings.ToLower(run))) {
			continue
		}
		words := nameTokens(run)
		if len(words) < 2 {
			continue
		}
		if len(words) >= 3 && isInitial(words[1]) {
			facets.FirstName = words[0]
			facets.LastName = strings.Join(words[2:], " ")
		} else {
			facets.FirstName = words[0]
			facets.LastName = strings.Join(words[1:], " ")
		}
		return
	}
}

// applySuggestions lets the optional NLU collaborator seed facets the
// structural parse left empty. Only the top suggestion is used, and only when
// its confidence clears the floor; it never overwrites a structural result.
func (p *Parser) applySuggestions(ctx context.Context, query string, facets *models.ParsedFacets) {
	if p.suggester == nil {
		return
	}
	if facets.HasName() && facets.Specialty != "" && facets.Location != "" {
		return
	}
	suggestions, err := p.suggester.Suggest(ctx, query)
	if err != nil {
		p.logger.Debug("facet suggester failed", zap.Error(err))
		return
	}
	if len(suggestions) == 0 || suggestions[0].Confidence < enrich.MinSuggestionConfidence {
		return
	}
	top := suggestions[0]
	if !facets.HasName() {
		facets.FirstName = top.FirstName
		facets.LastName = top.LastName
	}
	if facets.Specialty == "" && top.Specialty != "" {
		if canonical, ok := p.tax.Canonicalize(top.Specialty); ok {
			facets.Specialty = canonical
		}
	}
	if facets.Location == "" && top.Location != "" {
		facets.Location = p.loc.Normalize(top.Location)
	}
}

// nameTokens splits text into plausible name tokens, dropping filler words
// and anything that is not alphabetic (periods allowed for initials).
func nameTokens(text string) []string {
	var out []string
	for _, w := range strings.Fields(text) {
		w = strings.Trim(w, ",.;:")
		if w == "" || fillerWords[strings.ToLower(w)] {
			continue
		}
		if !isAlpha(strings.TrimSuffix(w, ".")) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func isInitial(w string) bool {
	w = strings.TrimSuffix(w, ".")
	return len(w) == 1 && isAlpha(w)
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
