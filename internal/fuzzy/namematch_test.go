package fuzzy

import "testing"

func TestMatchName_ExactSelf(t *testing.T) {
	for _, name := range []string{"John Smith", "Maria Garcia Lopez", "Wong"} {
		m := MatchName(name, name)
		if !m.Matched || m.Score != 100 || m.Kind != KindExact {
			t.Errorf("MatchName(%q, %q) = %+v, want exact 100", name, name, m)
		}
	}
}

func TestMatchName_Tiers(t *testing.T) {
	tests := []struct {
		name      string
		search    string
		candidate string
		wantScore float64
		wantKind  string
	}{
		{"exact ignoring case and punctuation", "john smith", "John Smith", 100, KindExact},
		{"substring", "John Smith", "John Smith Jr", 95, KindExact},
		{"substring reversed", "John Robert Smith", "Robert Smith", 95, KindExact},
		{"initials", "J R Smith", "J R Smith", 100, KindExact},
		{"first initial against full first", "J Smith", "John Smith", 88, KindPartial},
		{"last name with matching first", "Jon Smith", "Jonathan Smith", 88, KindPartial},
		{"last name only", "Kate Smith", "Ann Smith", 75, KindPartial},
		{"similar whole string", "John Smith", "John Smyth", 0, KindSimilar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MatchName(tt.search, tt.candidate)
			if !m.Matched {
				t.Fatalf("MatchName(%q, %q) did not match: %+v", tt.search, tt.candidate, m)
			}
			if m.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", m.Kind, tt.wantKind)
			}
			if tt.wantScore > 0 && m.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", m.Score, tt.wantScore)
			}
		})
	}
}

func TestMatchName_SimilarScoreRange(t *testing.T) {
	// "John Smyth" differs from "John Smith" by one letter; the last names
	// differ so the tier falls through to whole-string similarity.
	m := MatchName("John Smith", "John Smyth")
	if !m.Matched || m.Kind != KindSimilar {
		t.Fatalf("expected similar match, got %+v", m)
	}
	if m.Score <= 85 || m.Score >= 100 {
		t.Errorf("similar score = %v, want in (85, 100)", m.Score)
	}
}

func TestMatchName_TokenOverlap(t *testing.T) {
	m := MatchName("Maria Garcia Lopez", "Garcia Maria Hernandez")
	if !m.Matched || m.Score != 80 || m.Kind != KindPartial {
		t.Errorf("token overlap match = %+v, want partial 80", m)
	}
}

func TestMatchName_NoMatch(t *testing.T) {
	tests := [][2]string{
		{"John Smith", "Alice Wong"},
		{"", "John Smith"},
		{"John Smith", ""},
	}
	for _, tt := range tests {
		m := MatchName(tt[0], tt[1])
		if m.Matched || m.Score != 0 {
			t.Errorf("MatchName(%q, %q) = %+v, want no match", tt[0], tt[1], m)
		}
	}
}
