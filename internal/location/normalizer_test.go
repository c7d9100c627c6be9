package location

import (
	"testing"

	"github.com/docscout/docscout/internal/models"
)

func TestNormalize(t *testing.T) {
	n := Default()
	tests := []struct {
		raw  string
		want string
	}{
		{"Tukwilla", "Tukwila, WA"},
		{"  tukwilla  ", "Tukwila, WA"},
		{"seatle", "Seattle, WA"},
		{"nyc", "New York, NY"},
		{"Tacoma,  WA", "Tacoma, WA"}, // whitespace collapsed, no rule needed
		{"Boise", "Boise"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := n.Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	n := Default()
	tests := []struct {
		in   string
		want models.NormalizedLocation
	}{
		{"Tukwila, WA", models.NormalizedLocation{City: "Tukwila", State: "WA"}},
		{"Tacoma, Washington", models.NormalizedLocation{City: "Tacoma", State: "WA"}},
		{"Tacoma Washington", models.NormalizedLocation{City: "Tacoma", State: "WA"}},
		{"Albany New York", models.NormalizedLocation{City: "Albany", State: "NY"}},
		{"WA", models.NormalizedLocation{State: "WA"}},
		{"wa", models.NormalizedLocation{State: "WA"}},
		{"Washington", models.NormalizedLocation{State: "WA"}},
		{"New York", models.NormalizedLocation{State: "NY"}},
		{"Tacoma", models.NormalizedLocation{City: "Tacoma"}},
		{"", models.NormalizedLocation{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := n.Parse(tt.in)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_StateAlwaysTwoLetter(t *testing.T) {
	n := Default()
	for _, in := range []string{"Tacoma, Washington", "Albany New York", "california", "TX"} {
		got := n.Parse(in)
		if got.State != "" && len(got.State) != 2 {
			t.Errorf("Parse(%q).State = %q, want 2-letter code", in, got.State)
		}
	}
}

func TestCanonicalAlias(t *testing.T) {
	n := Default()
	tests := []struct {
		in   string
		want string
	}{
		{"la", "los angeles"},
		{"LA", "los angeles"},
		{"NYC", "new york"},
		{"Saint Louis", "st louis"},
		{"Tacoma", "tacoma"},
	}
	for _, tt := range tests {
		if got := n.CanonicalAlias(tt.in); got != tt.want {
			t.Errorf("CanonicalAlias(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStateCode(t *testing.T) {
	if code, ok := StateCode("washington"); !ok || code != "WA" {
		t.Errorf("StateCode(washington) = %q, %v", code, ok)
	}
	if _, ok := StateCode("atlantis"); ok {
		t.Error("StateCode(atlantis) should not resolve")
	}
	if !IsStateCode("wa") || !IsStateCode("NY") || IsStateCode("ZZ") {
		t.Error("IsStateCode misclassified a code")
	}
}
