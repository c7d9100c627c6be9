// Package integration exercises the full search pipeline against a stubbed
// registry HTTP server (real client, cascade, scoring, history storage).
package integration

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/docscout/docscout/internal/history"
	"github.com/docscout/docscout/internal/models"
	"github.com/docscout/docscout/internal/registry"
	"github.com/docscout/docscout/internal/search"
	"github.com/docscout/docscout/internal/tables"
)

type registryFixture struct {
	Number    string
	FirstName string
	LastName  string
	Specialty string
	City      string
	State     string
}

var fixtures = []registryFixture{
	{"1234567890", "John", "Smith", "Cardiology", "Seattle", "WA"},
	{"1234567891", "Maria", "Garcia", "Dermatology", "Portland", "OR"},
	{"1234567892", "Alan", "Smith", "Cardiology", "Spokane", "WA"},
}

func matchesParam(want, got string) bool {
	return want == "" || strings.EqualFold(want, got)
}

// newRegistryServer serves NPI-style responses, ANDing all query parameters
// the way the real registry does.
func newRegistryServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var results []map[string]interface{}
		for _, f := range fixtures {
			if !matchesParam(q.Get("first_name"), f.FirstName) ||
				!matchesParam(q.Get("last_name"), f.LastName) ||
				!matchesParam(q.Get("taxonomy_description"), f.Specialty) ||
				!matchesParam(q.Get("city"), f.City) ||
				!matchesParam(q.Get("state"), f.State) {
				continue
			}
			results = append(results, map[string]interface{}{
				"number": f.Number,
				"basic": map[string]interface{}{
					"first_name":       f.FirstName,
					"last_name":        f.LastName,
					"credential":       "MD",
					"status":           "A",
					"enumeration_date": "2012-04-01",
				},
				"addresses": []map[string]interface{}{
					{
						"address_purpose":  "LOCATION",
						"address_1":        "100 Main St",
						"city":             f.City,
						"state":            f.State,
						"postal_code":      "98101",
						"telephone_number": "206-555-0100",
					},
				},
				"taxonomies": []map[string]interface{}{
					{"desc": f.Specialty, "primary": true, "license": "L1", "state": f.State},
				},
				"identifiers": []map[string]interface{}{
					{"issuer": "MEDICAID", "identifier": "X1"},
				},
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"result_count": len(results),
			"results":      results,
		})
	}))
}

func newService(t *testing.T, registryURL string, sink history.Sink) *search.Service {
	t.Helper()
	store, err := tables.NewStore("")
	if err != nil {
		t.Fatal(err)
	}
	client := registry.NewClient(registryURL, 5*time.Second, nil)
	return search.NewService(store, client, search.ServiceConfig{History: sink}, nil)
}

func TestIntegration_Search(t *testing.T) {
	srv := newRegistryServer(t)
	defer srv.Close()

	sink, err := history.NewSQLiteSink(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer sink.Close()

	svc := newService(t, srv.URL, sink)
	ctx := context.Background()

	resp, err := svc.Search(ctx, &models.SearchQuery{Query: "cardiologist John Smith in Seattle, WA"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.ResultsCount != 1 {
		t.Fatalf("expected 1 result, got %d", resp.ResultsCount)
	}
	r := resp.Results[0]
	if r.Name != "John Smith" || r.Specialty != "Cardiology" {
		t.Errorf("unexpected top result: %+v", r)
	}
	if r.Confidence.Total < 60 || r.Confidence.Total > 100 {
		t.Errorf("confidence out of range: %v", r.Confidence.Total)
	}
	if resp.Specialty != "Cardiology" {
		t.Errorf("expected canonical specialty Cardiology, got %q", resp.Specialty)
	}

	// History is written asynchronously; poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for {
		events, err := sink.Recent(ctx, 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(events) == 1 {
			if events[0].Query != "cardiologist John Smith in Seattle, WA" || events[0].ResultCount != 1 {
				t.Errorf("unexpected history event: %+v", events[0])
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("search was never recorded to history")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestIntegration_LastNameFallback(t *testing.T) {
	srv := newRegistryServer(t)
	defer srv.Close()

	svc := newService(t, srv.URL, nil)

	// "Jon" does not match any first name exactly, so the exact stage comes up
	// empty and the last-name stage finds John Smith via fuzzy name matching.
	resp, err := svc.Search(context.Background(), &models.SearchQuery{Query: "cardiologist Jon Smith in Seattle, WA"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.ResultsCount != 1 {
		t.Fatalf("expected 1 result, got %d", resp.ResultsCount)
	}
	if resp.Results[0].Name != "John Smith" {
		t.Errorf("expected John Smith, got %q", resp.Results[0].Name)
	}
}

func TestIntegration_LocationFilterIsStrict(t *testing.T) {
	srv := newRegistryServer(t)
	defer srv.Close()

	svc := newService(t, srv.URL, nil)

	// Maria Garcia practices in Portland; only the location-relaxed cascade
	// stage finds her, and the strict location filter must then drop her.
	resp, err := svc.Search(context.Background(), &models.SearchQuery{Query: "dermatologist Maria Garcia in Seattle, WA"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.ResultsCount != 0 {
		t.Fatalf("expected 0 results, got %d", resp.ResultsCount)
	}
	if len(resp.Suggestions) == 0 {
		t.Error("expected reformulation suggestions on empty results")
	}
}

func TestIntegration_ValidationError(t *testing.T) {
	srv := newRegistryServer(t)
	defer srv.Close()

	svc := newService(t, srv.URL, nil)

	_, err := svc.Search(context.Background(), &models.SearchQuery{Query: "in Seattle, WA"})
	if err == nil {
		t.Fatal("expected a validation error for a location-only query")
	}
	var verr *search.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *search.ValidationError, got %T", err)
	}
}
