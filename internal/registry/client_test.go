package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docscout/docscout/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"result_count": 2,
	"results": [
		{
			"number": "1234567890",
			"basic": {"first_name": "John", "last_name": "Smith", "credential": "MD",
				"status": "A", "enumeration_date": "2008-02-14"},
			"addresses": [
				{"address_purpose": "LOCATION", "address_1": "100 Main St",
				 "city": "Tacoma", "state": "WA", "postal_code": "98402",
				 "telephone_number": "253-555-0100"}
			],
			"taxonomies": [{"desc": "Ophthalmology", "primary": true}],
			"identifiers": [{"issuer": "MEDICAID", "identifier": "WA123"}]
		},
		{
			"number": "9999999999",
			"basic": {"first_name": "Rita", "last_name": "Jones", "status": "A"},
			"addresses": [],
			"taxonomies": [{"desc": "Ophthalmology"}]
		}
	]
}`

func TestClient_Lookup(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	providers, err := c.Lookup(context.Background(), LookupParams{
		LastName:  "Smith",
		Specialty: "Ophthalmology",
		City:      "Tacoma",
		State:     "WA",
	})
	require.NoError(t, err)
	require.Len(t, providers, 2)

	assert.Equal(t, "Smith", gotQuery["last_name"][0])
	assert.Equal(t, "Ophthalmology", gotQuery["taxonomy_description"][0])
	assert.Equal(t, "Tacoma", gotQuery["city"][0])
	assert.Equal(t, "WA", gotQuery["state"][0])
	assert.Equal(t, "50", gotQuery["limit"][0])
	assert.NotContains(t, gotQuery, "first_name")

	p := providers[0]
	assert.Equal(t, "1234567890", p.Number)
	assert.Equal(t, "John Smith", p.Name())
	assert.Equal(t, "Ophthalmology", p.PrimarySpecialty())
	assert.Equal(t, 2, p.SourceCount)
	require.Len(t, p.Addresses, 1)
	assert.Equal(t, "253-555-0100", p.Addresses[0].Phone)
}

func TestClient_Lookup_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	_, err := c.Lookup(context.Background(), LookupParams{LastName: "Smith"})
	assert.Error(t, err)
}

func TestClient_Lookup_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	_, err := c.Lookup(context.Background(), LookupParams{LastName: "Smith"})
	assert.Error(t, err)
}

func TestLookupParams_Key(t *testing.T) {
	a := LookupParams{LastName: "Smith", State: "WA"}
	b := LookupParams{LastName: "Smith", State: "WA", Limit: 10}
	c := LookupParams{LastName: "Smith", City: "Tacoma"}
	assert.Equal(t, a.Key(), b.Key(), "limit must not affect the key")
	assert.NotEqual(t, a.Key(), c.Key())
}

func activeProvider(mutate func(*models.Provider)) models.Provider {
	p := models.Provider{
		Number:    "1",
		FirstName: "Ann",
		LastName:  "Lee",
		Status:    "A",
		Addresses: []models.Address{
			{Purpose: "LOCATION", Street: "1 Pine St", City: "Tacoma", State: "WA", Phone: "253-555-0101"},
		},
		Taxonomies: []models.TaxonomyEntry{{Description: "Cardiology", Primary: true}},
	}
	if mutate != nil {
		mutate(&p)
	}
	return p
}

func TestFilterActive(t *testing.T) {
	tests := []struct {
		name string
		in   models.Provider
		keep bool
	}{
		{"active record kept", activeProvider(nil), true},
		{"retired status dropped", activeProvider(func(p *models.Provider) {
			p.Status = "Retired"
		}), false},
		{"retired in specialty dropped", activeProvider(func(p *models.Provider) {
			p.Taxonomies[0].Description = "Cardiology (Retired)"
		}), false},
		{"retired in name dropped", activeProvider(func(p *models.Provider) {
			p.LastName = "Lee RETIRED"
		}), false},
		{"no addresses dropped", activeProvider(func(p *models.Provider) {
			p.Addresses = nil
		}), false},
		{"location without street dropped", activeProvider(func(p *models.Provider) {
			p.Addresses[0].Street = "  "
		}), false},
		{"no phone or fax dropped", activeProvider(func(p *models.Provider) {
			p.Addresses[0].Phone = ""
		}), false},
		{"fax alone suffices", activeProvider(func(p *models.Provider) {
			p.Addresses[0].Phone = ""
			p.Addresses[0].Fax = "253-555-0199"
		}), true},
		{"untagged address with street kept", activeProvider(func(p *models.Provider) {
			p.Addresses[0].Purpose = ""
		}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterActive([]models.Provider{tt.in})
			if tt.keep != (len(got) == 1) {
				t.Errorf("FilterActive kept=%v, want %v", len(got) == 1, tt.keep)
			}
		})
	}
}
