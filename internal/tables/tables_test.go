package tables

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewStore_DefaultsOnly(t *testing.T) {
	store, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	snap := store.Snapshot()
	if snap == nil {
		t.Fatal("expected a snapshot")
	}
	if got, ok := snap.Taxonomy.Canonicalize("cardiologist"); !ok || got != "Cardiology" {
		t.Errorf("Canonicalize(cardiologist) = %q, %v", got, ok)
	}
	if got := snap.Locations.Normalize("tukwilla"); got != "Tukwila, WA" {
		t.Errorf("Normalize(tukwilla) = %q", got)
	}
}

func TestNewStore_OverlayMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	taxYAML := `
synonyms:
  bone doctor: Orthopedic Surgery
`
	locYAML := `
corrections:
  portlund: "Portland, OR"
`
	if err := os.WriteFile(filepath.Join(dir, TaxonomyFile), []byte(taxYAML), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, LocationsFile), []byte(locYAML), 0644); err != nil {
		t.Fatal(err)
	}

	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	snap := store.Snapshot()

	// overlay entries are present
	if got, ok := snap.Taxonomy.Canonicalize("bone doctor"); !ok || got != "Orthopedic Surgery" {
		t.Errorf("Canonicalize(bone doctor) = %q, %v", got, ok)
	}
	if got := snap.Locations.Normalize("portlund"); got != "Portland, OR" {
		t.Errorf("Normalize(portlund) = %q", got)
	}
	// defaults survive the overlay
	if got, ok := snap.Taxonomy.Canonicalize("cardiologist"); !ok || got != "Cardiology" {
		t.Errorf("Canonicalize(cardiologist) = %q, %v", got, ok)
	}
}

func TestNewStore_BadYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, TaxonomyFile), []byte("synonyms: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(dir); err == nil {
		t.Fatal("expected error for malformed table file")
	}
}

func TestReload_SwapsSnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	before := store.Snapshot()

	taxYAML := `
synonyms:
  sleep doctor: Sleep Medicine
`
	if err := os.WriteFile(filepath.Join(dir, TaxonomyFile), []byte(taxYAML), 0644); err != nil {
		t.Fatal(err)
	}
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	after := store.Snapshot()
	if before == after {
		t.Error("expected a fresh snapshot after reload")
	}
	if got, ok := after.Taxonomy.Canonicalize("sleep doctor"); !ok || got != "Sleep Medicine" {
		t.Errorf("Canonicalize(sleep doctor) = %q, %v", got, ok)
	}
}
