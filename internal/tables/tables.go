// Package tables loads the specialty and location lookup tables and keeps a
// live snapshot that can be hot-reloaded when the table files change.
package tables

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/docscout/docscout/internal/location"
	"github.com/docscout/docscout/internal/taxonomy"
	"gopkg.in/yaml.v3"
)

// File names looked up inside the tables directory.
const (
	TaxonomyFile  = "taxonomy.yaml"
	LocationsFile = "locations.yaml"
)

// Snapshot is one immutable generation of the lookup tables. Consumers hold
// a snapshot for the duration of a request; reloads swap in a fresh one.
type Snapshot struct {
	Taxonomy  *taxonomy.Taxonomy
	Locations *location.Normalizer
}

// Store holds the current snapshot behind an atomic pointer so readers never
// block on a reload.
type Store struct {
	dir     string
	current atomic.Pointer[Snapshot]
}

// NewStore builds a store from the table files under dir, overlaid on the
// built-in defaults. An empty dir or missing files yield the defaults alone.
func NewStore(dir string) (*Store, error) {
	s := &Store{dir: dir}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns the current table generation.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Reload re-reads the table files and swaps in a new snapshot. In-flight
// requests keep the generation they started with.
func (s *Store) Reload() error {
	taxTable := taxonomy.DefaultTable()
	locTable := location.DefaultTable()

	if s.dir != "" {
		if err := overlayYAML(filepath.Join(s.dir, TaxonomyFile), taxTable); err != nil {
			return fmt.Errorf("failed to load taxonomy table: %w", err)
		}
		if err := overlayYAML(filepath.Join(s.dir, LocationsFile), locTable); err != nil {
			return fmt.Errorf("failed to load locations table: %w", err)
		}
	}

	s.current.Store(&Snapshot{
		Taxonomy:  taxonomy.New(taxTable),
		Locations: location.New(locTable),
	})
	return nil
}

// overlayYAML unmarshals path into out when the file exists. Decoded map
// entries merge over the defaults already present in out.
func overlayYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
