// Package config provides configuration loading and structs for the DocScout server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Registry   RegistryConfig   `yaml:"registry"`
	Search     SearchConfig     `yaml:"search"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Suggester  SuggesterConfig  `yaml:"suggester"`
	History    HistoryConfig    `yaml:"history"`
	Tables     TablesConfig     `yaml:"tables"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RegistryConfig holds provider registry client settings.
type RegistryConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	Limit   int           `yaml:"limit"`
}

// SearchConfig holds scoring, ranking, and enrichment fan-out settings.
type SearchConfig struct {
	MinConfidence     int      `yaml:"min_confidence"`
	EnrichTopK        int      `yaml:"enrich_top_k"`
	EnrichConcurrency int      `yaml:"enrich_concurrency"`
	AltSpecialtyTerms []string `yaml:"alt_specialty_terms"`
}

// EnrichmentConfig holds the business-directory enrichment client settings.
type EnrichmentConfig struct {
	Enabled bool          `yaml:"enabled"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// SuggesterConfig holds the NLU facet suggestion client settings.
type SuggesterConfig struct {
	Enabled bool          `yaml:"enabled"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// HistoryConfig holds search history persistence settings.
type HistoryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"`
}

// TablesConfig holds the lookup table overlay settings.
type TablesConfig struct {
	Directory string `yaml:"directory"`
	Watch     bool   `yaml:"watch"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.History.DatabasePath = expandPath(cfg.History.DatabasePath, configDir)
	if cfg.Tables.Directory != "" {
		cfg.Tables.Directory = expandPath(cfg.Tables.Directory, configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
