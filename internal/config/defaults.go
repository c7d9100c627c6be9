package config

import "time"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Registry.BaseURL == "" {
		cfg.Registry.BaseURL = "https://npiregistry.cms.hhs.gov"
	}
	if cfg.Registry.Timeout == 0 {
		cfg.Registry.Timeout = 10 * time.Second
	}
	if cfg.Registry.Limit == 0 {
		cfg.Registry.Limit = 50
	}
	if cfg.Search.MinConfidence == 0 {
		cfg.Search.MinConfidence = 60
	}
	if cfg.Search.EnrichTopK == 0 {
		cfg.Search.EnrichTopK = 50
	}
	if cfg.Search.EnrichConcurrency == 0 {
		cfg.Search.EnrichConcurrency = 8
	}
	if cfg.Enrichment.Timeout == 0 {
		cfg.Enrichment.Timeout = 5 * time.Second
	}
	if cfg.Suggester.Timeout == 0 {
		cfg.Suggester.Timeout = 3 * time.Second
	}
	if cfg.History.DatabasePath == "" {
		cfg.History.DatabasePath = "/usr/local/var/docscout/data/db/history.db"
	}
}
