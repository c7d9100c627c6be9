// Package main is the DocScout CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/docscout/docscout/internal/config"
	"github.com/docscout/docscout/internal/enrich"
	"github.com/docscout/docscout/internal/history"
	"github.com/docscout/docscout/internal/models"
	"github.com/docscout/docscout/internal/registry"
	"github.com/docscout/docscout/internal/search"
	"github.com/docscout/docscout/internal/server"
	"github.com/docscout/docscout/internal/tables"
	"github.com/docscout/docscout/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/docscout/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used,
// so that "docscout server" from the project dir uses the project's config.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "specialties":
		runSpecialties()
	case "history":
		runHistory()
	case "version", "--version", "-v":
		fmt.Printf("docscout version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Tables  *tables.Store
	Watcher *tables.Watcher
	Sink    history.Sink
	Service *search.Service
}

func (c *Components) Close() {
	if c.Watcher != nil {
		c.Watcher.Stop()
	}
	if c.Sink != nil {
		_ = c.Sink.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := tables.NewStore(cfg.Tables.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to load lookup tables: %w", err)
	}

	var sink history.Sink
	if cfg.History.Enabled {
		sqlSink, err := history.NewSQLiteSink(cfg.History.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize history: %w", err)
		}
		sink = sqlSink
	}

	svcCfg := search.ServiceConfig{
		History:           sink,
		MinConfidence:     cfg.Search.MinConfidence,
		EnrichTopK:        cfg.Search.EnrichTopK,
		EnrichConcurrency: cfg.Search.EnrichConcurrency,
		AltSpecialtyTerms: cfg.Search.AltSpecialtyTerms,
		LookupLimit:       cfg.Registry.Limit,
	}
	if cfg.Suggester.Enabled && cfg.Suggester.BaseURL != "" {
		svcCfg.Suggester = enrich.NewHTTPSuggester(cfg.Suggester.BaseURL, cfg.Suggester.Timeout, logger)
	}
	if cfg.Enrichment.Enabled && cfg.Enrichment.BaseURL != "" {
		svcCfg.Enricher = enrich.NewHTTPEnricher(cfg.Enrichment.BaseURL, cfg.Enrichment.Timeout, logger)
	}

	client := registry.NewClient(cfg.Registry.BaseURL, cfg.Registry.Timeout, logger)
	svc := search.NewService(store, client, svcCfg, logger)

	return &Components{
		Tables:  store,
		Sink:    sink,
		Service: svc,
	}, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (parsed facets, cascade stages, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Tables.Watch && cfg.Tables.Directory != "" {
		components.Watcher = tables.NewWatcher(components.Tables, logger)
		if err := components.Watcher.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start table watcher", zap.Error(err))
		}
	}

	srv := server.NewServer(
		components.Service,
		components.Tables,
		components.Sink,
		&cfg.Server,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the
// query to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: docscout search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
A query needs a provider name, or at least two of name, specialty, and location.

Examples:
  docscout search cardiologist in Seattle, WA
  docscout search "Dr. John Smith"
  docscout search --page 2 --page-size 10 dermatologist Portland, OR
`)
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPathFlag := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = run the search locally)")
	page := fs.Int("page", 1, "result page, 1-based")
	pageSize := fs.Int("page-size", models.DefaultPageSize, "results per page")
	radius := fs.Float64("radius", 0, "search radius in meters (0 = default)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	if fs.NArg() < 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}
	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}

	searchQuery := &models.SearchQuery{
		Query:    queryStr,
		Page:     *page,
		PageSize: *pageSize,
		Radius:   *radius,
	}

	var response *models.SearchResponse
	if *serverURL != "" {
		resp, err := searchViaHTTP(*serverURL, searchQuery)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		response = resp
	} else {
		cfg, _, err := loadConfig(*configPathFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()

		components, err := initializeComponents(cfg, logger)
		if err != nil {
			logger.Fatal("Failed to initialize", zap.Error(err))
		}
		defer components.Close()

		response, err = components.Service.Search(context.Background(), searchQuery)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(response); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		printSearchResults(response)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func printSearchResults(resp *models.SearchResponse) {
	if resp.ResultsCount == 0 {
		fmt.Println("No matching providers found.")
		for _, s := range resp.Suggestions {
			fmt.Printf("  hint: %s\n", s)
		}
		return
	}
	for i, r := range resp.Results {
		fmt.Printf("%d. %s", i+1, r.Name)
		if r.Specialty != "" {
			fmt.Printf("  [%s]", r.Specialty)
		}
		fmt.Println()
		if r.Location != "" {
			fmt.Printf("   %s", r.Location)
			if r.Phone != "" {
				fmt.Printf("  %s", r.Phone)
			}
			fmt.Println()
		}
		details := []string{fmt.Sprintf("confidence %.0f", r.Confidence.Total)}
		if r.Rating > 0 {
			details = append(details, fmt.Sprintf("rating %.1f", r.Rating))
		}
		if r.YearsExperience > 0 {
			details = append(details, fmt.Sprintf("%d years", r.YearsExperience))
		}
		fmt.Printf("   %s\n", strings.Join(details, ", "))
	}
	if p := resp.Pagination; p != nil && p.TotalPages > 1 {
		fmt.Printf("\npage %d of %d (%d total)\n", p.CurrentPage, p.TotalPages, p.TotalResults)
	}
}

func searchViaHTTP(serverURL string, query *models.SearchQuery) (*models.SearchResponse, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runSpecialties() {
	fs := flag.NewFlagSet("specialties", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Get(*serverURL + "/api/v1/specialties")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Request failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var out struct {
		Specialties []string `json:"specialties"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
		os.Exit(1)
	}
	for _, s := range out.Specialties {
		fmt.Println(s)
	}
}

func runHistory() {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	limit := fs.Int("limit", 20, "number of recent searches")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Get(fmt.Sprintf("%s/api/v1/history?limit=%d", *serverURL, *limit))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Request failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var out struct {
		Searches []history.Event `json:"searches"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
		os.Exit(1)
	}
	for _, e := range out.Searches {
		fmt.Printf("%s  %q  %d result(s)\n", e.CreatedAt.Format(time.RFC3339), e.Query, e.ResultCount)
	}
}

func printUsage() {
	fmt.Println(`docscout - physician search and ranking service

Usage:
  docscout server [flags]           Start the HTTP server
  docscout search [flags] <query>   Search for providers
  docscout specialties [flags]      List known specialties
  docscout history [flags]          Show recent searches
  docscout version                  Show version
  docscout help                     Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/docscout/config.yaml)
  --debug            Enable debug logging (parsed facets, cascade stages, etc.)

Search Flags:
  --config string      Config file path (for local mode)
  --server string      Server URL (default: http://localhost:8080). Use empty (--server "") to run the search locally.
  --page int           Result page, 1-based (default: 1)
  --page-size int      Results per page (default: 15)
  --radius float       Search radius in meters
  --output string      Output format: text or json (default: text)

Examples:
  docscout server
  docscout search cardiologist in Seattle, WA
  docscout search --output json "Dr. John Smith"
  docscout specialties
  docscout history --limit 10`)
}
