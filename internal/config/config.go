package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// MaxItemsPerCategory caps how many items a single retrieval category
	// may return before truncation is recorded.
	MaxItemsPerCategory int `json:"max_items_per_category"`

	// BundleTokenBudget is the hard token budget for an assembled context
	// bundle.
	BundleTokenBudget int `json:"bundle_token_budget"`

	// BundleCharsPerToken is the characters-per-token ratio used by the
	// bundle size estimator: tokens = ceil(chars / ratio).
	BundleCharsPerToken int `json:"bundle_chars_per_token"`

	// MaxIngestCells limits how many cells a single ingestion may carry.
	// 0 means unlimited.
	MaxIngestCells int `json:"max_ingest_cells,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// 0 means use sql.DB default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are ignored at registration time.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxItemsPerCategory: 10,
		BundleTokenBudget:   1500,
		BundleCharsPerToken: 4,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.sift.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.MaxItemsPerCategory = overlay.MaxItemsPerCategory
	if result.MaxItemsPerCategory == 0 {
		result.MaxItemsPerCategory = base.MaxItemsPerCategory
	}

	result.BundleTokenBudget = overlay.BundleTokenBudget
	if result.BundleTokenBudget == 0 {
		result.BundleTokenBudget = base.BundleTokenBudget
	}

	result.BundleCharsPerToken = overlay.BundleCharsPerToken
	if result.BundleCharsPerToken == 0 {
		result.BundleCharsPerToken = base.BundleCharsPerToken
	}

	result.MaxIngestCells = overlay.MaxIngestCells
	if result.MaxIngestCells == 0 {
		result.MaxIngestCells = base.MaxIngestCells
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
