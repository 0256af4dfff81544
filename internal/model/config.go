package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete process configuration.
// Populated from defaults, then config file, then ORDSCAN_* environment
// variables, then CLI flags (highest priority).
type Config struct {
	HTTP         HTTPConfig        `yaml:"http"`
	Query        QueryConfig       `yaml:"query"`
	Cache        CacheConfig       `yaml:"cache"`
	RateLimiting RateConfig        `yaml:"rate_limiting"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency"`
	Output       OutputConfig      `yaml:"output"`
	LLM          LLMConfig         `yaml:"llm"`
}

// HTTPConfig controls the reaction database HTTP client.
type HTTPConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"` // per-request timeout
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty"`
}

// QueryConfig controls dataset query submission and polling.
type QueryConfig struct {
	Limit       int           `yaml:"limit"`        // max records per dataset
	PollTimeout time.Duration `yaml:"poll_timeout"` // overall wait per query task
}

// CacheConfig controls caching of fetched payloads (dataset listings and
// reaction summary documents).
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// RateConfig throttles requests to the remote service. The per-record delay
// while walking a dataset comes from this limiter.
type RateConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// ConcurrencyConfig controls dataset-level parallelism. Datasets are fully
// independent; a failure in one never affects the others.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig controls the run artifact and its optional filters.
type OutputConfig struct {
	Path       string `yaml:"path"`
	BaseOnly   bool   `yaml:"base_only"`
	SMILESOnly bool   `yaml:"smiles_only"`
	Verbose    bool   `yaml:"verbose"`
}

// LLMConfig configures the optional run-summary provider. Disabled unless a
// provider is named. Summaries never change what is aggregated or counted.
type LLMConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // environment only, never persisted
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			BaseURL:      "https://open-reaction-database.org",
			Timeout:      30 * time.Second,
			UserAgent:    "ordscan/0.1 (+https://github.com/ordlabs/ordscan)",
			MaxBodyBytes: 8_000_000,
		},
		Query: QueryConfig{
			Limit:       50,
			PollTimeout: 120 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		RateLimiting: RateConfig{
			RequestsPerSecond: 10, // ~100ms courtesy delay between records
			BurstSize:         1,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 1,
		},
		Output: OutputConfig{
			Path: "ords_components.json",
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ordscan-cache"
	}
	return filepath.Join(home, ".ordscan", "cache")
}
