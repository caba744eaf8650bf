// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by every provider client.
type HTTPConfig struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "media-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ProviderConfig configures one external data provider.
type ProviderConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the provider credential. Optional for some providers.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxAttempts bounds the number of tries per logical call (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// RequestsPerSecond throttles calls to the provider. Zero disables throttling.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// EngineConfig holds settings for search, lookup and enrichment.
type EngineConfig struct {
	// Books configures the bibliographic provider (Google Books).
	Books ProviderConfig `json:"books" yaml:"books"`

	// Movies configures the movie search and detail provider (OMDb).
	Movies ProviderConfig `json:"movies" yaml:"movies"`

	// Posters configures the poster fallback provider (TMDb). Poster lookups
	// are skipped entirely when Posters.APIKey is empty.
	Posters ProviderConfig `json:"posters" yaml:"posters"`

	// EnableFallback serves the static dataset when providers return nothing.
	EnableFallback bool `json:"enable_fallback" yaml:"enable_fallback"`

	// FallbackFile replaces the built-in fallback dataset when set.
	FallbackFile string `json:"fallback_file,omitempty" yaml:"fallback_file,omitempty"`

	// EnrichConcurrency caps parallel detail lookups per page (default 10).
	EnrichConcurrency int `json:"enrich_concurrency" yaml:"enrich_concurrency"`
}

// RecommendConfig holds settings for the recommendation engine.
type RecommendConfig struct {
	// MaxResults caps the recommendation list. It may lower the cap but
	// never raise it above MaxRecommendations.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// MaxGenres is the number of genre signals queried (default 3).
	MaxGenres int `json:"max_genres" yaml:"max_genres"`

	// MaxPeople is the number of author signals queried for books (default 2).
	MaxPeople int `json:"max_people" yaml:"max_people"`

	// MinCandidates is the pool size below which later phases run (default 20).
	MinCandidates int `json:"min_candidates" yaml:"min_candidates"`

	// PopularTerms pad the movie candidate pool when signals yield too little.
	PopularTerms []string `json:"popular_terms" yaml:"popular_terms"`
}

// LibraryConfig holds settings for the SQLite library store.
type LibraryConfig struct {
	// DataDir contains the library database file.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// LogConfig selects log verbosity and output format.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Config groups all configuration for the engine and its CLI.
type Config struct {
	Engine    EngineConfig    `json:"engine" yaml:"engine"`
	Recommend RecommendConfig `json:"recommend" yaml:"recommend"`
	Library   LibraryConfig   `json:"library" yaml:"library"`
	Log       LogConfig       `json:"log" yaml:"log"`
}

const (
	DefaultUserAgent       = "media-engine/0.1"
	DefaultProviderTimeout = 10 * time.Second
	DefaultPosterTimeout   = 5 * time.Second
	DefaultMaxAttempts     = 3

	// MaxRecommendations is the hard cap on a recommendation list.
	MaxRecommendations = 30
)

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	provider := ProviderConfig{
		HTTPConfig:  HTTPConfig{Timeout: DefaultProviderTimeout, UserAgent: DefaultUserAgent},
		MaxAttempts: DefaultMaxAttempts,
	}
	posters := provider
	posters.Timeout = DefaultPosterTimeout
	// Posters are best-effort: one try, short timeout.
	posters.MaxAttempts = 1

	return Config{
		Engine: EngineConfig{
			Books:             provider,
			Movies:            provider,
			Posters:           posters,
			EnableFallback:    true,
			EnrichConcurrency: 10,
		},
		Recommend: DefaultRecommendConfig(),
		Library:   LibraryConfig{DataDir: "data"},
		Log:       LogConfig{Level: "info", Format: "console"},
	}
}

// DefaultRecommendConfig returns the recommendation limits.
func DefaultRecommendConfig() RecommendConfig {
	return RecommendConfig{
		MaxResults:    MaxRecommendations,
		MaxGenres:     3,
		MaxPeople:     2,
		MinCandidates: 20,
		PopularTerms:  []string{"action", "drama"},
	}
}
