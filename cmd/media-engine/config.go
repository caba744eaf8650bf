// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/viper"

	"github.com/pdiddy/media-engine/internal/catalog"
	"github.com/pdiddy/media-engine/internal/library"
	"github.com/pdiddy/media-engine/internal/provider"
	"github.com/pdiddy/media-engine/internal/secrets"
	"github.com/pdiddy/media-engine/pkg/types"
)

func setDefaults() {
	def := types.DefaultConfig()

	viper.SetDefault("enable_fallback", def.Engine.EnableFallback)
	viper.SetDefault("provider_api_key", "")
	viper.SetDefault("poster_provider_api_key", "")
	viper.SetDefault("books_api_key", "")
	viper.SetDefault("fallback_file", "")
	viper.SetDefault("enrich_concurrency", def.Engine.EnrichConcurrency)
	viper.SetDefault("timeouts.provider", def.Engine.Movies.Timeout)
	viper.SetDefault("timeouts.poster", def.Engine.Posters.Timeout)
	viper.SetDefault("requests_per_second", 0.0)
	viper.SetDefault("library.data_dir", def.Library.DataDir)
	viper.SetDefault("recommend.max_results", def.Recommend.MaxResults)
	viper.SetDefault("log.level", def.Log.Level)
	viper.SetDefault("log.format", def.Log.Format)
}

// loadConfig assembles a Config from viper, filling empty API keys from
// the secrets directory.
func loadConfig() types.Config {
	cfg := types.DefaultConfig()

	providerTimeout := viper.GetDuration("timeouts.provider")
	rps := viper.GetFloat64("requests_per_second")

	cfg.Engine.Movies.Timeout = providerTimeout
	cfg.Engine.Movies.RequestsPerSecond = rps
	cfg.Engine.Movies.APIKey = secretDefault(secrets.OMDbKey, viper.GetString("provider_api_key"))

	cfg.Engine.Books.Timeout = providerTimeout
	cfg.Engine.Books.RequestsPerSecond = rps
	cfg.Engine.Books.APIKey = secretDefault(secrets.GoogleBooksKey, viper.GetString("books_api_key"))

	cfg.Engine.Posters.Timeout = viper.GetDuration("timeouts.poster")
	cfg.Engine.Posters.RequestsPerSecond = rps
	cfg.Engine.Posters.APIKey = secretDefault(secrets.TMDbKey, viper.GetString("poster_provider_api_key"))

	cfg.Engine.EnableFallback = viper.GetBool("enable_fallback")
	cfg.Engine.FallbackFile = viper.GetString("fallback_file")
	cfg.Engine.EnrichConcurrency = viper.GetInt("enrich_concurrency")

	cfg.Library.DataDir = viper.GetString("library.data_dir")
	cfg.Recommend.MaxResults = viper.GetInt("recommend.max_results")
	cfg.Log.Level = viper.GetString("log.level")
	cfg.Log.Format = viper.GetString("log.format")
	return cfg
}

// newService wires the providers, poster fallback and fallback dataset.
func newService(cfg types.Config) (*catalog.Service, error) {
	dataset := provider.DefaultDataset()
	if cfg.Engine.FallbackFile != "" {
		d, err := provider.LoadDataset(cfg.Engine.FallbackFile)
		if err != nil {
			return nil, fmt.Errorf("loading fallback dataset: %w", err)
		}
		dataset = d
	}

	books := provider.NewGoogleBooks(cfg.Engine.Books, &http.Client{Timeout: cfg.Engine.Books.Timeout})
	movies := provider.NewOMDb(cfg.Engine.Movies, &http.Client{Timeout: cfg.Engine.Movies.Timeout})
	posters := provider.NewTMDb(cfg.Engine.Posters, &http.Client{Timeout: cfg.Engine.Posters.Timeout})

	return catalog.New(books, movies, posters, catalog.Options{
		Fallback:       dataset,
		EnableFallback: cfg.Engine.EnableFallback,
		Concurrency:    cfg.Engine.EnrichConcurrency,
	}), nil
}

func openLibrary(cfg types.Config) (*library.Store, error) {
	return library.Open(cfg.Library.DataDir)
}
