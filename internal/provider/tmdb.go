// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/media-engine/internal/httputil"
	"github.com/pdiddy/media-engine/internal/logging"
	"github.com/pdiddy/media-engine/pkg/types"
)

// tmdbBase and tmdbImageBase are declared as vars so tests can substitute an
// httptest server.
var (
	tmdbBase      = "https://api.themoviedb.org/3"
	tmdbImageBase = "https://image.tmdb.org/t/p/w500"
)

type tmdbFindResponse struct {
	MovieResults []struct {
		PosterPath string `json:"poster_path"`
	} `json:"movie_results"`
}

// TMDb resolves posters by IMDb id. It is best-effort: every failure yields "".
type TMDb struct {
	client *httputil.Client
	apiKey string
}

// NewTMDb builds the poster adapter. With an empty cfg.APIKey every lookup
// returns "" without touching the network.
func NewTMDb(cfg types.ProviderConfig, httpClient *http.Client) *TMDb {
	return &TMDb{
		client: httputil.NewClient("tmdb", cfg, httpClient),
		apiKey: cfg.APIKey,
	}
}

// Name returns the provider identifier.
func (t *TMDb) Name() string { return "tmdb" }

// Enabled reports whether lookups will be attempted.
func (t *TMDb) Enabled() bool { return t != nil && t.apiKey != "" }

// Poster returns the w500 poster URL of the first movie matching imdbID.
func (t *TMDb) Poster(ctx context.Context, imdbID string) string {
	imdbID = strings.TrimSpace(imdbID)
	if !t.Enabled() || imdbID == "" {
		return ""
	}

	params := url.Values{
		"api_key":         {t.apiKey},
		"external_source": {"imdb_id"},
	}
	reqURL := tmdbBase + "/find/" + url.PathEscape(imdbID) + "?" + params.Encode()

	var resp tmdbFindResponse
	if err := t.client.GetJSON(ctx, reqURL, &resp); err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("imdb_id", imdbID).Msg("poster lookup failed")
		return ""
	}
	if len(resp.MovieResults) == 0 || resp.MovieResults[0].PosterPath == "" {
		return ""
	}
	return tmdbImageBase + resp.MovieResults[0].PosterPath
}
