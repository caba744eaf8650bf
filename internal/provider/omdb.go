// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/media-engine/internal/httputil"
	"github.com/pdiddy/media-engine/internal/logging"
	"github.com/pdiddy/media-engine/pkg/types"
)

// omdbBase is the OMDb API endpoint. Declared as a var so tests can
// substitute an httptest server.
var omdbBase = "https://www.omdbapi.com/"

const (
	omdbPageSize      = 10
	omdbMaxPages      = 10
	defaultMovieLimit = 10
)

// MovieQuery is a movie search request. Zero years mean "no bound".
type MovieQuery struct {
	Text      string
	Limit     int
	StartYear int
	EndYear   int
}

// MovieRecord is the flat record OMDb returns for search items and detail
// lookups. Search items only carry Title, Year, imdbID, Type and Poster.
type MovieRecord struct {
	IMDbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	Type       string `json:"Type"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	IMDbRating string `json:"imdbRating"`
	IMDbVotes  string `json:"imdbVotes"`
}

type omdbSearchResponse struct {
	Search       []MovieRecord `json:"Search"`
	TotalResults string        `json:"totalResults"`
	Response     string        `json:"Response"`
	Error        string        `json:"Error"`
}

type omdbDetailResponse struct {
	MovieRecord
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// OMDb is the movie search and detail adapter.
type OMDb struct {
	client *httputil.Client
	apiKey string
}

// NewOMDb builds the adapter. OMDb rejects requests without cfg.APIKey with
// a provider-reported error, which is treated as an empty result.
func NewOMDb(cfg types.ProviderConfig, httpClient *http.Client) *OMDb {
	return &OMDb{
		client: httputil.NewClient("omdb", cfg, httpClient),
		apiKey: cfg.APIKey,
	}
}

// Name returns the provider identifier.
func (o *OMDb) Name() string { return "omdb" }

// pagesFor returns how many result pages are needed to cover limit.
func pagesFor(limit int) int {
	return min(limit/omdbPageSize+1, omdbMaxPages)
}

// SearchMovies runs a paginated title search and returns at most q.Limit
// records. Pages are fetched in order until the limit is reached, a page is
// empty or a page fails. Year bounds are applied locally against the leading
// year of each record.
func (o *OMDb) SearchMovies(ctx context.Context, q MovieQuery) []MovieRecord {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultMovieLimit
	}

	params := url.Values{
		"s":    {text},
		"type": {"movie"},
		"r":    {"json"},
	}
	// The provider matches a single release year only.
	if q.StartYear > 0 && (q.EndYear == 0 || q.EndYear == q.StartYear) {
		params.Set("y", strconv.Itoa(q.StartYear))
	}
	o.setKey(params)

	var all []MovieRecord
	pages := pagesFor(limit)
	for page := 1; page <= pages && len(all) < limit; page++ {
		params.Set("page", strconv.Itoa(page))

		var resp omdbSearchResponse
		if err := o.client.GetJSON(ctx, omdbBase+"?"+params.Encode(), &resp); err != nil {
			logFailure(ctx, o.Name(), "search", err)
			break
		}
		if resp.Response == "False" {
			// "Movie not found!" past the last page is the normal end of results.
			if page == 1 {
				logProviderError(ctx, o.Name(), "search", resp.Error)
			}
			break
		}
		if len(resp.Search) == 0 {
			break
		}
		if page == 1 {
			logging.Ctx(ctx).Debug().Str("provider", o.Name()).Str("total_results", resp.TotalResults).
				Int("pages", pages).Msg("movie search")
		}
		all = append(all, resp.Search...)
	}

	if q.StartYear > 0 || q.EndYear > 0 {
		all = filterByYears(all, q.StartYear, q.EndYear)
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// filterByYears keeps records whose leading year lies within [start, end].
// A zero bound is open. Records without a parseable year are dropped.
func filterByYears(records []MovieRecord, start, end int) []MovieRecord {
	kept := records[:0]
	for _, r := range records {
		y := types.LeadingYear(r.Year)
		if y == 0 || (start > 0 && y < start) || (end > 0 && y > end) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// MovieDetail looks up one title by IMDb id with the full plot. It returns
// nil when the title is unknown or the provider could not be reached.
func (o *OMDb) MovieDetail(ctx context.Context, imdbID string) *MovieRecord {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return nil
	}

	params := url.Values{
		"i":    {imdbID},
		"plot": {"full"},
		"r":    {"json"},
	}
	o.setKey(params)

	var resp omdbDetailResponse
	if err := o.client.GetJSON(ctx, omdbBase+"?"+params.Encode(), &resp); err != nil {
		logFailure(ctx, o.Name(), "detail", err)
		return nil
	}
	if resp.Response != "True" {
		logProviderError(ctx, o.Name(), "detail", resp.Error)
		return nil
	}
	rec := resp.MovieRecord
	return &rec
}

func (o *OMDb) setKey(params url.Values) {
	if o.apiKey != "" {
		params.Set("apikey", o.apiKey)
	}
}
