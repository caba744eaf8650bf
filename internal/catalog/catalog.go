// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog resolves book and movie metadata from external providers
// into canonical, deduplicated Titles. Searches run provider → normalize →
// enrich → deduplicate, and fall back to a static dataset when that pipeline
// yields nothing and fallback is enabled.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/media-engine/internal/logging"
	"github.com/pdiddy/media-engine/internal/metrics"
	"github.com/pdiddy/media-engine/internal/normalize"
	"github.com/pdiddy/media-engine/internal/provider"
	"github.com/pdiddy/media-engine/pkg/types"
)

var (
	// ErrNotFound is returned by single-title lookups when neither the
	// provider nor the fallback dataset has the title.
	ErrNotFound = errors.New("title not found")

	// ErrEmptyQuery is returned when a search has no searchable text.
	ErrEmptyQuery = errors.New("query is empty")
)

// BookSource is the book provider. Implementations return empty results
// instead of transport errors.
type BookSource interface {
	SearchVolumes(ctx context.Context, q provider.BookQuery) []provider.Volume
	Volume(ctx context.Context, id string) *provider.Volume
}

// MovieSource is the movie search and detail provider. Implementations
// return empty results instead of transport errors.
type MovieSource interface {
	SearchMovies(ctx context.Context, q provider.MovieQuery) []provider.MovieRecord
	MovieDetail(ctx context.Context, imdbID string) *provider.MovieRecord
}

// Options configures a Service.
type Options struct {
	// Fallback is served when a pipeline yields nothing. Nil disables it.
	Fallback *provider.Dataset

	// EnableFallback gates the use of Fallback.
	EnableFallback bool

	// Concurrency caps parallel detail lookups per page.
	Concurrency int
}

// Service exposes search and lookup for books and movies. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	books          BookSource
	movies         MovieSource
	posters        normalize.PosterSource
	fallback       *provider.Dataset
	enableFallback bool

	bookEnricher  Enricher[provider.Volume]
	movieEnricher Enricher[provider.MovieRecord]
}

// New builds a Service. posters may be nil to skip poster fallback lookups.
func New(books BookSource, movies MovieSource, posters normalize.PosterSource, opts Options) *Service {
	s := &Service{
		books:          books,
		movies:         movies,
		posters:        posters,
		fallback:       opts.Fallback,
		enableFallback: opts.EnableFallback && opts.Fallback != nil,
	}

	s.bookEnricher = Enricher[provider.Volume]{
		Kind:        types.KindBook,
		Concurrency: opts.Concurrency,
		ID:          func(v provider.Volume) string { return normalize.Clean(v.ID) },
		NeedsDetail: func(v provider.Volume) bool { return len(normalize.CleanList(v.VolumeInfo.Categories)) == 0 },
		Detail:      books.Volume,
		Normalize:   func(_ context.Context, v provider.Volume) *types.Title { return normalize.Book(v) },
	}
	s.movieEnricher = Enricher[provider.MovieRecord]{
		Kind:        types.KindMovie,
		Concurrency: opts.Concurrency,
		ID:          func(r provider.MovieRecord) string { return normalize.Clean(r.IMDbID) },
		NeedsDetail: func(r provider.MovieRecord) bool { return normalize.IsMissing(r.Genre) },
		Detail:      movies.MovieDetail,
		Normalize: func(ctx context.Context, r provider.MovieRecord) *types.Title {
			return normalize.Movie(ctx, r, s.posters)
		},
	}
	return s
}

// SearchOutput holds search results and bookkeeping for display.
type SearchOutput struct {
	Results     []types.Title
	DupsRemoved int

	// Fallback is true when Results came from the static dataset.
	Fallback bool
}

// MovieSearch holds movie search parameters. Zero values mean "unset".
type MovieSearch struct {
	Query     string
	Limit     int
	StartYear int
	EndYear   int
	Genre     string
	SortBy    SortBy
	Desc      bool
}

// SearchBooks searches the book provider and enriches volumes lacking
// categories with a detail lookup.
func (s *Service) SearchBooks(ctx context.Context, q provider.BookQuery) (SearchOutput, error) {
	if q.String() == "" {
		return SearchOutput{}, ErrEmptyQuery
	}

	volumes := s.books.SearchVolumes(ctx, q)
	titles, removed := Deduplicate(s.bookEnricher.Enrich(ctx, volumes))
	logging.Ctx(ctx).Debug().Str("query", q.String()).Int("raw", len(volumes)).Int("results", len(titles)).
		Msg("book search")

	if len(titles) == 0 {
		return s.searchFallback(ctx, types.KindBook, q.Text), nil
	}
	return SearchOutput{Results: titles, DupsRemoved: removed}, nil
}

// SearchMovies searches the movie provider, enriches every result with its
// detail record, then applies the genre filter and sort order.
func (s *Service) SearchMovies(ctx context.Context, ms MovieSearch) (SearchOutput, error) {
	if strings.TrimSpace(ms.Query) == "" {
		return SearchOutput{}, ErrEmptyQuery
	}
	if ms.StartYear > 0 && ms.EndYear > 0 && ms.StartYear > ms.EndYear {
		return SearchOutput{}, fmt.Errorf("start year %d is after end year %d", ms.StartYear, ms.EndYear)
	}

	records := s.movies.SearchMovies(ctx, provider.MovieQuery{
		Text:      ms.Query,
		Limit:     ms.Limit,
		StartYear: ms.StartYear,
		EndYear:   ms.EndYear,
	})
	titles, removed := Deduplicate(s.movieEnricher.Enrich(ctx, records))

	// Fallback depends on what the provider returned, not on what survives
	// the genre filter.
	if len(titles) == 0 {
		out := s.searchFallback(ctx, types.KindMovie, ms.Query)
		if ms.Limit > 0 && len(out.Results) > ms.Limit {
			out.Results = out.Results[:ms.Limit]
		}
		return out, nil
	}

	filtered := FilterGenre(titles, ms.Genre)
	SortTitles(filtered, ms.SortBy, ms.Desc)
	logging.Ctx(ctx).Debug().Str("query", ms.Query).Int("raw", len(records)).Int("results", len(filtered)).
		Msg("movie search")
	return SearchOutput{Results: filtered, DupsRemoved: removed}, nil
}

// GetBook resolves one book by volume id.
func (s *Service) GetBook(ctx context.Context, id string) (types.Title, error) {
	return s.Lookup(ctx, types.KindBook, id)
}

// GetMovie resolves one movie by IMDb id.
func (s *Service) GetMovie(ctx context.Context, id string) (types.Title, error) {
	return s.Lookup(ctx, types.KindMovie, id)
}

// Lookup resolves one title by kind and external id. The provider is asked
// first, then the fallback dataset. It returns ErrNotFound when both miss.
func (s *Service) Lookup(ctx context.Context, kind types.Kind, id string) (types.Title, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.Title{}, fmt.Errorf("%s with empty id: %w", kind, ErrNotFound)
	}

	var t *types.Title
	switch kind {
	case types.KindBook:
		if v := s.books.Volume(ctx, id); v != nil {
			t = normalize.Book(*v)
		}
	case types.KindMovie:
		if rec := s.movies.MovieDetail(ctx, id); rec != nil {
			t = normalize.Movie(ctx, *rec, s.posters)
		}
	default:
		return types.Title{}, fmt.Errorf("unknown kind %q", kind)
	}
	if t != nil && t.ExternalID != "" {
		return *t, nil
	}

	if s.enableFallback {
		if ft, ok := s.fallback.Lookup(kind, id); ok {
			metrics.FallbackServed.WithLabelValues(string(kind), "lookup").Inc()
			logging.Ctx(ctx).Info().Str("kind", string(kind)).Str("id", id).Msg("serving title from fallback dataset")
			return ft, nil
		}
	}
	return types.Title{}, fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

// Genres returns the current genres of a title, for refreshing records
// stored without them.
func (s *Service) Genres(ctx context.Context, kind types.Kind, id string) ([]string, error) {
	t, err := s.Lookup(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return t.Genres, nil
}

func (s *Service) searchFallback(ctx context.Context, kind types.Kind, query string) SearchOutput {
	if !s.enableFallback {
		return SearchOutput{}
	}
	titles := s.fallback.Match(kind, query)
	if len(titles) == 0 {
		return SearchOutput{}
	}
	metrics.FallbackServed.WithLabelValues(string(kind), "search").Inc()
	logging.Ctx(ctx).Info().Str("kind", string(kind)).Str("query", query).Int("results", len(titles)).
		Msg("provider returned nothing, serving fallback dataset")
	return SearchOutput{Results: titles, Fallback: true}
}
