// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recommend builds content-based recommendations from a user's
// library. It extracts genre and people signals from the titles the user
// owns, re-queries the catalog per signal, and returns a capped list of
// titles the user does not own yet, in discovery order.
//
// There is no relevance scoring: a candidate is kept when it matches a
// signal, is not in the library, and arrived before the cap was reached.
package recommend

import (
	"context"
	"fmt"

	"github.com/pdiddy/media-engine/internal/catalog"
	"github.com/pdiddy/media-engine/internal/logging"
	"github.com/pdiddy/media-engine/internal/metrics"
	"github.com/pdiddy/media-engine/internal/provider"
	"github.com/pdiddy/media-engine/pkg/types"
)

const (
	// bookResultsPerQuery is how many volumes each book signal query keeps.
	bookResultsPerQuery = 10

	// movieGenreSearchLimit and movieGenreCandidates bound the generic search
	// issued per movie genre and how many of its results are inspected.
	movieGenreSearchLimit = 20
	movieGenreCandidates  = 15

	// popularSearchLimit bounds each popular-term movie search.
	popularSearchLimit = 15
)

// Library reads a user's library entries of one kind.
type Library interface {
	Entries(ctx context.Context, userID int64, kind types.Kind) ([]types.LibraryEntry, error)
}

// Catalog resolves and searches titles. *catalog.Service implements it.
type Catalog interface {
	Lookup(ctx context.Context, kind types.Kind, id string) (types.Title, error)
	SearchBooks(ctx context.Context, q provider.BookQuery) (catalog.SearchOutput, error)
	SearchMovies(ctx context.Context, q catalog.MovieSearch) (catalog.SearchOutput, error)
}

// Engine produces recommendations. It keeps no state between calls.
type Engine struct {
	library Library
	catalog Catalog
	cfg     types.RecommendConfig
}

// New builds an Engine. Zero fields in cfg take their defaults and
// MaxResults is clamped to types.MaxRecommendations.
func New(library Library, cat Catalog, cfg types.RecommendConfig) *Engine {
	def := types.DefaultRecommendConfig()
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = def.MaxResults
	}
	cfg.MaxResults = min(cfg.MaxResults, types.MaxRecommendations)
	if cfg.MaxGenres <= 0 {
		cfg.MaxGenres = def.MaxGenres
	}
	if cfg.MaxPeople <= 0 {
		cfg.MaxPeople = def.MaxPeople
	}
	if cfg.MinCandidates <= 0 {
		cfg.MinCandidates = def.MinCandidates
	}
	if cfg.PopularTerms == nil {
		cfg.PopularTerms = def.PopularTerms
	}
	return &Engine{library: library, catalog: cat, cfg: cfg}
}

// Books recommends books for userID.
func (e *Engine) Books(ctx context.Context, userID int64) ([]types.Title, error) {
	return e.Recommend(ctx, userID, types.KindBook)
}

// Movies recommends movies for userID.
func (e *Engine) Movies(ctx context.Context, userID int64) ([]types.Title, error) {
	return e.Recommend(ctx, userID, types.KindMovie)
}

// Recommend runs one recommendation pass. Only a library read failure is
// returned as an error; every provider-side failure shrinks the result
// instead. The result never contains a title from the library and never
// exceeds the configured maximum.
func (e *Engine) Recommend(ctx context.Context, userID int64, kind types.Kind) ([]types.Title, error) {
	log := logging.Ctx(ctx).With().Int64("user_id", userID).Str("kind", string(kind)).Logger()

	entries, err := e.library.Entries(ctx, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("reading library of user %d: %w", userID, err)
	}
	if len(entries) == 0 {
		log.Info().Msg("library is empty, nothing to recommend")
		return e.done(kind, nil), nil
	}

	signals := e.extractSignals(ctx, kind, entries)
	if signals.Empty() {
		log.Info().Int("entries", len(entries)).Msg("no genre or people signals in library")
		return e.done(kind, nil), nil
	}

	owned := make([]string, 0, len(entries))
	for _, entry := range entries {
		owned = append(owned, entry.ExternalID)
	}
	p := newPool(owned, e.cfg.MaxResults)

	switch kind {
	case types.KindBook:
		e.bookGenrePhase(ctx, signals, p)
		afterGenres := p.len()
		if p.len() < e.cfg.MinCandidates {
			e.bookPeoplePhase(ctx, signals, p)
		}
		log.Info().Int("genre_candidates", afterGenres).Int("total", p.len()).Msg("book recommendations")
	case types.KindMovie:
		e.movieGenrePhase(ctx, signals, p)
		afterGenres := p.len()
		if p.len() < e.cfg.MinCandidates {
			e.popularPhase(ctx, p)
		}
		log.Info().Int("genre_candidates", afterGenres).Int("total", p.len()).Msg("movie recommendations")
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}

	return e.done(kind, p.titles), nil
}

// extractSignals resolves each library entry and folds its genres and
// people into the signal sets. Entries that fail to resolve are skipped.
func (e *Engine) extractSignals(ctx context.Context, kind types.Kind, entries []types.LibraryEntry) Signals {
	signals := newSignals()
	for _, entry := range entries {
		t, err := e.catalog.Lookup(ctx, kind, entry.ExternalID)
		if err != nil {
			logging.Ctx(ctx).Debug().Err(err).Str("id", entry.ExternalID).Msg("skipping unresolved library entry")
			continue
		}
		signals.addTitle(t)
	}
	return signals
}

func (e *Engine) bookGenrePhase(ctx context.Context, s Signals, p *pool) {
	for _, genre := range s.genres.first(e.cfg.MaxGenres) {
		if p.full() {
			return
		}
		e.addBooks(ctx, provider.BookQuery{Text: genre, Field: provider.FieldSubject, MaxResults: bookResultsPerQuery}, p)
	}
}

func (e *Engine) bookPeoplePhase(ctx context.Context, s Signals, p *pool) {
	for _, author := range s.people.first(e.cfg.MaxPeople) {
		if p.full() {
			return
		}
		e.addBooks(ctx, provider.BookQuery{Text: author, Field: provider.FieldAuthor, MaxResults: bookResultsPerQuery}, p)
	}
}

func (e *Engine) addBooks(ctx context.Context, q provider.BookQuery, p *pool) {
	out, err := e.catalog.SearchBooks(ctx, q)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("query", q.String()).Msg("book signal query failed")
		return
	}
	for _, t := range head(out.Results, bookResultsPerQuery) {
		p.add(t)
	}
}

// movieGenrePhase searches each genre as free text and keeps results whose
// genres contain it, since the movie provider cannot filter by genre.
func (e *Engine) movieGenrePhase(ctx context.Context, s Signals, p *pool) {
	for _, genre := range s.genres.first(e.cfg.MaxGenres) {
		if p.full() {
			return
		}
		out, err := e.catalog.SearchMovies(ctx, catalog.MovieSearch{Query: genre, Limit: movieGenreSearchLimit})
		if err != nil {
			logging.Ctx(ctx).Debug().Err(err).Str("genre", genre).Msg("movie genre query failed")
			continue
		}
		for _, t := range head(out.Results, movieGenreCandidates) {
			if catalog.GenreMatches(t, genre) {
				p.add(t)
			}
		}
	}
}

// popularPhase pads the movie pool with broad searches.
func (e *Engine) popularPhase(ctx context.Context, p *pool) {
	for _, term := range e.cfg.PopularTerms {
		if p.full() {
			return
		}
		out, err := e.catalog.SearchMovies(ctx, catalog.MovieSearch{Query: term, Limit: popularSearchLimit})
		if err != nil {
			logging.Ctx(ctx).Debug().Err(err).Str("term", term).Msg("popular query failed")
			continue
		}
		for _, t := range out.Results {
			p.add(t)
		}
	}
}

func (e *Engine) done(kind types.Kind, titles []types.Title) []types.Title {
	metrics.RecommendationSize.WithLabelValues(string(kind)).Observe(float64(len(titles)))
	if titles == nil {
		return []types.Title{}
	}
	return titles
}

func head(titles []types.Title, n int) []types.Title {
	if len(titles) > n {
		return titles[:n]
	}
	return titles
}
