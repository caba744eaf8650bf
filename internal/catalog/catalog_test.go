// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/media-engine/internal/provider"
	"github.com/pdiddy/media-engine/pkg/types"
)

func newTestService(books *fakeBooks, movies *fakeMovies, fallback bool) *Service {
	return New(books, movies, fakePosters{url: "https://image.tmdb.org/t/p/w500/p.jpg"}, Options{
		Fallback:       provider.DefaultDataset(),
		EnableFallback: fallback,
		Concurrency:    4,
	})
}

func TestSearchMovies_EnrichesAndDeduplicates(t *testing.T) {
	movies := &fakeMovies{
		results: []provider.MovieRecord{
			{IMDbID: "tt0133093", Title: "The Matrix", Year: "1999", Type: "movie", Poster: "N/A"},
			{IMDbID: "tt0234215", Title: "The Matrix Reloaded", Year: "2003", Type: "movie"},
			{IMDbID: "tt0133093", Title: "The Matrix", Year: "1999", Type: "movie"},
		},
		details: map[string]provider.MovieRecord{
			"tt0133093": {IMDbID: "tt0133093", Title: "The Matrix", Year: "1999", Genre: "Action, Sci-Fi", IMDbRating: "8.7", Poster: "N/A"},
		},
		failing: map[string]bool{"tt0234215": true},
	}
	svc := newTestService(&fakeBooks{}, movies, true)

	out, err := svc.SearchMovies(context.Background(), MovieSearch{Query: "matrix", Limit: 10})
	require.NoError(t, err)
	assert.False(t, out.Fallback)
	assert.Equal(t, 1, out.DupsRemoved)
	require.Len(t, out.Results, 2)

	assert.Equal(t, "tt0133093", out.Results[0].ExternalID)
	assert.Equal(t, []string{"Action", "Sci-Fi"}, out.Results[0].Genres)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/p.jpg", out.Results[0].ImageURL)

	// Failed detail lookup degrades to the search-level record.
	assert.Equal(t, "tt0234215", out.Results[1].ExternalID)
	assert.Equal(t, "The Matrix Reloaded", out.Results[1].Title)

	require.Len(t, movies.searches, 1)
	assert.Equal(t, 10, movies.searches[0].Limit)
}

func TestSearchMovies_GenreAndSort(t *testing.T) {
	movies := &fakeMovies{
		results: []provider.MovieRecord{
			{IMDbID: "tt1", Title: "A", Year: "2001", Genre: "Drama", IMDbRating: "6.0"},
			{IMDbID: "tt2", Title: "B", Year: "2002", Genre: "Comedy", IMDbRating: "9.0"},
			{IMDbID: "tt3", Title: "C", Year: "2003", Genre: "Crime, Drama", IMDbRating: "8.0"},
		},
	}
	svc := newTestService(&fakeBooks{}, movies, true)

	out, err := svc.SearchMovies(context.Background(), MovieSearch{
		Query:  "x",
		Genre:  "drama",
		SortBy: SortUserRating,
		Desc:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"tt3", "tt1"}, ids(out.Results))
	assert.Empty(t, movies.detailCalls, "records with genres need no detail lookup")
}

func TestSearchMovies_Fallback(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		svc := newTestService(&fakeBooks{}, &fakeMovies{}, true)
		out, err := svc.SearchMovies(context.Background(), MovieSearch{Query: "matrix"})
		require.NoError(t, err)
		assert.True(t, out.Fallback)
		assert.Len(t, out.Results, 3)
	})

	t.Run("disabled", func(t *testing.T) {
		svc := newTestService(&fakeBooks{}, &fakeMovies{}, false)
		out, err := svc.SearchMovies(context.Background(), MovieSearch{Query: "matrix"})
		require.NoError(t, err)
		assert.False(t, out.Fallback)
		assert.Empty(t, out.Results)
	})

	t.Run("limit applies", func(t *testing.T) {
		svc := newTestService(&fakeBooks{}, &fakeMovies{}, true)
		out, err := svc.SearchMovies(context.Background(), MovieSearch{Query: "matrix", Limit: 2})
		require.NoError(t, err)
		assert.Len(t, out.Results, 2)
	})

	t.Run("no match", func(t *testing.T) {
		svc := newTestService(&fakeBooks{}, &fakeMovies{}, true)
		out, err := svc.SearchMovies(context.Background(), MovieSearch{Query: "inception"})
		require.NoError(t, err)
		assert.Empty(t, out.Results)
	})

	t.Run("not used when genre filter empties provider results", func(t *testing.T) {
		movies := &fakeMovies{results: []provider.MovieRecord{{IMDbID: "tt9", Title: "The Matrix Online", Genre: "Action"}}}
		svc := newTestService(&fakeBooks{}, movies, true)
		out, err := svc.SearchMovies(context.Background(), MovieSearch{Query: "matrix", Genre: "Comedy"})
		require.NoError(t, err)
		assert.False(t, out.Fallback)
		assert.Empty(t, out.Results)
	})

	t.Run("not used when provider has results", func(t *testing.T) {
		movies := &fakeMovies{results: []provider.MovieRecord{{IMDbID: "tt9", Title: "The Matrix Online", Genre: "Action"}}}
		svc := newTestService(&fakeBooks{}, movies, true)
		out, err := svc.SearchMovies(context.Background(), MovieSearch{Query: "matrix"})
		require.NoError(t, err)
		assert.False(t, out.Fallback)
		assert.Equal(t, []string{"tt9"}, ids(out.Results))
	})
}

func TestSearchMovies_InvalidInput(t *testing.T) {
	svc := newTestService(&fakeBooks{}, &fakeMovies{}, true)

	_, err := svc.SearchMovies(context.Background(), MovieSearch{Query: "  "})
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = svc.SearchMovies(context.Background(), MovieSearch{Query: "x", StartYear: 2010, EndYear: 2000})
	assert.Error(t, err)
}

func TestSearchBooks_EnrichesOnlyMissingCategories(t *testing.T) {
	books := &fakeBooks{
		results: []provider.Volume{
			{ID: "b1", VolumeInfo: provider.VolumeInfo{Title: "Has categories", Categories: []string{"Fiction"}}},
			{ID: "b2", VolumeInfo: provider.VolumeInfo{Title: "Needs detail"}},
		},
		volumes: map[string]provider.Volume{
			"b2": {ID: "b2", VolumeInfo: provider.VolumeInfo{Title: "Needs detail", Categories: []string{"History"}}},
		},
	}
	svc := newTestService(books, &fakeMovies{}, true)

	out, err := svc.SearchBooks(context.Background(), provider.BookQuery{Text: "anything"})
	require.NoError(t, err)
	require.Len(t, out.Results, 2)
	assert.Equal(t, []string{"Fiction"}, out.Results[0].Genres)
	assert.Equal(t, []string{"History"}, out.Results[1].Genres)
	assert.Equal(t, []string{"b2"}, books.detailCalls)
}

func TestSearchBooks_EmptyQuery(t *testing.T) {
	svc := newTestService(&fakeBooks{}, &fakeMovies{}, true)
	_, err := svc.SearchBooks(context.Background(), provider.BookQuery{Field: provider.FieldAuthor})
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearchBooks_NoBookFallbackByDefault(t *testing.T) {
	svc := newTestService(&fakeBooks{}, &fakeMovies{}, true)
	out, err := svc.SearchBooks(context.Background(), provider.BookQuery{Text: "matrix"})
	require.NoError(t, err)
	assert.Empty(t, out.Results, "the default dataset holds movies only")
}

func TestLookup(t *testing.T) {
	movies := &fakeMovies{details: map[string]provider.MovieRecord{
		"tt1375666": {IMDbID: "tt1375666", Title: "Inception", Year: "2010", Genre: "Action, Sci-Fi", Poster: "https://m.media-amazon.com/i.jpg"},
	}}
	books := &fakeBooks{volumes: map[string]provider.Volume{
		"b1": {ID: "b1", VolumeInfo: provider.VolumeInfo{Title: "Dune", Categories: []string{"Fiction"}}},
	}}
	svc := newTestService(books, movies, true)
	ctx := context.Background()

	m, err := svc.GetMovie(ctx, "tt1375666")
	require.NoError(t, err)
	assert.Equal(t, "Inception", m.Title)
	assert.Equal(t, "https://m.media-amazon.com/i.jpg", m.ImageURL)

	b, err := svc.GetBook(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, types.KindBook, b.Kind)

	// Unknown to the provider but present in the fallback dataset.
	fb, err := svc.GetMovie(ctx, "tt0133093")
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", fb.Title)

	_, err = svc.GetMovie(ctx, "tt0000001")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.GetBook(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Lookup(ctx, types.Kind("game"), "x")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestLookup_FallbackDisabled(t *testing.T) {
	svc := newTestService(&fakeBooks{}, &fakeMovies{}, false)
	_, err := svc.GetMovie(context.Background(), "tt0133093")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenres(t *testing.T) {
	movies := &fakeMovies{details: map[string]provider.MovieRecord{
		"tt1": {IMDbID: "tt1", Title: "X", Genre: "Horror, Horror, Thriller"},
	}}
	svc := newTestService(&fakeBooks{}, movies, false)

	genres, err := svc.Genres(context.Background(), types.KindMovie, "tt1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Horror", "Thriller"}, genres)

	_, err = svc.Genres(context.Background(), types.KindMovie, "tt2")
	assert.ErrorIs(t, err, ErrNotFound)
}
