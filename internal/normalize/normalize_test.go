// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/media-engine/internal/provider"
	"github.com/pdiddy/media-engine/pkg/types"
)

type stubPosters struct {
	url   string
	calls []string
}

func (s *stubPosters) Poster(_ context.Context, id string) string {
	s.calls = append(s.calls, id)
	return s.url
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"8.7", ptr(8.7)},
		{" 6 ", ptr(6.0)},
		{"N/A", nil},
		{"", nil},
		{"eight", nil},
		{"NaN", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseRating(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestParseVotes(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"1,900,000", ptr(1900000)},
		{"650000", ptr(650000)},
		{"", nil},
		{"N/A", nil},
		{"1.9M", nil},
		{"-5", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseVotes(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Action", "Sci-Fi"}, SplitList("Action, Sci-Fi"))
	assert.Equal(t, []string{"A", "B"}, SplitList(" A ,, B , "))
	assert.Nil(t, SplitList("N/A"))
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" , "))
}

func TestUniqueList(t *testing.T) {
	assert.Equal(t, []string{"Drama", "Crime"}, UniqueList([]string{"Drama", " Crime", "drama", "", "N/A"}))
}

func TestMovie_DetailRecord(t *testing.T) {
	rec := provider.MovieRecord{
		IMDbID:     "tt0133093",
		Title:      "The Matrix",
		Year:       "1999",
		Plot:       "A hacker learns the truth.",
		Poster:     "https://m.media-amazon.com/matrix.jpg",
		Type:       "movie",
		Genre:      "Action, Sci-Fi",
		Director:   "Lana Wachowski, Lilly Wachowski",
		Actors:     "Keanu Reeves, Laurence Fishburne",
		IMDbRating: "8.7",
		IMDbVotes:  "1,900,000",
	}
	posters := &stubPosters{url: "https://image.tmdb.org/x.jpg"}

	got := Movie(context.Background(), rec, posters)
	require.NotNil(t, got)
	assert.Equal(t, "tt0133093", got.ExternalID)
	assert.Equal(t, types.KindMovie, got.Kind)
	assert.Equal(t, "https://m.media-amazon.com/matrix.jpg", got.ImageURL)
	assert.Empty(t, posters.calls, "a usable provider poster must not trigger a lookup")
	assert.Equal(t, []string{"Action", "Sci-Fi"}, got.Genres)
	assert.Equal(t, []string{"Keanu Reeves", "Laurence Fishburne"}, got.People)
	assert.Equal(t, "Lana Wachowski, Lilly Wachowski", got.Director)
	assert.InDelta(t, 8.7, *got.Rating, 1e-9)
	assert.Equal(t, 1900000, *got.VoteCount)
	assert.Equal(t, 1999, got.Year())
}

func TestMovie_SentinelsBecomeAbsent(t *testing.T) {
	rec := provider.MovieRecord{
		IMDbID:     "tt1",
		Title:      "Obscure",
		Year:       "2001",
		Plot:       "N/A",
		Poster:     "N/A",
		Genre:      "N/A",
		Director:   "N/A",
		Actors:     "N/A",
		IMDbRating: "N/A",
		IMDbVotes:  "N/A",
	}

	got := Movie(context.Background(), rec, nil)
	require.NotNil(t, got)
	assert.Empty(t, got.Synopsis)
	assert.Empty(t, got.ImageURL)
	assert.Nil(t, got.Genres)
	assert.Nil(t, got.People)
	assert.Empty(t, got.Director)
	assert.Nil(t, got.Rating)
	assert.Nil(t, got.VoteCount)
}

func TestMovie_Rejections(t *testing.T) {
	tests := []struct {
		name string
		rec  provider.MovieRecord
	}{
		{"episode type", provider.MovieRecord{IMDbID: "tt1", Title: "Pilot", Type: "episode"}},
		{"game type", provider.MovieRecord{IMDbID: "tt2", Title: "Game", Type: "game"}},
		{"no signal", provider.MovieRecord{IMDbID: "N/A", Title: "", Year: "N/A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Movie(context.Background(), tt.rec, nil))
		})
	}
}

func TestMovie_AcceptsSeriesAndIDLessRecords(t *testing.T) {
	series := Movie(context.Background(), provider.MovieRecord{IMDbID: "tt9", Title: "Show", Type: "Series"}, nil)
	require.NotNil(t, series)

	noID := Movie(context.Background(), provider.MovieRecord{Title: "Untracked", Year: "1990"}, nil)
	require.NotNil(t, noID)
	assert.Empty(t, noID.ExternalID)
}

func TestResolvePoster(t *testing.T) {
	ctx := context.Background()

	t.Run("unreliable host falls back", func(t *testing.T) {
		p := &stubPosters{url: "https://image.tmdb.org/t/p/w500/a.jpg"}
		got := ResolvePoster(ctx, "http://ia.media-imdb.com/images/M/a.jpg", "tt1", p)
		assert.Equal(t, "https://image.tmdb.org/t/p/w500/a.jpg", got)
		assert.Equal(t, []string{"tt1"}, p.calls)
	})

	t.Run("sentinel falls back", func(t *testing.T) {
		p := &stubPosters{url: "https://image.tmdb.org/t/p/w500/b.jpg"}
		assert.Equal(t, "https://image.tmdb.org/t/p/w500/b.jpg", ResolvePoster(ctx, "N/A", "tt2", p))
	})

	t.Run("no id skips lookup", func(t *testing.T) {
		p := &stubPosters{url: "https://image.tmdb.org/t/p/w500/c.jpg"}
		assert.Empty(t, ResolvePoster(ctx, "", "", p))
		assert.Empty(t, p.calls)
	})

	t.Run("lookup miss", func(t *testing.T) {
		assert.Empty(t, ResolvePoster(ctx, "N/A", "tt3", &stubPosters{}))
	})

	t.Run("nil source", func(t *testing.T) {
		assert.Empty(t, ResolvePoster(ctx, "N/A", "tt3", nil))
	})
}

func TestBook(t *testing.T) {
	v := provider.Volume{
		ID: "zyTCAlFPjgYC",
		VolumeInfo: provider.VolumeInfo{
			Title:         "The Left Hand of Darkness",
			Authors:       []string{"Ursula K. Le Guin", " "},
			Description:   "Winter.",
			ImageLinks:    provider.ImageLinks{SmallThumbnail: "http://s.jpg"},
			Categories:    []string{"Fiction", "fiction", "Science Fiction"},
			PublishedDate: "1969-03-01",
			AverageRating: ptr(4.5),
			RatingsCount:  ptr(120),
		},
	}

	got := Book(v)
	require.NotNil(t, got)
	assert.Equal(t, types.KindBook, got.Kind)
	assert.Equal(t, "http://s.jpg", got.ImageURL)
	assert.Equal(t, []string{"Ursula K. Le Guin"}, got.People)
	assert.Equal(t, []string{"Fiction", "Science Fiction"}, got.Genres)
	assert.Equal(t, "1969", got.ReleaseInfo)
	assert.InDelta(t, 4.5, *got.Rating, 1e-9)
	assert.Equal(t, 120, *got.VoteCount)

	// The source volume is not aliased.
	*v.VolumeInfo.AverageRating = 1
	assert.InDelta(t, 4.5, *got.Rating, 1e-9)
}

func TestBook_Edges(t *testing.T) {
	assert.Nil(t, Book(provider.Volume{VolumeInfo: provider.VolumeInfo{Title: "No id"}}))

	got := Book(provider.Volume{ID: "x", VolumeInfo: provider.VolumeInfo{PublishedDate: "circa"}})
	require.NotNil(t, got)
	assert.Equal(t, "circa", got.ReleaseInfo)
	assert.Nil(t, got.Genres)
	assert.Nil(t, got.Rating)
}

func ptr[T any](v T) *T { return &v }
