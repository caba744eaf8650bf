// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"context"
	"strings"

	"github.com/pdiddy/media-engine/internal/provider"
	"github.com/pdiddy/media-engine/pkg/types"
)

// unreliablePosterPrefix marks legacy IMDb image hosts whose links are
// usually dead.
const unreliablePosterPrefix = "http://ia.media-imdb.com"

// PosterSource resolves a poster URL from an IMDb id. It returns "" when
// nothing is found.
type PosterSource interface {
	Poster(ctx context.Context, imdbID string) string
}

// Movie converts an OMDb record into a Title. It returns nil when the record
// declares a type other than movie or series, or when it has no id, no title
// and no year. posters may be nil.
func Movie(ctx context.Context, rec provider.MovieRecord, posters PosterSource) *types.Title {
	if kind := strings.ToLower(Clean(rec.Type)); kind != "" && kind != "movie" && kind != "series" {
		return nil
	}

	id := Clean(rec.IMDbID)
	title := Clean(rec.Title)
	year := Clean(rec.Year)
	if id == "" && title == "" && year == "" {
		return nil
	}

	return &types.Title{
		ExternalID:  id,
		Kind:        types.KindMovie,
		Title:       title,
		Synopsis:    Clean(rec.Plot),
		ImageURL:    ResolvePoster(ctx, rec.Poster, id, posters),
		ReleaseInfo: year,
		Rating:      ParseRating(rec.IMDbRating),
		VoteCount:   ParseVotes(rec.IMDbVotes),
		Genres:      UniqueList(SplitList(rec.Genre)),
		People:      SplitList(rec.Actors),
		Director:    Clean(rec.Director),
	}
}

// ResolvePoster picks the poster URL in order of reliability: the provider's
// own URL when present and not on a known-dead host, then the poster source
// keyed by id, then nothing.
func ResolvePoster(ctx context.Context, raw, id string, posters PosterSource) string {
	if u := Clean(raw); u != "" && !strings.HasPrefix(u, unreliablePosterPrefix) {
		return u
	}
	if id == "" || posters == nil {
		return ""
	}
	return Clean(posters.Poster(ctx, id))
}
