// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"slices"
	"strings"

	"github.com/pdiddy/media-engine/pkg/types"
)

// SortBy selects the key movie search results are ordered by.
type SortBy string

const (
	SortNone            SortBy = ""
	SortPopularity      SortBy = "SORT_BY_POPULARITY"
	SortReleaseDate     SortBy = "SORT_BY_RELEASE_DATE"
	SortUserRating      SortBy = "SORT_BY_USER_RATING"
	SortUserRatingCount SortBy = "SORT_BY_USER_RATING_COUNT"
	SortYear            SortBy = "SORT_BY_YEAR"
)

// ParseSortBy accepts the SORT_BY_* names. Unknown values map to SortNone,
// so an invalid flag leaves provider order untouched.
func ParseSortBy(s string) SortBy {
	switch v := SortBy(strings.ToUpper(strings.TrimSpace(s))); v {
	case SortPopularity, SortReleaseDate, SortUserRating, SortUserRatingCount, SortYear:
		return v
	default:
		return SortNone
	}
}

// ParseSortOrder returns true for descending order. Anything other than
// "ASC" is descending.
func ParseSortOrder(s string) (desc bool) {
	return !strings.EqualFold(strings.TrimSpace(s), "ASC")
}

// GenreMatches reports whether t's genres contain genre as a
// case-insensitive substring of the comma-joined list. "Drama" therefore
// also matches "Melodrama"; callers rely on this looseness for providers
// without a genre filter.
func GenreMatches(t types.Title, genre string) bool {
	genre = strings.ToLower(strings.TrimSpace(genre))
	if genre == "" {
		return true
	}
	if len(t.Genres) == 0 {
		return false
	}
	return strings.Contains(strings.ToLower(strings.Join(t.Genres, ", ")), genre)
}

// FilterGenre keeps titles matching genre. An empty genre keeps everything.
func FilterGenre(titles []types.Title, genre string) []types.Title {
	if strings.TrimSpace(genre) == "" {
		return titles
	}
	out := make([]types.Title, 0, len(titles))
	for _, t := range titles {
		if GenreMatches(t, genre) {
			out = append(out, t)
		}
	}
	return out
}

// SortTitles orders titles in place by key. Titles missing the key keep their
// relative order after the others. The sort is stable.
func SortTitles(titles []types.Title, by SortBy, desc bool) {
	key := sortKey(by)
	if key == nil {
		return
	}
	slices.SortStableFunc(titles, func(a, b types.Title) int {
		ka, okA := key(a)
		kb, okB := key(b)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		c := compareFloat(ka, kb)
		if desc {
			return -c
		}
		return c
	})
}

func sortKey(by SortBy) func(types.Title) (float64, bool) {
	switch by {
	case SortPopularity, SortUserRatingCount:
		return func(t types.Title) (float64, bool) {
			if t.VoteCount == nil {
				return 0, false
			}
			return float64(*t.VoteCount), true
		}
	case SortUserRating:
		return func(t types.Title) (float64, bool) {
			if t.Rating == nil {
				return 0, false
			}
			return *t.Rating, true
		}
	case SortReleaseDate, SortYear:
		return func(t types.Title) (float64, bool) {
			y := t.Year()
			return float64(y), y > 0
		}
	default:
		return nil
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
