// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"

	"github.com/pdiddy/media-engine/internal/provider"
	"github.com/pdiddy/media-engine/pkg/types"
)

var yearPattern = regexp.MustCompile(`\d{4}`)

// Book converts a Google Books volume into a Title. It returns nil for
// volumes without an id.
func Book(v provider.Volume) *types.Title {
	id := Clean(v.ID)
	if id == "" {
		return nil
	}
	info := v.VolumeInfo

	image := Clean(info.ImageLinks.Thumbnail)
	if image == "" {
		image = Clean(info.ImageLinks.SmallThumbnail)
	}

	t := &types.Title{
		ExternalID:  id,
		Kind:        types.KindBook,
		Title:       Clean(info.Title),
		Synopsis:    Clean(info.Description),
		ImageURL:    image,
		ReleaseInfo: publishedYear(info.PublishedDate),
		Genres:      UniqueList(info.Categories),
		People:      CleanList(info.Authors),
	}
	if info.AverageRating != nil {
		r := *info.AverageRating
		t.Rating = &r
	}
	if info.RatingsCount != nil && *info.RatingsCount >= 0 {
		n := *info.RatingsCount
		t.VoteCount = &n
	}
	return t
}

// publishedYear reduces "1969-03-01" to "1969". Dates without a four-digit
// run are kept as given.
func publishedYear(date string) string {
	date = Clean(date)
	if y := yearPattern.FindString(date); y != "" {
		return y
	}
	return date
}
