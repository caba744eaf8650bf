// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures of the media engine: the
// provider-agnostic Title record, library entries supplied by the caller, and
// the configuration for every stage.
package types

import (
	"slices"
	"strings"
)

// Kind distinguishes books from movies.
type Kind string

const (
	KindBook  Kind = "book"
	KindMovie Kind = "movie"
)

// ParseKind maps user input ("book", "books", "movie", "movies") to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "book", "books":
		return KindBook, true
	case "movie", "movies", "film", "films":
		return KindMovie, true
	default:
		return "", false
	}
}

// Title is the canonical record for a book or movie, independent of which
// provider produced it. Optional string fields are empty when absent; missing
// values from providers ("N/A", blanks) never reach these fields.
type Title struct {
	// ExternalID is the provider-scoped identifier (IMDb id, Google volume id).
	ExternalID string `json:"external_id" yaml:"external_id"`

	Kind  Kind   `json:"kind" yaml:"kind"`
	Title string `json:"title" yaml:"title"`

	// Synopsis is the plot or book description.
	Synopsis string `json:"synopsis,omitempty" yaml:"synopsis,omitempty"`

	ImageURL string `json:"image_url,omitempty" yaml:"image_url,omitempty"`

	// ReleaseInfo is a year or date string as reported by the provider.
	ReleaseInfo string `json:"release_info,omitempty" yaml:"release_info,omitempty"`

	Rating    *float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	VoteCount *int     `json:"vote_count,omitempty" yaml:"vote_count,omitempty"`

	// Genres is ordered and free of duplicates.
	Genres []string `json:"genres,omitempty" yaml:"genres,omitempty"`

	// People holds authors for books and cast for movies.
	People []string `json:"people,omitempty" yaml:"people,omitempty"`

	// Director is only set for movies.
	Director string `json:"director,omitempty" yaml:"director,omitempty"`
}

// Clone returns a deep copy so callers may modify slices and pointers freely.
func (t Title) Clone() Title {
	c := t
	if t.Rating != nil {
		r := *t.Rating
		c.Rating = &r
	}
	if t.VoteCount != nil {
		v := *t.VoteCount
		c.VoteCount = &v
	}
	c.Genres = slices.Clone(t.Genres)
	c.People = slices.Clone(t.People)
	return c
}

// Year returns the leading four-digit year of ReleaseInfo, or 0.
func (t Title) Year() int {
	return LeadingYear(t.ReleaseInfo)
}

// LeadingYear extracts a year from strings like "1999", "2003–2005" or
// "1999-03-31". It returns 0 when the string does not start with four digits.
func LeadingYear(s string) int {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return 0
	}
	year := 0
	for _, r := range s[:4] {
		if r < '0' || r > '9' {
			return 0
		}
		year = year*10 + int(r-'0')
	}
	return year
}

// LibraryEntry is one item in a user's personal library. Entries come from the
// surrounding persistence layer; the engine only reads them.
type LibraryEntry struct {
	UserID     int64  `json:"user_id" yaml:"user_id"`
	Kind       Kind   `json:"kind" yaml:"kind"`
	ExternalID string `json:"external_id" yaml:"external_id"`

	// Title and Genres are whatever the persistence layer last stored.
	Title  string   `json:"title,omitempty" yaml:"title,omitempty"`
	Genres []string `json:"genres,omitempty" yaml:"genres,omitempty"`
}
