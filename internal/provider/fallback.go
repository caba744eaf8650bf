// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/media-engine/pkg/types"
)

// Dataset is the static fallback served when providers return nothing. It
// is read-only after construction and safe for concurrent use.
type Dataset struct {
	titles []types.Title
}

// datasetFile is the YAML layout accepted by LoadDataset.
type datasetFile struct {
	Titles []types.Title `yaml:"titles"`
}

// NewDataset copies titles into a Dataset. Records without an external id
// or kind are ignored.
func NewDataset(titles []types.Title) *Dataset {
	d := &Dataset{titles: make([]types.Title, 0, len(titles))}
	for _, t := range titles {
		if t.ExternalID == "" || t.Kind == "" {
			continue
		}
		d.titles = append(d.titles, t.Clone())
	}
	return d
}

// DefaultDataset returns the built-in records.
func DefaultDataset() *Dataset {
	return NewDataset([]types.Title{
		{
			ExternalID:  "tt0133093",
			Kind:        types.KindMovie,
			Title:       "The Matrix",
			Synopsis:    "A computer hacker learns about the true nature of reality and fights to free humanity.",
			ImageURL:    "https://image.tmdb.org/t/p/w500/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg",
			ReleaseInfo: "1999",
			Rating:      ptr(8.7),
			VoteCount:   ptr(1900000),
		},
		{
			ExternalID:  "tt0234215",
			Kind:        types.KindMovie,
			Title:       "The Matrix Reloaded",
			Synopsis:    "Neo, Trinity, and Morpheus continue their war against the machines as a new threat looms.",
			ImageURL:    "https://image.tmdb.org/t/p/w500/9TGHDvWrqKBzwDxDodHYXEmOE6J.jpg",
			ReleaseInfo: "2003",
			Rating:      ptr(7.2),
			VoteCount:   ptr(650000),
		},
		{
			ExternalID:  "tt0242653",
			Kind:        types.KindMovie,
			Title:       "The Matrix Revolutions",
			Synopsis:    "Zion defends itself as Neo fights to end the war between humans and machines.",
			ImageURL:    "https://image.tmdb.org/t/p/w500/fgm8OZ7o4G1G1I9EeGCBiPwXhEu.jpg",
			ReleaseInfo: "2003",
			Rating:      ptr(6.7),
			VoteCount:   ptr(500000),
		},
	})
}

// LoadDataset reads a YAML file with a top-level "titles" list.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fallback dataset: %w", err)
	}
	var f datasetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fallback dataset %s: %w", path, err)
	}
	return NewDataset(f.Titles), nil
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.titles)
}

// Match returns copies of the records of kind whose title contains query,
// case-insensitively. An empty query matches every record of that kind.
func (d *Dataset) Match(kind types.Kind, query string) []types.Title {
	if d == nil {
		return nil
	}
	q := strings.ToLower(strings.TrimSpace(query))
	var out []types.Title
	for _, t := range d.titles {
		if t.Kind != kind {
			continue
		}
		if q == "" || strings.Contains(strings.ToLower(t.Title), q) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Lookup returns a copy of the record with the given kind and id.
func (d *Dataset) Lookup(kind types.Kind, id string) (types.Title, bool) {
	if d == nil {
		return types.Title{}, false
	}
	for _, t := range d.titles {
		if t.Kind == kind && t.ExternalID == id {
			return t.Clone(), true
		}
	}
	return types.Title{}, false
}

func ptr[T any](v T) *T { return &v }
