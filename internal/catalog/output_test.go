// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/media-engine/pkg/types"
)

func sampleOutput() SearchOutput {
	rating := 8.7
	votes := 1900000
	return SearchOutput{
		Results: []types.Title{
			{
				ExternalID:  "tt0133093",
				Kind:        types.KindMovie,
				Title:       "The Matrix",
				ReleaseInfo: "1999",
				Rating:      &rating,
				VoteCount:   &votes,
				Genres:      []string{"Action", "Sci-Fi"},
				People:      []string{"Keanu Reeves"},
				Director:    "Lana Wachowski",
			},
			{ExternalID: "tt0234215", Kind: types.KindMovie, Title: "The Matrix Reloaded"},
		},
		DupsRemoved: 1,
	}
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(sampleOutput(), &buf)
	s := buf.String()

	assert.Contains(t, s, "The Matrix")
	assert.Contains(t, s, "1999")
	assert.Contains(t, s, "8.7")
	assert.Contains(t, s, "Action, Sci-Fi")
	assert.Contains(t, s, "2 results (1 duplicates removed)")
}

func TestFormatTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(SearchOutput{}, &buf)
	assert.Equal(t, "No results found.\n", buf.String())
}

func TestFormatTable_Fallback(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(SearchOutput{Results: sampleOutput().Results[:1], Fallback: true}, &buf)
	assert.Contains(t, buf.String(), "from fallback dataset")
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(sampleOutput(), &buf))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "tt0133093", decoded[0]["external_id"])
	assert.Equal(t, 8.7, decoded[0]["rating"])
	_, hasRating := decoded[1]["rating"]
	assert.False(t, hasRating, "absent values are omitted, not null")
}

func TestFormatTitle(t *testing.T) {
	var buf bytes.Buffer
	FormatTitle(sampleOutput().Results[0], &buf)
	s := buf.String()

	assert.True(t, strings.HasPrefix(s, "The Matrix  (movie tt0133093)"))
	assert.Contains(t, s, "8.7 (1900000 votes)")
	assert.Contains(t, s, "Director: Lana Wachowski")
	assert.NotContains(t, s, "Authors")
}

func TestResultFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.yaml")
	q := ResultQuery{Kind: types.KindMovie, Text: "matrix", Limit: 10, SortBy: string(SortYear)}

	require.NoError(t, WriteResultFile(path, q, sampleOutput()))

	rf, err := ReadResultFile(path)
	require.NoError(t, err)
	assert.Equal(t, q, rf.Query)
	assert.Equal(t, 2, rf.Summary.Total)
	assert.Equal(t, 1, rf.Summary.DuplicatesRemoved)
	assert.False(t, rf.Summary.Timestamp.IsZero())

	out := rf.Output()
	require.Len(t, out.Results, 2)
	assert.InDelta(t, 8.7, *out.Results[0].Rating, 1e-9)
	assert.Equal(t, []string{"Action", "Sci-Fi"}, out.Results[0].Genres)
}

func TestReadResultFile_Missing(t *testing.T) {
	_, err := ReadResultFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
