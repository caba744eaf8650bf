// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"github.com/pdiddy/media-engine/pkg/types"
)

// FormatTable writes results as a human-readable table to w.
func FormatTable(out SearchOutput, w io.Writer) {
	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-14s  %-48s  %-4s  %-6s  %s\n",
		"#", "ID", "Title", "Year", "Rating", "Genres")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, t := range out.Results {
		year := ""
		if y := t.Year(); y > 0 {
			year = fmt.Sprintf("%d", y)
		}
		rating := ""
		if t.Rating != nil {
			rating = fmt.Sprintf("%.1f", *t.Rating)
		}
		fmt.Fprintf(w, "%-4d  %-14s  %-48s  %-4s  %-6s  %s\n",
			i+1, truncate(t.ExternalID, 14), truncate(t.Title, 48), year, rating,
			truncate(strings.Join(t.Genres, ", "), 30))
	}

	fmt.Fprintf(w, "\n%d results", len(out.Results))
	if out.DupsRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", out.DupsRemoved)
	}
	if out.Fallback {
		fmt.Fprint(w, " (from fallback dataset)")
	}
	fmt.Fprintln(w)
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(out SearchOutput, w io.Writer) error {
	return writeJSON(w, out.Results)
}

// FormatTitle writes one title as labelled lines.
func FormatTitle(t types.Title, w io.Writer) {
	fmt.Fprintf(w, "%s  (%s %s)\n", t.Title, t.Kind, t.ExternalID)
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "  %-9s %s\n", label+":", value)
		}
	}
	line("Released", t.ReleaseInfo)
	if t.Rating != nil {
		votes := ""
		if t.VoteCount != nil {
			votes = fmt.Sprintf(" (%d votes)", *t.VoteCount)
		}
		line("Rating", fmt.Sprintf("%.1f%s", *t.Rating, votes))
	}
	line("Genres", strings.Join(t.Genres, ", "))
	if t.Kind == types.KindBook {
		line("Authors", strings.Join(t.People, ", "))
	} else {
		line("Director", t.Director)
		line("Cast", strings.Join(t.People, ", "))
	}
	line("Image", t.ImageURL)
	if t.Synopsis != "" {
		fmt.Fprintf(w, "\n%s\n", t.Synopsis)
	}
}

// FormatTitleJSON writes one title as indented JSON to w.
func FormatTitleJSON(t types.Title, w io.Writer) error {
	return writeJSON(w, t)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
