// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/media-engine/internal/catalog"
	"github.com/pdiddy/media-engine/internal/logging"
	"github.com/pdiddy/media-engine/internal/provider"
	"github.com/pdiddy/media-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search providers for books or movies",
	Long: `Search queries Google Books or OMDb, enriches results that lack genres
with a detail lookup, and removes duplicate titles. When nothing is found
and fallback is enabled, matching titles from the static dataset are shown.`,
}

var searchBooksCmd = &cobra.Command{
	Use:   "books <query>",
	Short: "Search Google Books",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearchBooks,
}

var searchMoviesCmd = &cobra.Command{
	Use:   "movies <query>",
	Short: "Search OMDb",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearchMovies,
}

func init() {
	searchBooksCmd.Flags().String("field", "any", "restrict the query: any, title, author, isbn, subject")
	searchBooksCmd.Flags().Int("limit", 0, "maximum number of volumes to request (provider default when 0)")
	searchBooksCmd.Flags().Bool("json", false, "output results as JSON")
	searchBooksCmd.Flags().String("save", "", "save query and results to a YAML file")

	searchMoviesCmd.Flags().Int("limit", 10, "maximum number of movies to return")
	searchMoviesCmd.Flags().Int("from-year", 0, "earliest release year")
	searchMoviesCmd.Flags().Int("to-year", 0, "latest release year")
	searchMoviesCmd.Flags().String("genre", "", "keep movies whose genres contain this value")
	searchMoviesCmd.Flags().String("sort-by", "", "SORT_BY_POPULARITY, SORT_BY_RELEASE_DATE, SORT_BY_USER_RATING, SORT_BY_USER_RATING_COUNT, SORT_BY_YEAR")
	searchMoviesCmd.Flags().String("sort-order", "DESC", "ASC or DESC")
	searchMoviesCmd.Flags().Bool("json", false, "output results as JSON")
	searchMoviesCmd.Flags().String("save", "", "save query and results to a YAML file")

	searchCmd.AddCommand(searchBooksCmd, searchMoviesCmd)
	rootCmd.AddCommand(searchCmd)
}

func runSearchBooks(cmd *cobra.Command, args []string) error {
	fieldFlag, _ := cmd.Flags().GetString("field")
	field, err := provider.ParseBookField(fieldFlag)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	svc, err := newService(loadConfig())
	if err != nil {
		return err
	}

	q := provider.BookQuery{Text: strings.Join(args, " "), Field: field, MaxResults: limit}
	out, err := svc.SearchBooks(cmd.Context(), q)
	if err != nil {
		return err
	}

	saved := catalog.ResultQuery{Kind: types.KindBook, Text: q.Text, Field: string(field), Limit: limit}
	return emit(cmd, saved, out)
}

func runSearchMovies(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	from, _ := cmd.Flags().GetInt("from-year")
	to, _ := cmd.Flags().GetInt("to-year")
	genre, _ := cmd.Flags().GetString("genre")
	sortBy, _ := cmd.Flags().GetString("sort-by")
	sortOrder, _ := cmd.Flags().GetString("sort-order")

	svc, err := newService(loadConfig())
	if err != nil {
		return err
	}

	ms := catalog.MovieSearch{
		Query:     strings.Join(args, " "),
		Limit:     limit,
		StartYear: from,
		EndYear:   to,
		Genre:     genre,
		SortBy:    catalog.ParseSortBy(sortBy),
		Desc:      catalog.ParseSortOrder(sortOrder),
	}
	out, err := svc.SearchMovies(cmd.Context(), ms)
	if err != nil {
		return err
	}

	saved := catalog.ResultQuery{
		Kind:      types.KindMovie,
		Text:      ms.Query,
		Limit:     limit,
		StartYear: from,
		EndYear:   to,
		Genre:     genre,
		SortBy:    string(ms.SortBy),
		SortOrder: sortOrder,
	}
	return emit(cmd, saved, out)
}

// emit saves results when --save is set and writes them to stdout.
func emit(cmd *cobra.Command, q catalog.ResultQuery, out catalog.SearchOutput) error {
	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := catalog.WriteResultFile(path, q, out); err != nil {
			return fmt.Errorf("saving results: %w", err)
		}
		logging.Ctx(cmd.Context()).Info().Str("file", path).Int("results", len(out.Results)).Msg("results saved")
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	return render(cmd.OutOrStdout(), out, asJSON)
}

func render(w io.Writer, out catalog.SearchOutput, asJSON bool) error {
	if asJSON {
		return catalog.FormatJSON(out, w)
	}
	catalog.FormatTable(out, w)
	return nil
}
