// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/media-engine/internal/catalog"
	"github.com/pdiddy/media-engine/internal/library"
	"github.com/pdiddy/media-engine/internal/logging"
	"github.com/pdiddy/media-engine/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage user libraries",
	Long: `Library keeps each user's books and movies in a SQLite database under
library.data_dir. Recommendations are built from these entries.`,
}

var libraryAddCmd = &cobra.Command{
	Use:   "add <book|movie> <id>",
	Short: "Add a title to a user's library",
	Args:  cobra.ExactArgs(2),
	RunE:  runLibraryAdd,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove <book|movie> <id>",
	Short: "Remove a title from a user's library",
	Args:  cobra.ExactArgs(2),
	RunE:  runLibraryRemove,
}

var libraryListCmd = &cobra.Command{
	Use:   "list <book|movie>",
	Short: "List a user's library",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryList,
}

var libraryRefreshCmd = &cobra.Command{
	Use:   "refresh-genres <book|movie>",
	Short: "Resolve genres of library entries that have none",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryRefresh,
}

func init() {
	for _, c := range []*cobra.Command{libraryAddCmd, libraryRemoveCmd, libraryListCmd} {
		c.Flags().Int64("user", 0, "library owner")
		_ = c.MarkFlagRequired("user")
	}

	libraryCmd.AddCommand(libraryAddCmd, libraryRemoveCmd, libraryListCmd, libraryRefreshCmd)
	rootCmd.AddCommand(libraryCmd)
}

func parseKindArg(s string) (types.Kind, error) {
	kind, ok := types.ParseKind(s)
	if !ok {
		return "", fmt.Errorf("unknown kind %q (want book or movie)", s)
	}
	return kind, nil
}

func runLibraryAdd(cmd *cobra.Command, args []string) error {
	kind, err := parseKindArg(args[0])
	if err != nil {
		return err
	}
	userID, _ := cmd.Flags().GetInt64("user")
	ctx := cmd.Context()

	cfg := loadConfig()
	svc, err := newService(cfg)
	if err != nil {
		return err
	}
	store, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	entry := types.LibraryEntry{UserID: userID, Kind: kind, ExternalID: args[1]}
	t, err := svc.Lookup(ctx, kind, args[1])
	switch {
	case err == nil:
		entry.Title = t.Title
		entry.Genres = t.Genres
	case errors.Is(err, catalog.ErrNotFound):
		// Keep the id; refresh-genres can resolve it later.
		logging.Ctx(ctx).Warn().Str("id", args[1]).Msg("title not resolved, adding without metadata")
	default:
		return err
	}

	added, err := store.Add(ctx, entry)
	if err != nil {
		return err
	}
	if !added {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s is already in the library of user %d\n", kind, entry.ExternalID, userID)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s %q for user %d\n", kind, entry.ExternalID, entry.Title, userID)
	return nil
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	kind, err := parseKindArg(args[0])
	if err != nil {
		return err
	}
	userID, _ := cmd.Flags().GetInt64("user")

	store, err := openLibrary(loadConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Remove(cmd.Context(), userID, kind, args[1])
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%s %s is not in the library of user %d", kind, args[1], userID)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s for user %d\n", kind, args[1], userID)
	return nil
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	kind, err := parseKindArg(args[0])
	if err != nil {
		return err
	}
	userID, _ := cmd.Flags().GetInt64("user")

	store, err := openLibrary(loadConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Entries(cmd.Context(), userID, kind)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(w, "Library is empty.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%-14s  %-48s  %s\n", e.ExternalID, e.Title, strings.Join(e.Genres, ", "))
	}
	fmt.Fprintf(w, "\n%d entries\n", len(entries))
	return nil
}

func runLibraryRefresh(cmd *cobra.Command, args []string) error {
	kind, err := parseKindArg(args[0])
	if err != nil {
		return err
	}

	cfg := loadConfig()
	svc, err := newService(cfg)
	if err != nil {
		return err
	}
	store, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	res, err := refreshGenres(cmd.Context(), store, svc, kind)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %d, failed %d, total %d\n", res.updated, res.failed, res.total)
	return nil
}

type refreshResult struct {
	updated, failed, total int
}

// refreshGenres resolves each distinct id lacking genres once and stores
// the result on every entry with that id.
func refreshGenres(ctx context.Context, store *library.Store, svc *catalog.Service, kind types.Kind) (refreshResult, error) {
	entries, err := store.MissingGenres(ctx, kind)
	if err != nil {
		return refreshResult{}, err
	}

	var res refreshResult
	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.ExternalID] {
			continue
		}
		seen[e.ExternalID] = true
		res.total++

		genres, err := svc.Genres(ctx, kind, e.ExternalID)
		if err != nil || len(genres) == 0 {
			logging.Ctx(ctx).Warn().Err(err).Str("id", e.ExternalID).Msg("no genres resolved")
			res.failed++
			continue
		}
		if _, err := store.SetGenres(ctx, kind, e.ExternalID, genres); err != nil {
			return res, err
		}
		res.updated++
	}
	return res, nil
}
