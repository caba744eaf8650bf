// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/media-engine/internal/catalog"
	"github.com/pdiddy/media-engine/internal/recommend"
	"github.com/pdiddy/media-engine/pkg/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <books|movies>",
	Short: "Recommend titles from a user's library",
	Long: `Recommend reads the user's library, collects the genres and people of
the titles in it, and searches for more titles with the same signals.
Titles already in the library are never recommended.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().Int64("user", 0, "library owner")
	recommendCmd.Flags().Bool("json", false, "output recommendations as JSON")
	_ = recommendCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	kind, ok := types.ParseKind(args[0])
	if !ok {
		return fmt.Errorf("unknown kind %q (want books or movies)", args[0])
	}
	userID, _ := cmd.Flags().GetInt64("user")

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

	engine := recommend.New(store, svc, cfg.Recommend)
	titles, err := engine.Recommend(cmd.Context(), userID, kind)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	return render(cmd.OutOrStdout(), catalog.SearchOutput{Results: titles}, asJSON)
}
