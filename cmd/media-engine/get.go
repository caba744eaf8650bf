// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/media-engine/internal/catalog"
	"github.com/pdiddy/media-engine/pkg/types"
)

var getCmd = &cobra.Command{
	Use:   "get <book|movie> <id>",
	Short: "Show one book or movie by provider id",
	Long: `Get resolves a Google Books volume id or an IMDb id to a full title
record. Unknown ids exit with an error unless the fallback dataset holds
the id.`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

func init() {
	getCmd.Flags().Bool("json", false, "output the title as JSON")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	kind, ok := types.ParseKind(args[0])
	if !ok {
		return fmt.Errorf("unknown kind %q (want book or movie)", args[0])
	}

	svc, err := newService(loadConfig())
	if err != nil {
		return err
	}

	t, err := svc.Lookup(cmd.Context(), kind, args[1])
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return catalog.FormatTitleJSON(t, cmd.OutOrStdout())
	}
	catalog.FormatTitle(t, cmd.OutOrStdout())
	return nil
}
