// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/media-engine/internal/catalog"
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Display results saved with --save",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rf, err := catalog.ReadResultFile(args[0])
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		if !asJSON {
			fmt.Fprintf(cmd.OutOrStdout(), "%s search %q saved %s\n\n",
				rf.Query.Kind, rf.Query.Text, rf.Summary.Timestamp.Format("2006-01-02 15:04"))
		}
		return render(cmd.OutOrStdout(), rf.Output(), asJSON)
	},
}

func init() {
	showCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(showCmd)
}
