package cmd

import (
	"fmt"
	"prospects/internal/snapshot"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Reads every configured organization and stores today's snapshot.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), config)
		if err != nil {
			return err
		}
		defer a.close()

		snap, err := a.scrape(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d players on %s\n", len(snap.Players), snapshot.Day(snap.TakenOn))
		return nil
	},
}
