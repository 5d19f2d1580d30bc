package cmd

import (
	"fmt"
	"prospects/internal/report"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(poolCmd)
}

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Renders the prospects playing outside the NHL this season.",
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
		fmt.Fprint(cmd.OutOrStdout(), report.Pool(players(snap), a.seasonEnd(), a.time.Now()))
		return nil
	},
}
