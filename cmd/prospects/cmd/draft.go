package cmd

import (
	"fmt"
	"prospects/internal/report"

	"github.com/spf13/cobra"
)

var draftYear int

func init() {
	draftCmd.Flags().IntVar(&draftYear, "year", 0, "draft year to render")
	draftCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(draftCmd)
}

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Renders the organization's picks of one draft class.",
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
		fmt.Fprint(cmd.OutOrStdout(), report.Draft(players(snap), draftYear, a.time.Now()))
		return nil
	},
}
