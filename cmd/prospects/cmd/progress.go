package cmd

import (
	"errors"
	"fmt"
	"prospects/internal/progress"
	"prospects/internal/prospects"
	"prospects/internal/report"
	"prospects/internal/snapshot"
	"time"

	"github.com/spf13/cobra"
)

var progressDay string

func init() {
	progressCmd.Flags().StringVar(&progressDay, "day", "", "compare the stored snapshot of this day (YYYY-MM-DD) instead of scraping today's")
	rootCmd.AddCommand(progressCmd)
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Renders what every prospect did since the previous snapshot.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, config)
		if err != nil {
			return err
		}
		defer a.close()

		var current prospects.Snapshot
		if progressDay != "" {
			day, err := time.Parse(snapshot.DayLayout, progressDay)
			if err != nil {
				return fmt.Errorf("invalid --day: %w", err)
			}
			current, err = a.snapshots.Get(ctx, day)
			if err != nil {
				return fmt.Errorf("snapshot of %s: %w", progressDay, err)
			}
		} else {
			current, err = a.scrape(ctx)
			if err != nil {
				return err
			}
		}

		previous, err := a.snapshots.LatestBefore(ctx, current.TakenOn)
		if errors.Is(err, snapshot.ErrNotFound) {
			a.tel.ReportWarning("cli.progress", "no earlier snapshot, reporting full season totals")
			previous = prospects.Snapshot{Players: map[string]prospects.Player{}}
		} else if err != nil {
			return err
		}

		items := progress.Report(current, previous, a.seasonEnd())
		fmt.Fprint(cmd.OutOrStdout(), report.Progress(items, a.time.Now()))
		return nil
	},
}
