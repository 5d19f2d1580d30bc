package report

import (
	"prospects/internal/progress"
	"prospects/internal/prospects"
	"time"
)

// Progress renders what each player did since the previous snapshot. Skater rows without
// any points in the period are left out, a skater with no rows left is not listed.
func Progress(items []progress.PlayerProgress, now time.Time) string {
	skaters := newTable("Position", "Name", "Age", "League", "Team", "GP", "G", "A", "Pts", "+/-", "Draft")
	goalies := newTable("Position", "Name", "Age", "League", "Team", "GP", "SV%", "GAA", "Draft")

	for _, item := range items {
		if item.Player.Position.IsGoalie() {
			for i, line := range item.Lines {
				position, name, playerAge, draft := "-", "-", "-", "-"
				if i == 0 {
					position, name, playerAge, draft = item.Label, link(item.Player.Name, item.URL), age(item.Player, now), draftShort(item.Player)
				}
				goalies.AppendRow(row(
					position, name, playerAge,
					line.LeagueName, line.TeamName, line.Games,
					savePercent(line), goalAverage(line),
					draft,
				))
			}
			continue
		}

		var kept []prospects.StatLine
		for _, line := range item.Lines {
			if line.Points() != 0 {
				kept = append(kept, line)
			}
		}
		for i, line := range kept {
			position, name, playerAge, draft := "-", "-", "-", "-"
			if i == 0 {
				position, name, playerAge, draft = item.Label, link(item.Player.Name, item.URL), age(item.Player, now), draftShort(item.Player)
			}
			skaters.AppendRow(row(
				position, name, playerAge,
				line.LeagueName, line.TeamName, line.Games,
				line.Goals(), line.Assists(), line.Points(), line.PlusMinus(),
				draft,
			))
		}
	}

	doc := &document{}
	doc.heading("Skaters")
	doc.table(skaters)
	doc.rule()
	doc.heading("Goalies")
	doc.table(goalies)
	return doc.String()
}
