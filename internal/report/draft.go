package report

import (
	"fmt"
	"prospects/internal/prospects"
	"slices"
	"time"
)

const (
	checked   = "☑"
	unchecked = "☐"
)

// Draft renders the players drafted in the given year by overall pick, each with their
// bio and the lines of the season ending that year. Tournament lines come last.
func Draft(players []prospects.Player, year int, now time.Time) string {
	var class []prospects.Player
	for _, player := range players {
		if player.Draft != nil && player.Draft.Year == year {
			class = append(class, player)
		}
	}
	slices.SortStableFunc(class, func(a, b prospects.Player) int {
		return a.Draft.Overall - b.Draft.Overall
	})

	doc := &document{}
	for _, player := range class {
		doc.item(fmt.Sprintf("%s #%d", link(player.Name, player.URL), player.Draft.Overall))

		bio := newTable("Name", "Age", "Birthday", "Nation", "Position", "Shoots", "Height", "Weight")
		birthday := "-"
		if !player.Birthday.IsZero() {
			birthday = player.Birthday.Format(time.DateOnly)
		}
		bio.AppendRow(row(
			player.Name,
			age(player, now),
			birthday,
			player.Nation,
			player.Position.String(),
			player.Shoots.String(),
			player.Height,
			player.Weight,
		))
		doc.table(bio)

		var lines []prospects.StatLine
		for _, line := range player.Stats {
			if line.SeasonEnd == year {
				lines = append(lines, line)
			}
		}
		slices.SortStableFunc(lines, func(a, b prospects.StatLine) int {
			return boolRank(a.Tournament) - boolRank(b.Tournament)
		})

		stats := newTable("Tournament", "Team Name", "League Name", "GP", "Goals", "Assists", "Points", "+/-")
		for _, line := range lines {
			mark := unchecked
			if line.Tournament {
				mark = checked
			}
			stats.AppendRow(row(
				mark,
				line.TeamName,
				line.LeagueName,
				line.Games,
				line.Goals(),
				line.Assists(),
				line.Points(),
				line.PlusMinus(),
			))
		}
		doc.table(stats)
	}
	if len(class) == 0 {
		doc.blocks = append(doc.blocks, fmt.Sprintf("No players drafted in %d.", year))
	}
	return doc.String()
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
