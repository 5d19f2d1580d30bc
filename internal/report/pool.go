package report

import (
	"fmt"
	"prospects/internal/aggregate"
	"prospects/internal/prospects"
	"slices"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

type poolGroup struct {
	title   string
	goalies bool
	players []prospects.Player
}

// Pool renders every player whose primary league this season is not the NHL, grouped by
// position. Skaters show their merged league line and the NHL translation, goalies their
// busiest line.
func Pool(players []prospects.Player, seasonEnd int, now time.Time) string {
	lw := &poolGroup{title: "Left wingers"}
	center := &poolGroup{title: "Centers"}
	rw := &poolGroup{title: "Right wingers"}
	lhd := &poolGroup{title: "Left-handed defensemen"}
	rhd := &poolGroup{title: "Right-handed defensemen"}
	goalie := &poolGroup{title: "Goaltenders", goalies: true}

	sorted := slices.Clone(players)
	slices.SortStableFunc(sorted, func(a, b prospects.Player) int {
		return strings.Compare(a.Name, b.Name)
	})

	for _, player := range sorted {
		league, ok := aggregate.PrimaryLeague(player, prospects.InSeason(player.Stats, seasonEnd))
		if !ok || league == "NHL" {
			continue
		}
		switch player.Position {
		case prospects.POSITION_DEFENSE:
			if player.Shoots == prospects.SHOOTS_LEFT {
				lhd.players = append(lhd.players, player)
			} else {
				rhd.players = append(rhd.players, player)
			}
		case prospects.POSITION_LEFT_WING:
			lw.players = append(lw.players, player)
		case prospects.POSITION_RIGHT_WING:
			rw.players = append(rw.players, player)
		case prospects.POSITION_WING:
			lw.players = append(lw.players, player)
			rw.players = append(rw.players, player)
		case prospects.POSITION_CENTER, prospects.POSITION_FORWARD:
			center.players = append(center.players, player)
		case prospects.POSITION_GOALIE:
			goalie.players = append(goalie.players, player)
		}
	}

	doc := &document{}
	for _, group := range []*poolGroup{lw, center, rw, lhd, rhd, goalie} {
		doc.heading(group.title)
		if group.goalies {
			doc.table(poolGoalies(group.players, seasonEnd, now))
		} else {
			doc.table(poolSkaters(group.players, seasonEnd, now))
		}
	}
	return doc.String()
}

func poolSkaters(players []prospects.Player, seasonEnd int, now time.Time) table.Writer {
	t := newTable("Player", "Age", "Height", "Weight", "League", "Team", "Games", "Goals", "Assists", "Points", "PPG", "Drafted", "PT/82")
	for _, player := range players {
		lines := prospects.InSeason(player.Stats, seasonEnd)
		summary, _ := aggregate.Skater(lines)
		translation := ""
		if value, ok := aggregate.Translation(lines); ok {
			translation = fmt.Sprintf("%.1f", value)
		}
		t.AppendRow(row(
			link(player.Name, player.URL),
			age(player, now),
			player.Height,
			player.Weight,
			summary.LeagueName,
			summary.TeamName,
			summary.Games,
			summary.Goals,
			summary.Assists,
			summary.Points(),
			fmt.Sprintf("%.2f", summary.PointsPerGame()),
			draftShort(player),
			translation,
		))
	}
	return t
}

func poolGoalies(players []prospects.Player, seasonEnd int, now time.Time) table.Writer {
	t := newTable("Player", "Age", "Height", "Weight", "League", "Team", "Games", "GAA", "SV%", "Drafted")
	for _, player := range players {
		line, _ := aggregate.Goalie(prospects.InSeason(player.Stats, seasonEnd))
		t.AppendRow(row(
			link(player.Name, player.URL),
			age(player, now),
			player.Height,
			player.Weight,
			line.LeagueName,
			line.TeamName,
			line.Games,
			goalAverage(line),
			savePercent(line),
			draftShort(player),
		))
	}
	return t
}
