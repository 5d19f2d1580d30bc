package aggregate

import (
	"math"
	"prospects/internal/prospects"
	"strings"
)

// LeagueSummary is the merged line of every stint a skater played in one league.
type LeagueSummary struct {
	// LeagueName is upper-cased.
	LeagueName string
	// TeamName joins the distinct team names with " / " in first-seen order.
	TeamName  string
	Games     int
	Goals     int
	Assists   int
	PlusMinus int
}

func (s LeagueSummary) Points() int {
	return s.Goals + s.Assists
}

// PointsPerGame is 0 when no games were played, otherwise rounded to two decimals.
func (s LeagueSummary) PointsPerGame() float64 {
	if s.Games == 0 {
		return 0
	}
	return round(float64(s.Points())/float64(s.Games), 2)
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// Leagues merges the lines by league name (case-insensitive), groups are returned in the
// order their league was first seen.
func Leagues(lines []prospects.StatLine) []LeagueSummary {
	var summaries []LeagueSummary
	index := map[string]int{}
	teams := map[string]map[string]bool{}

	for _, line := range lines {
		league := strings.ToUpper(line.LeagueName)
		i, seen := index[league]
		if !seen {
			i = len(summaries)
			index[league] = i
			teams[league] = map[string]bool{}
			summaries = append(summaries, LeagueSummary{LeagueName: league})
		}

		summary := &summaries[i]
		if !teams[league][line.TeamName] {
			teams[league][line.TeamName] = true
			if summary.TeamName == "" {
				summary.TeamName = line.TeamName
			} else {
				summary.TeamName += " / " + line.TeamName
			}
		}
		summary.Games += line.Games
		summary.Goals += line.Goals()
		summary.Assists += line.Assists()
		summary.PlusMinus += line.PlusMinus()
	}
	return summaries
}

// Skater returns the league summary with the most games. Ties go to the league seen first.
// The boolean is false when there are no lines.
func Skater(lines []prospects.StatLine) (LeagueSummary, bool) {
	summaries := Leagues(lines)
	if len(summaries) == 0 {
		return LeagueSummary{}, false
	}
	best := summaries[0]
	for _, s := range summaries[1:] {
		if s.Games > best.Games {
			best = s
		}
	}
	return best, true
}

// Goalie returns the single line with the most games, stints are never summed for goalies
// since their rate stats cannot be merged across leagues. Ties go to the earliest line.
func Goalie(lines []prospects.StatLine) (prospects.StatLine, bool) {
	if len(lines) == 0 {
		return prospects.StatLine{}, false
	}
	best := lines[0]
	for _, line := range lines[1:] {
		if line.Games > best.Games {
			best = line
		}
	}
	return best.Clone(), true
}

// PrimaryLeague is the upper-cased league that represents the player's season, it uses
// the skater or goalie policy depending on the position.
func PrimaryLeague(player prospects.Player, lines []prospects.StatLine) (string, bool) {
	if player.Position.IsGoalie() {
		line, ok := Goalie(lines)
		return strings.ToUpper(line.LeagueName), ok
	}
	summary, ok := Skater(lines)
	return summary.LeagueName, ok
}
