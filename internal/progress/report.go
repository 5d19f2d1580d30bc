package progress

import (
	"prospects/internal/prospects"
	"slices"
	"strings"
)

// PositionOrder is the order players are listed in a progress report.
var PositionOrder = []string{"C", "LW", "RW", "W", "F", "LD", "RD", "G"}

// PlayerProgress is what a player did between two snapshots in one season.
type PlayerProgress struct {
	URL    string
	Player prospects.Player
	// Label is the position with defensemen split by handedness (LD/RD).
	Label string
	// Lines are the season's lines of the current snapshot minus the previous one.
	Lines []prospects.StatLine
}

// Label returns the progress report label of the player's position.
func Label(player prospects.Player) string {
	if player.Position == prospects.POSITION_DEFENSE {
		if player.Shoots == prospects.SHOOTS_LEFT {
			return "LD"
		}
		return "RD"
	}
	return player.Position.String()
}

func rank(label string) int {
	i := slices.Index(PositionOrder, label)
	if i < 0 {
		return len(PositionOrder)
	}
	return i
}

// Report diffs every player of current against the same url in previous for the season
// ending in seasonEnd. Players missing from previous keep their full lines. The result is
// ordered by position then by name.
func Report(current, previous prospects.Snapshot, seasonEnd int) []PlayerProgress {
	out := make([]PlayerProgress, 0, len(current.Players))
	for url, player := range current.Players {
		lines := prospects.InSeason(player.Stats, seasonEnd)
		var prevLines []prospects.StatLine
		if prev, ok := previous.Players[url]; ok {
			prevLines = prospects.InSeason(prev.Stats, seasonEnd)
		}
		out = append(out, PlayerProgress{
			URL:    url,
			Player: player,
			Label:  Label(player),
			Lines:  Diff(lines, prevLines),
		})
	}

	slices.SortFunc(out, func(a, b PlayerProgress) int {
		if r := rank(a.Label) - rank(b.Label); r != 0 {
			return r
		}
		if c := strings.Compare(a.Player.Name, b.Player.Name); c != 0 {
			return c
		}
		return strings.Compare(a.URL, b.URL)
	})
	return out
}
