package progress

import (
	"prospects/internal/prospects"
)

type lineKey struct {
	seasonEnd int
	league    string
	team      string
}

func keyOf(line prospects.StatLine) lineKey {
	return lineKey{seasonEnd: line.SeasonEnd, league: line.LeagueName, team: line.TeamName}
}

// Diff subtracts the matching previous line from every current line. Lines are matched
// on season end, league and team exactly, current lines without a match are passed
// through as is. A key is matched once on each side: the first previous line of a key
// is subtracted from the first current line of that key only. Both inputs should
// already be restricted to one season without tournaments. The returned lines never
// share memory with the inputs.
func Diff(current, previous []prospects.StatLine) []prospects.StatLine {
	index := make(map[lineKey]prospects.StatLine, len(previous))
	for _, line := range previous {
		key := keyOf(line)
		if _, seen := index[key]; seen {
			continue
		}
		index[key] = line
	}

	out := make([]prospects.StatLine, 0, len(current))
	for _, line := range current {
		key := keyOf(line)
		prev, ok := index[key]
		if !ok {
			out = append(out, line.Clone())
			continue
		}
		delete(index, key)
		out = append(out, subtract(line, prev))
	}
	return out
}

func subtract(current, previous prospects.StatLine) prospects.StatLine {
	delta := current.Clone()
	delta.Games = current.Games - previous.Games

	if delta.Skater != nil && previous.Skater != nil {
		delta.Skater.Goals -= previous.Skater.Goals
		delta.Skater.Assists -= previous.Skater.Assists
		delta.Skater.PlusMinus -= previous.Skater.PlusMinus
	}
	if delta.Goalie != nil && previous.Goalie != nil {
		delta.Goalie.GoalAverage = subtractRate(delta.Goalie.GoalAverage, previous.Goalie.GoalAverage)
		delta.Goalie.SavePercent = subtractRate(delta.Goalie.SavePercent, previous.Goalie.SavePercent)
	}
	return delta
}

// subtractRate differences two rates when both are known, otherwise the current value is
// kept.
func subtractRate(current, previous *float64) *float64 {
	if current == nil || previous == nil {
		return current
	}
	v := *current - *previous
	return &v
}
