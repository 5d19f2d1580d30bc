package progress

import (
	"prospects/internal/prospects"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func skater(team, league string, games, goals, assists, plusMinus int) prospects.StatLine {
	return prospects.StatLine{
		SeasonBegin: 2026,
		SeasonEnd:   2027,
		TeamName:    team,
		LeagueName:  league,
		Games:       games,
		Skater:      &prospects.SkaterFields{Goals: goals, Assists: assists, PlusMinus: plusMinus},
	}
}

func ptr(v float64) *float64 {
	return &v
}

func TestDiffMatchedLine(t *testing.T) {
	previous := []prospects.StatLine{skater("Laval Rocket", "AHL", 5, 2, 1, -1)}
	current := []prospects.StatLine{skater("Laval Rocket", "AHL", 8, 3, 2, 1)}

	delta := Diff(current, previous)
	require.Len(t, delta, 1)
	require.Equal(t, 3, delta[0].Games)
	require.Equal(t, 1, delta[0].Goals())
	require.Equal(t, 1, delta[0].Assists())
	require.Equal(t, 2, delta[0].PlusMinus())
	require.Equal(t, "Laval Rocket", delta[0].TeamName)

	require.Equal(t, current[0].Games, delta[0].Games+previous[0].Games)
	require.Equal(t, current[0].Goals(), delta[0].Goals()+previous[0].Goals())
	require.Equal(t, current[0].Assists(), delta[0].Assists()+previous[0].Assists())
	require.Equal(t, current[0].PlusMinus(), delta[0].PlusMinus()+previous[0].PlusMinus())

	// inputs are untouched
	require.Equal(t, 3, current[0].Goals())
	require.Equal(t, 2, previous[0].Goals())
}

func TestDiffUnmatchedPassesThrough(t *testing.T) {
	previous := []prospects.StatLine{skater("Laval Rocket", "AHL", 5, 2, 1, 0)}
	current := []prospects.StatLine{
		skater("Laval Rocket", "AHL", 5, 2, 1, 0),
		skater("Montreal Canadiens", "NHL", 2, 0, 1, 1),
	}

	delta := Diff(current, previous)
	require.Len(t, delta, 2)
	require.Equal(t, 0, delta[0].Points())
	if diff := cmp.Diff(current[1], delta[1]); diff != "" {
		t.Fatalf("unmatched line changed (-want +got):\n%s", diff)
	}
}

func TestDiffKeyIsExact(t *testing.T) {
	previous := []prospects.StatLine{skater("Laval Rocket", "ahl", 5, 2, 1, 0)}
	current := []prospects.StatLine{skater("Laval Rocket", "AHL", 8, 3, 2, 0)}

	delta := Diff(current, previous)
	require.Equal(t, 8, delta[0].Games)
}

func TestDiffDuplicateKeys(t *testing.T) {
	previous := []prospects.StatLine{
		skater("Laval Rocket", "AHL", 5, 2, 1, 0),
		skater("Laval Rocket", "AHL", 1, 1, 1, 1),
	}
	current := []prospects.StatLine{
		skater("Laval Rocket", "AHL", 8, 3, 2, 1),
		skater("Laval Rocket", "AHL", 2, 0, 1, 0),
	}

	delta := Diff(current, previous)
	require.Len(t, delta, 2)
	// only the first previous line is subtracted, and only once
	require.Equal(t, 3, delta[0].Games)
	require.Equal(t, 2, delta[0].Points())
	if diff := cmp.Diff(current[1], delta[1]); diff != "" {
		t.Fatalf("second current line changed (-want +got):\n%s", diff)
	}
}

func TestDiffGoalieRates(t *testing.T) {
	previous := []prospects.StatLine{{
		SeasonEnd:  2027,
		TeamName:   "Laval Rocket",
		LeagueName: "AHL",
		Games:      4,
		Goalie:     &prospects.GoalieFields{GoalAverage: ptr(3.0)},
	}}
	current := []prospects.StatLine{{
		SeasonEnd:  2027,
		TeamName:   "Laval Rocket",
		LeagueName: "AHL",
		Games:      10,
		Goalie:     &prospects.GoalieFields{GoalAverage: ptr(2.5), SavePercent: ptr(0.915)},
	}}

	delta := Diff(current, previous)
	require.Equal(t, 6, delta[0].Games)
	require.InDelta(t, -0.5, *delta[0].Goalie.GoalAverage, 1e-9)
	require.Equal(t, 0.915, *delta[0].Goalie.SavePercent)

	*delta[0].Goalie.SavePercent = 0
	require.Equal(t, 0.915, *current[0].Goalie.SavePercent)
}

func TestReport(t *testing.T) {
	now := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

	center := prospects.Player{
		Name:     "Owen Beck",
		Position: prospects.POSITION_CENTER,
		Stats: []prospects.StatLine{
			skater("Laval Rocket", "AHL", 8, 3, 2, 1),
			{SeasonEnd: 2027, TeamName: "Canada U20", LeagueName: "WJC-20", Games: 7, Tournament: true,
				Skater: &prospects.SkaterFields{Goals: 4}},
		},
	}
	leftDefense := prospects.Player{
		Name:     "Lane Hutson",
		Position: prospects.POSITION_DEFENSE,
		Shoots:   prospects.SHOOTS_LEFT,
		Stats:    []prospects.StatLine{skater("Montreal Canadiens", "NHL", 8, 1, 6, 2)},
	}
	rightDefense := prospects.Player{
		Name:     "David Reinbacher",
		Position: prospects.POSITION_DEFENSE,
		Shoots:   prospects.SHOOTS_RIGHT,
		Stats:    []prospects.StatLine{skater("Laval Rocket", "AHL", 8, 0, 2, 3)},
	}
	anotherCenter := prospects.Player{
		Name:     "Michael Hage",
		Position: prospects.POSITION_CENTER,
		Stats:    []prospects.StatLine{skater("University of Michigan", "NCAA", 6, 4, 4, 2)},
	}

	current := prospects.Snapshot{TakenOn: now, Players: map[string]prospects.Player{
		"https://example.com/player/1": center,
		"https://example.com/player/2": leftDefense,
		"https://example.com/player/3": rightDefense,
		"https://example.com/player/4": anotherCenter,
	}}

	prevCenter := center
	prevCenter.Stats = []prospects.StatLine{skater("Laval Rocket", "AHL", 5, 2, 1, 0)}
	previous := prospects.Snapshot{TakenOn: now.AddDate(0, 0, -7), Players: map[string]prospects.Player{
		"https://example.com/player/1": prevCenter,
	}}

	report := Report(current, previous, 2027)
	require.Len(t, report, 4)

	var labels, names []string
	for _, p := range report {
		labels = append(labels, p.Label)
		names = append(names, p.Player.Name)
	}
	require.Equal(t, []string{"C", "C", "LD", "RD"}, labels)
	require.Equal(t, []string{"Michael Hage", "Owen Beck", "Lane Hutson", "David Reinbacher"}, names)

	beck := report[1]
	require.Len(t, beck.Lines, 1, "tournament lines are excluded")
	require.Equal(t, 3, beck.Lines[0].Games)
	require.Equal(t, 2, beck.Lines[0].Points())

	// no previous snapshot for the player, the full line is progress
	require.Equal(t, 8, report[0].Lines[0].Points())
}
