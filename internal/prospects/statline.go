package prospects

type SkaterFields struct {
	Goals     int `json:"goals"`
	Assists   int `json:"assists"`
	PlusMinus int `json:"plus_minus"`
}

// GoalieFields are rates, nil means the source had no usable value.
type GoalieFields struct {
	GoalAverage *float64 `json:"goal_average,omitempty"`
	SavePercent *float64 `json:"save_percent,omitempty"`
}

// StatLine is one stint of a player with a team in a league during a season. Exactly one
// of Skater and Goalie is set.
type StatLine struct {
	SeasonBegin int    `json:"season_begin"`
	SeasonEnd   int    `json:"season_end"`
	TeamName    string `json:"team_name"`
	LeagueName  string `json:"league_name"`
	Games       int    `json:"games"`
	Tournament  bool   `json:"tournament"`
	Injured     bool   `json:"injured"`

	Skater *SkaterFields `json:"skater,omitempty"`
	Goalie *GoalieFields `json:"goalie,omitempty"`
}

// Points is goals + assists, goalie lines always have zero points.
func (s StatLine) Points() int {
	if s.Skater == nil {
		return 0
	}
	return s.Skater.Goals + s.Skater.Assists
}

func (s StatLine) Goals() int {
	if s.Skater == nil {
		return 0
	}
	return s.Skater.Goals
}

func (s StatLine) Assists() int {
	if s.Skater == nil {
		return 0
	}
	return s.Skater.Assists
}

func (s StatLine) PlusMinus() int {
	if s.Skater == nil {
		return 0
	}
	return s.Skater.PlusMinus
}

// Clone returns a deep copy so the result can be modified without touching s.
func (s StatLine) Clone() StatLine {
	out := s
	if s.Skater != nil {
		skater := *s.Skater
		out.Skater = &skater
	}
	if s.Goalie != nil {
		goalie := GoalieFields{}
		if s.Goalie.GoalAverage != nil {
			v := *s.Goalie.GoalAverage
			goalie.GoalAverage = &v
		}
		if s.Goalie.SavePercent != nil {
			v := *s.Goalie.SavePercent
			goalie.SavePercent = &v
		}
		out.Goalie = &goalie
	}
	return out
}

// InSeason keeps the lines of the season ending in seasonEnd, tournament lines are dropped.
// Order is preserved.
func InSeason(lines []StatLine, seasonEnd int) []StatLine {
	var out []StatLine
	for _, line := range lines {
		if line.SeasonEnd != seasonEnd || line.Tournament {
			continue
		}
		out = append(out, line)
	}
	return out
}
