// Package normalize turns the primitive rows read from a profile's stats table into typed
// stat lines.
package normalize

import (
	"fmt"
	"math"
	"prospects/internal/components/telemetry"
	"prospects/internal/prospects"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	report_normalize_row = "normalize.row"
)

// RawRow is one row of a stats table as produced by the row extractor, every value is the
// cell's text (empty when the cell is missing).
type RawRow struct {
	Season string
	Team   string
	League string

	Games     string
	Goals     string
	Assists   string
	PlusMinus string

	GoalAverage string
	SavePercent string

	Tournament bool
	Injured    bool
}

type Season struct {
	Begin int
	End   int
}

var seasonRegex = regexp.MustCompile(`^(\d{4})\s*[-/]\s*(\d{2}|\d{4})$`)

// ParseSeason reads labels such as "2018-19" or "2018-2019".
func ParseSeason(label string) (Season, error) {
	groups := seasonRegex.FindStringSubmatch(strings.TrimSpace(label))
	if groups == nil {
		return Season{}, &prospects.InvalidEnumError{Kind: "season", Value: label}
	}
	begin, _ := strconv.Atoi(groups[1])
	end, _ := strconv.Atoi(groups[2])
	if len(groups[2]) == 2 {
		end += begin / 100 * 100
		if end < begin {
			end += 100
		}
	}
	if end < begin {
		return Season{}, &prospects.InvalidEnumError{Kind: "season", Value: label}
	}
	return Season{Begin: begin, End: end}, nil
}

// Accumulator is the state carried from one row to the next.
type Accumulator struct {
	// Current is the season of the most recent row that had a label.
	Current   Season
	HasSeason bool
	Lines     []prospects.StatLine
	// Skipped counts rows dropped because they had no usable season or lie in the future.
	Skipped int
}

type Normalizer struct {
	// Goalie selects the goalie shape for every produced line.
	Goalie bool
	// Now decides which seasons lie in the future, see prospects.SeasonEnd.
	Now time.Time
	Tel telemetry.API
}

func countable(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// rate is nil for anything that is not a finite number, ParseFloat accepts "NaN" and "Inf".
func rate(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Fold consumes one row. Rows without a season label inherit the season of the last row
// that had one.
func (n Normalizer) Fold(acc Accumulator, row RawRow) (Accumulator, error) {
	if strings.TrimSpace(row.Season) != "" {
		season, err := ParseSeason(row.Season)
		if err != nil {
			return acc, err
		}
		acc.Current = season
		acc.HasSeason = true
	}

	if !acc.HasSeason {
		acc.Skipped++
		if n.Tel != nil {
			n.Tel.ReportWarning(report_normalize_row, fmt.Errorf("row before any season label"), row.Team, row.League)
		}
		return acc, nil
	}
	if acc.Current.End > prospects.SeasonEnd(n.Now) {
		acc.Skipped++
		if n.Tel != nil {
			n.Tel.ReportDebug("skip future season", acc.Current.End, row.Team, row.League)
		}
		return acc, nil
	}

	line := prospects.StatLine{
		SeasonBegin: acc.Current.Begin,
		SeasonEnd:   acc.Current.End,
		TeamName:    strings.TrimSpace(row.Team),
		LeagueName:  strings.TrimSpace(row.League),
		Games:       max(countable(row.Games), 0),
		Tournament:  row.Tournament,
		Injured:     row.Injured,
	}
	if n.Goalie {
		line.Goalie = &prospects.GoalieFields{
			GoalAverage: rate(row.GoalAverage),
			SavePercent: rate(row.SavePercent),
		}
	} else {
		line.Skater = &prospects.SkaterFields{
			Goals:     countable(row.Goals),
			Assists:   countable(row.Assists),
			PlusMinus: countable(row.PlusMinus),
		}
	}

	lines := make([]prospects.StatLine, len(acc.Lines), len(acc.Lines)+1)
	copy(lines, acc.Lines)
	acc.Lines = append(lines, line)
	return acc, nil
}

// Lines folds every row in order and returns the produced lines.
func (n Normalizer) Lines(rows []RawRow) ([]prospects.StatLine, error) {
	acc := Accumulator{}
	for i, row := range rows {
		var err error
		acc, err = n.Fold(acc, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return acc.Lines, nil
}
