package prospects

import (
	"math"
	"time"
)

type Player struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Position   Position  `json:"position"`
	Shoots     Shoots    `json:"shoots"`
	Birthday   time.Time `json:"birthday"`
	Nation     string    `json:"nation"`
	Birthplace string    `json:"birthplace"`
	Height     string    `json:"height"`
	HeightCm   int       `json:"height_cm"`
	Weight     string    `json:"weight"`
	WeightKg   int       `json:"weight_kg"`
	Draft      *Draft    `json:"draft,omitempty"`

	// Stats are in the order they were read, most recent last.
	Stats []StatLine `json:"stats"`
}

const daysPerYear = 365.242199

// Age is the age in years at `now`, rounded to one decimal.
func (p Player) Age(now time.Time) float64 {
	if p.Birthday.IsZero() {
		return 0
	}
	days := now.Sub(p.Birthday).Hours() / 24
	return math.Round(days/daysPerYear*10) / 10
}

// Snapshot is every tracked player as read on one day, keyed by profile url.
type Snapshot struct {
	TakenOn time.Time         `json:"taken_on"`
	Players map[string]Player `json:"players"`
}

// SeasonEnd returns the end year of the season in progress at `now`. A new season is
// considered started on the first of September.
func SeasonEnd(now time.Time) int {
	if now.Month() >= time.September {
		return now.Year() + 1
	}
	return now.Year()
}
