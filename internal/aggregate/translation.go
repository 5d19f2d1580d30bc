package aggregate

import (
	"prospects/internal/prospects"
	"strings"
)

// TranslationFactors maps an upper-cased league name to the share of its scoring that
// carries over to the NHL.
var TranslationFactors = map[string]float64{
	"KHL":         0.74,
	"SHL":         0.58,
	"ALLSVENSKAN": 0.50,
	"AHL":         0.47,
	"LIIGA":       0.43,
	"NLA":         0.43,
	"NCAA":        0.38,
	"OHL":         0.30,
	"WHL":         0.29,
	"QMJHL":       0.25,
}

const seasonGames = 82

// Translation projects the lines onto an 82 game NHL season. Lines in leagues without a
// factor are ignored entirely, the boolean is false when no games were left.
func Translation(lines []prospects.StatLine) (float64, bool) {
	var points float64
	var games int
	for _, line := range lines {
		factor, ok := TranslationFactors[strings.ToUpper(line.LeagueName)]
		if !ok {
			continue
		}
		points += factor * float64(line.Points())
		games += line.Games
	}
	if games == 0 {
		return 0, false
	}
	return round(points/float64(games)*seasonGames, 1), true
}
