package prospects

import (
	"encoding/json"
	"strings"
)

type Position int

const (
	POSITION_CENTER Position = iota + 1
	POSITION_LEFT_WING
	POSITION_RIGHT_WING
	POSITION_WING
	POSITION_FORWARD
	POSITION_DEFENSE
	POSITION_GOALIE
)

var positionCodes = map[string]Position{
	"c":  POSITION_CENTER,
	"lw": POSITION_LEFT_WING,
	"rw": POSITION_RIGHT_WING,
	"w":  POSITION_WING,
	"f":  POSITION_FORWARD,
	"d":  POSITION_DEFENSE,
	"g":  POSITION_GOALIE,
}

// ParsePosition reads a position code such as "LW". Profiles list several positions
// separated by a slash ("C/LW"), the first one is the primary position but every
// component must be known.
func ParsePosition(s string) (Position, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	var primary Position
	for i, part := range parts {
		pos, ok := positionCodes[strings.ToLower(strings.TrimSpace(part))]
		if !ok {
			return 0, &InvalidEnumError{Kind: "position", Value: s}
		}
		if i == 0 {
			primary = pos
		}
	}
	return primary, nil
}

func (p Position) String() string {
	switch p {
	case POSITION_CENTER:
		return "C"
	case POSITION_LEFT_WING:
		return "LW"
	case POSITION_RIGHT_WING:
		return "RW"
	case POSITION_WING:
		return "W"
	case POSITION_FORWARD:
		return "F"
	case POSITION_DEFENSE:
		return "D"
	case POSITION_GOALIE:
		return "G"
	}
	return "?"
}

func (p Position) IsGoalie() bool {
	return p == POSITION_GOALIE
}

func (p Position) MarshalJSON() ([]byte, error) {
	if p == 0 {
		return json.Marshal("")
	}
	return json.Marshal(p.String())
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*p = 0
		return nil
	}
	parsed, err := ParsePosition(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
