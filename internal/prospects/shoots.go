package prospects

import (
	"encoding/json"
	"strings"
)

type Shoots int

const (
	SHOOTS_LEFT Shoots = iota + 1
	SHOOTS_RIGHT
)

// ParseShoots reads the handedness shown on a profile ("L", "Left", "R", "Right").
// Goalies use the same field for their catching hand.
func ParseShoots(s string) (Shoots, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left":
		return SHOOTS_LEFT, nil
	case "r", "right":
		return SHOOTS_RIGHT, nil
	}
	return 0, &InvalidEnumError{Kind: "shoots", Value: s}
}

func (s Shoots) String() string {
	switch s {
	case SHOOTS_LEFT:
		return "L"
	case SHOOTS_RIGHT:
		return "R"
	}
	return "?"
}

func (s Shoots) MarshalJSON() ([]byte, error) {
	if s == 0 {
		return json.Marshal("")
	}
	return json.Marshal(s.String())
}

func (s *Shoots) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		*s = 0
		return nil
	}
	parsed, err := ParseShoots(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
