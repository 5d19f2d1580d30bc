package prospects

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Draft struct {
	Year    int    `json:"year"`
	Round   int    `json:"round"`
	Overall int    `json:"overall"`
	Team    string `json:"team"`
}

// 2018 round 1 #3 overall by Montreal Canadiens
var draftRegex = regexp.MustCompile(`(?i)^(\d{4})\s+round\s+(\d+)\s+#(\d+)\s+overall\s+by\s+(.+)$`)

func ParseDraft(s string) (Draft, error) {
	groups := draftRegex.FindStringSubmatch(strings.TrimSpace(s))
	if groups == nil {
		return Draft{}, &InvalidEnumError{Kind: "draft", Value: s}
	}
	// the regex only lets digits through
	year, _ := strconv.Atoi(groups[1])
	round, _ := strconv.Atoi(groups[2])
	overall, _ := strconv.Atoi(groups[3])
	return Draft{
		Year:    year,
		Round:   round,
		Overall: overall,
		Team:    strings.TrimSpace(groups[4]),
	}, nil
}

// Short is the compact form used in report tables.
func (d Draft) Short() string {
	return fmt.Sprintf("%d R%d #%d", d.Year, d.Round, d.Overall)
}
