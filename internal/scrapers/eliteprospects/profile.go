package eliteprospects

import (
	"fmt"
	"prospects/internal/normalize"
	"prospects/internal/prospects"
	"prospects/lib/htmlutil"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	heightRegex = regexp.MustCompile(`(\d+)\s*cm`)
	weightRegex = regexp.MustCompile(`(\d+)\s*kg`)
)

var birthdayLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	time.DateOnly,
}

// facts reads the label/value pairs of the profile's fact list, labels are lower-cased.
func facts(doc *goquery.Document) map[string]string {
	out := map[string]string{}
	doc.Find("div.table-view li").Each(func(_ int, li *goquery.Selection) {
		divs := li.ChildrenFiltered("div")
		if divs.Length() < 2 {
			return
		}
		label := strings.ToLower(htmlutil.CleanText(htmlutil.SelectionText(divs.Eq(0))))
		value := htmlutil.CleanText(htmlutil.SelectionText(divs.Eq(1)))
		if label == "" {
			return
		}
		if _, seen := out[label]; !seen {
			out[label] = value
		}
	})
	return out
}

func metric(regex *regexp.Regexp, s string) int {
	groups := regex.FindStringSubmatch(s)
	if groups == nil {
		return 0
	}
	n, _ := strconv.Atoi(groups[1])
	return n
}

func (s Scraper) parseProfile(doc *goquery.Document, link string) (prospects.Player, error) {
	f := facts(doc)

	position, err := prospects.ParsePosition(f["position"])
	if err != nil {
		return prospects.Player{}, err
	}

	handedness := f["shoots"]
	if position.IsGoalie() && f["catches"] != "" {
		handedness = f["catches"]
	}
	shoots, err := prospects.ParseShoots(handedness)
	if err != nil {
		return prospects.Player{}, err
	}

	player := prospects.Player{
		Name:       htmlutil.CleanText(htmlutil.GetText(nodeOrNil(doc.Find("h1.plytitle")))),
		Position:   position,
		Shoots:     shoots,
		Nation:     f["nation"],
		Birthplace: f["place of birth"],
		Height:     f["height"],
		HeightCm:   metric(heightRegex, f["height"]),
		Weight:     f["weight"],
		WeightKg:   metric(weightRegex, f["weight"]),
	}

	if birthday := f["date of birth"]; birthday != "" {
		player.Birthday, err = parseBirthday(birthday)
		if err != nil {
			s.tel.ReportWarning(report_profile, err, link)
		}
	}

	if drafted := f["drafted"]; drafted != "" && drafted != "-" {
		draft, err := prospects.ParseDraft(drafted)
		if err != nil {
			return prospects.Player{}, err
		}
		player.Draft = &draft
	}

	normalizer := normalize.Normalizer{
		Goalie: position.IsGoalie(),
		Now:    s.time.Now(),
		Tel:    s.tel,
	}
	player.Stats, err = normalizer.Lines(statRows(doc))
	if err != nil {
		return prospects.Player{}, fmt.Errorf("stats: %w", err)
	}

	return player, nil
}

func parseBirthday(s string) (time.Time, error) {
	for _, layout := range birthdayLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown birthday format %q", s)
}
