package eliteprospects

import (
	"prospects/internal/normalize"
	"prospects/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func nodeOrNil(sel *goquery.Selection) *html.Node {
	if sel.Length() == 0 {
		return nil
	}
	return sel.Nodes[0]
}

// statRows extracts the rows of the league and tournament stats tables in page order.
// Tournament rows are marked by their table or row carrying the "tournament" class.
func statRows(doc *goquery.Document) []normalize.RawRow {
	var rows []normalize.RawRow
	doc.Find("table.player-stats").Each(func(_ int, table *goquery.Selection) {
		tournamentTable := table.HasClass("tournament")
		table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
			if tr.Find("td").Length() == 0 {
				return
			}
			rows = append(rows, normalize.RawRow{
				Season:      htmlutil.CellText(tr, "season"),
				Team:        htmlutil.CellText(tr, "team"),
				League:      htmlutil.CellText(tr, "league"),
				Games:       htmlutil.CellText(tr, "gp"),
				Goals:       htmlutil.CellText(tr, "g"),
				Assists:     htmlutil.CellText(tr, "a"),
				PlusMinus:   htmlutil.CellText(tr, "pm"),
				GoalAverage: htmlutil.CellText(tr, "gaa"),
				SavePercent: htmlutil.CellText(tr, "svp"),
				Tournament:  tournamentTable || tr.HasClass("tournament"),
				Injured:     tr.HasClass("injured") || tr.Find("td.team .injured").Length() > 0,
			})
		})
	})
	return rows
}
