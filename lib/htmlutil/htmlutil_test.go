package htmlutil

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const fixture = `
<table>
	<tr class="row">
		<td class="team"> <a href="/team/1">Laval
			Rocket</a> </td>
		<td class="gp"> 12 </td>
		<td class="g">-</td>
		<td class="league"><a href="/league/ahl">AHL</a>
			<span>Calder</span>	<i></i></td>
	</tr>
</table>
<a href="/player/1/ivan-demidov">  Ivan   Demidov
</a>
<a>no href</a>
<a href="https://example.com/abs">Absolute</a>`

func parse(t testing.TB) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fixture))
	require.NoError(t, err)
	return doc
}

func TestCells(t *testing.T) {
	row := parse(t).Find("tr.row")

	require.Equal(t, "Laval Rocket", CellText(row, "team"))
	require.Equal(t, "Laval Rocket", CleanText(GetText(row.Find("td.team a").Nodes[0])))
	require.Equal(t, "12", CellText(row, "gp"))
	require.Equal(t, "AHL Calder", CellText(row, "league"))
	require.Equal(t, "AHL Calder", SelectionText(row.Find("td.league")))
	require.Equal(t, "", CellText(row, "missing"))
}

func TestCleanText(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{in: "Laval\n\t\t\tRocket", expected: "Laval Rocket"},
		{in: "  Trois-Rivières\r\nLions  ", expected: "Trois-Rivières Lions"},
		{in: "SKA\u00a0St.\u200b Petersburg", expected: "SKA St. Petersburg"},
		{in: "\n\t ", expected: ""},
	}
	for _, c := range cases {
		require.Equal(t, c.expected, CleanText(c.in), "%q", c.in)
	}
}

func TestGetAnchors(t *testing.T) {
	base, err := url.Parse("https://www.eliteprospects.com/team/64/montreal-canadiens/in-the-system")
	require.NoError(t, err)

	anchors := GetAnchors(context.Background(), parse(t).Find("body > a"), base)
	require.Equal(t, []Anchor{
		{Name: "Ivan Demidov", Href: "https://www.eliteprospects.com/player/1/ivan-demidov"},
		{Name: "Absolute", Href: "https://example.com/abs"},
	}, anchors)
}
