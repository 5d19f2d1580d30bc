// Package report renders players, league summaries and progress lines as markdown.
package report

import (
	"fmt"
	"prospects/internal/prospects"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(header ...any) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row(header))
	return t
}

func row(cells ...any) table.Row {
	return table.Row(cells)
}

// document accumulates markdown blocks separated by blank lines.
type document struct {
	blocks []string
}

func (d *document) heading(title string) {
	d.blocks = append(d.blocks, "## "+title)
}

func (d *document) table(t table.Writer) {
	d.blocks = append(d.blocks, t.RenderMarkdown())
}

func (d *document) rule() {
	d.blocks = append(d.blocks, "---")
}

func (d *document) item(text string) {
	d.blocks = append(d.blocks, "- "+text)
}

func (d *document) String() string {
	return strings.Join(d.blocks, "\n\n") + "\n"
}

func link(name, url string) string {
	if url == "" {
		return name
	}
	return fmt.Sprintf("[%s](%s)", name, url)
}

func age(p prospects.Player, now time.Time) string {
	if p.Birthday.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%.1f", p.Age(now))
}

func draftShort(p prospects.Player) string {
	if p.Draft == nil {
		return "-"
	}
	return p.Draft.Short()
}

func optional(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func goalAverage(line prospects.StatLine) string {
	if line.Goalie == nil {
		return "-"
	}
	return optional(line.Goalie.GoalAverage, "%.2f")
}

func savePercent(line prospects.StatLine) string {
	if line.Goalie == nil {
		return "-"
	}
	return optional(line.Goalie.SavePercent, "%.3f")
}
