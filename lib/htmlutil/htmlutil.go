package htmlutil

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("prospects/lib/htmlutil")

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer, false)
	return buffer.String()
}

// GetStrippedText joins every non blank text node of the tree with a single space, each
// node's surrounding whitespace removed.
func GetStrippedText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer, true)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer, strip bool) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		if strip {
			text := strings.TrimSpace(node.Data)
			if text == "" {
				return
			}
			if buffer.Len() > 0 {
				buffer.WriteByte(' ')
			}
			buffer.WriteString(text)
		} else {
			buffer.WriteString(node.Data)
		}
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer, strip)
		child = child.NextSibling
	}
}

// SelectionText is GetStrippedText over the first node of the selection, it is empty for
// an empty selection.
func SelectionText(sel *goquery.Selection) string {
	if sel == nil || len(sel.Nodes) == 0 {
		return ""
	}
	return GetStrippedText(sel.Nodes[0])
}

// CellText returns the cleaned text of the row's first cell with the given class.
func CellText(row *goquery.Selection, class string) string {
	return CleanText(SelectionText(row.Find("td." + class)))
}

type Anchor struct {
	Name string
	Href string
}

func printable(c rune) rune {
	if unicode.IsSpace(c) {
		return ' '
	}
	if !unicode.IsPrint(c) {
		return -1
	}
	return c
}

// CleanText turns every whitespace character (line breaks and tabs included) into a space,
// drops the remaining non printable characters and then collapses space runs.
func CleanText(s string) string {
	return strings.Join(strings.Fields(strings.Map(printable, s)), " ")
}

// GetAnchors reads the name and href of every anchor in the selection, hrefs are resolved
// against base when it is not nil.
func GetAnchors(ctx context.Context, sel *goquery.Selection, base *url.URL) []Anchor {
	_, span := tracer.Start(ctx, "GetAnchors")
	defer span.End()

	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}
		if href == "" {
			continue
		}

		link, err := url.Parse(href)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "got error while parsing url")
			continue
		}
		if base != nil {
			link = base.ResolveReference(link)
		}

		name := CleanText(GetText(n))

		linkStr := link.String()
		anchors = append(anchors, Anchor{
			Name: name,
			Href: linkStr,
		})
		span.AddEvent("anchor", trace.WithAttributes(
			attribute.String("name", name),
			attribute.String("url", linkStr),
		))
	}

	return anchors
}
