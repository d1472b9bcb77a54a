// Package goquery implements the heroscrape extraction heuristics on top of
// goquery documents: hero detail records, listing reports and detail links.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/heroscrape"
	"golang.org/x/net/html"
)

// nonContentSelector matches nodes whose text never belongs in extracted output.
const nonContentSelector = "script, style, noscript"

// ParseHTML parses decoded HTML into a document with non-content nodes removed.
func ParseHTML(raw string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, heroscrape.Errorf(heroscrape.EINVALID, "failed to parse HTML: %v", err)
	}
	StripNonContent(doc)
	return doc, nil
}

// StripNonContent removes script, style and noscript nodes in place.
func StripNonContent(doc *goquery.Document) {
	doc.Find(nonContentSelector).Remove()
}

// FlattenLines returns the document text split into normalized, non-empty
// lines in document order.
func FlattenLines(doc *goquery.Document) []string {
	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = heroscrape.Normalize(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// textNodes returns the normalized text of every non-empty text node under
// the selection, in document order.
func textNodes(sel *goquery.Selection) []string {
	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := heroscrape.Normalize(n.Data); text != "" {
				out = append(out, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return out
}
