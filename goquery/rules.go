package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/heroscrape"
	"golang.org/x/net/html"
)

// headingDenylist rejects headings that label page regions rather than
// naming the hero.
var headingDenylist = []string{"技能", "介绍", "建议", "关系", "攻略", "出装", "铭文"}

// Length limits for identity headings, in characters.
const (
	maxNameLen  = 10
	maxTitleLen = 15
)

// pageTitleRe captures the hero name from "<site name><hero name>-..." titles.
var pageTitleRe = regexp.MustCompile(`王者荣耀([^-]+)`)

// titleLabelRe matches the label that may precede a hero title.
var titleLabelRe = regexp.MustCompile(`^【?英雄称号】?[：:]?\s*`)

// rule is one entry in an ordered heuristic list. candidates yields values
// in document order and accept decides whether a value is the answer.
type rule struct {
	name       string
	candidates func(doc *goquery.Document) []string
	accept     func(text string) bool
}

// firstMatch evaluates rules top to bottom and returns the first accepted
// candidate, along with the name of the rule that produced it.
func firstMatch(doc *goquery.Document, rules []rule) (string, string) {
	for _, r := range rules {
		for _, c := range r.candidates(doc) {
			if r.accept(c) {
				return c, r.name
			}
		}
	}
	return "", ""
}

// nameRules resolve the hero name: secondary headings, then primary
// headings, then the page title.
var nameRules = []rule{
	{name: "h2", candidates: headingTexts("h2"), accept: acceptIdentity(maxNameLen)},
	{name: "h1", candidates: headingTexts("h1"), accept: acceptIdentity(maxNameLen)},
	{name: "title", candidates: pageTitleName, accept: acceptIdentity(maxNameLen)},
}

// titleRules resolve the hero title from tertiary headings.
var titleRules = []rule{
	{name: "h3", candidates: labelledHeadingTexts("h3"), accept: acceptIdentity(maxTitleLen)},
}

func acceptIdentity(maxLen int) func(string) bool {
	return func(text string) bool {
		return text != "" &&
			heroscrape.RuneLen(text) <= maxLen &&
			!heroscrape.ContainsAny(text, headingDenylist)
	}
}

func headingTexts(tag string) func(*goquery.Document) []string {
	return func(doc *goquery.Document) []string {
		var out []string
		doc.Find(tag).Each(func(_ int, sel *goquery.Selection) {
			out = append(out, heroscrape.Normalize(sel.Text()))
		})
		return out
	}
}

// labelledHeadingTexts strips the title label from each heading. A heading
// that held only the label takes its value from the first flattened line of
// text that follows it in the document.
func labelledHeadingTexts(tag string) func(*goquery.Document) []string {
	return func(doc *goquery.Document) []string {
		var out []string
		doc.Find(tag).Each(func(_ int, sel *goquery.Selection) {
			raw := heroscrape.Normalize(sel.Text())
			text := strings.TrimSpace(titleLabelRe.ReplaceAllString(raw, ""))
			if text == "" && raw != "" {
				text = lineAfter(doc, sel.Get(0))
			}
			out = append(out, text)
		})
		return out
	}
}

// lineAfter returns the first non-empty line of the document text that
// follows node and its descendants. A leading colon is dropped.
func lineAfter(doc *goquery.Document, node *html.Node) string {
	var b strings.Builder
	after := false
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n == node {
			after = true
			return
		}
		if n.Type == html.TextNode {
			if after {
				b.WriteString(n.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}

	for _, line := range strings.Split(b.String(), "\n") {
		line = strings.TrimSpace(strings.TrimLeft(heroscrape.Normalize(line), "：:"))
		if line != "" {
			return line
		}
	}
	return ""
}

func pageTitleName(doc *goquery.Document) []string {
	title := heroscrape.Normalize(doc.Find("title").First().Text())
	m := pageTitleRe.FindStringSubmatch(title)
	if m == nil {
		return nil
	}
	return []string{strings.TrimSpace(m[1])}
}
