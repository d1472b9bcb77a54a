package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/heroscrape"
)

// Ensure Extractor implements heroscrape.HeroExtractor at compile time.
var _ heroscrape.HeroExtractor = (*Extractor)(nil)

// Section and narrative limits.
const (
	maxSectionSiblings = 10
	maxSectionEntries  = 15
	minSectionEntryLen = 5
	maxNarrative       = 5
	minNarrativeLen    = 50
	longNarrativeLen   = 100
)

// storyKeywords mark paragraphs that read as hero background.
var storyKeywords = []string{"故事", "背景", "历史", "传记"}

// Extractor recovers hero records from detail pages.
type Extractor struct {
	// Narrative, if set, supplies story paragraphs when no <p> qualifies.
	Narrative heroscrape.NarrativeSource
}

// NewExtractor creates a new Extractor without a narrative fallback.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractHero parses decoded HTML and extracts a record.
func (e *Extractor) ExtractHero(raw string) (*heroscrape.HeroRecord, error) {
	doc, err := ParseHTML(raw)
	if err != nil {
		return nil, err
	}
	return e.Extract(doc), nil
}

// Extract runs the structural heuristics on a parsed document. Script and
// style nodes are removed from doc in place. Parts that cannot be found are
// left empty.
func (e *Extractor) Extract(doc *goquery.Document) *heroscrape.HeroRecord {
	StripNonContent(doc)

	rec := &heroscrape.HeroRecord{}
	rec.Name, _ = firstMatch(doc, nameRules)
	rec.Title, _ = firstMatch(doc, titleRules)

	for _, s := range scanSkills(FlattenLines(doc)) {
		rec.AddSkill(s)
	}

	seen := heroscrape.NewSeenSet()
	extractSections(doc, rec, seen)
	extractNarrative(doc, rec, seen)
	if len(rec.Narrative) == 0 && e.Narrative != nil {
		e.extractFallbackNarrative(doc, rec, seen)
	}

	return rec
}

// extractSections collects the sibling text under each tertiary heading.
// All heading titles are marked seen first so that body text repeating a
// heading is not emitted as an entry.
func extractSections(doc *goquery.Document, rec *heroscrape.HeroRecord, seen heroscrape.SeenSet) {
	headings := doc.Find("h3")
	headings.Each(func(_ int, h *goquery.Selection) {
		if title := heroscrape.Normalize(h.Text()); title != "" {
			seen.Add(title)
		}
	})

	headings.Each(func(_ int, h *goquery.Selection) {
		title := heroscrape.Normalize(h.Text())
		if title == "" || title == skillSectionMarker {
			return
		}

		var entries []string
		for _, text := range sectionTexts(h) {
			if seen.Add(text) {
				entries = append(entries, text)
			}
		}
		if len(entries) == 0 {
			return
		}

		if sec := rec.Section(title); sec != nil {
			sec.Entries = append(sec.Entries, entries...)
			return
		}
		rec.Sections = append(rec.Sections, heroscrape.Section{Title: title, Entries: entries})
	})
}

// sectionTexts returns the qualifying texts of the element siblings that
// follow a heading, stopping at the next heading.
func sectionTexts(h *goquery.Selection) []string {
	var texts []string
	sib := h.Next()
	for n := 0; sib.Length() > 0 && n < maxSectionSiblings; n++ {
		if sib.Is("h2, h3") {
			break
		}
		if text := heroscrape.Normalize(sib.Text()); heroscrape.RuneLen(text) > minSectionEntryLen {
			texts = append(texts, text)
		}
		sib = sib.Next()
	}
	if len(texts) > maxSectionEntries {
		texts = texts[:maxSectionEntries]
	}
	return texts
}

func extractNarrative(doc *goquery.Document, rec *heroscrape.HeroRecord, seen heroscrape.SeenSet) {
	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		addNarrative(rec, seen, heroscrape.Normalize(p.Text()))
		return len(rec.Narrative) < maxNarrative
	})
}

func (e *Extractor) extractFallbackNarrative(doc *goquery.Document, rec *heroscrape.HeroRecord, seen heroscrape.SeenSet) {
	raw, err := doc.Html()
	if err != nil {
		return
	}
	paragraphs, err := e.Narrative.Paragraphs(raw)
	if err != nil {
		return
	}
	for _, p := range paragraphs {
		if len(rec.Narrative) >= maxNarrative {
			return
		}
		addNarrative(rec, seen, heroscrape.Normalize(p))
	}
}

// addNarrative appends text if it reads as a story paragraph and has not
// been emitted elsewhere in the record.
func addNarrative(rec *heroscrape.HeroRecord, seen heroscrape.SeenSet, text string) {
	n := heroscrape.RuneLen(text)
	if n <= minNarrativeLen {
		return
	}
	if n <= longNarrativeLen && !heroscrape.ContainsAny(text, storyKeywords) {
		return
	}
	if seen.Add(text) {
		rec.Narrative = append(rec.Narrative, text)
	}
}
