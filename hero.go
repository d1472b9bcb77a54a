package heroscrape

// Skill is one numbered skill recovered from a detail page.
type Skill struct {
	// Index is the 1-based position of the skill in document order.
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Cooldown    string `json:"cooldown,omitempty"`
	Cost        string `json:"cost,omitempty"`
	Description string `json:"description"`
}

// Section is a named block of text entries found under a heading.
type Section struct {
	Title   string   `json:"title"`
	Entries []string `json:"entries"`
}

// HeroRecord is the structured form of one hero detail page.
// A record is built fresh per page and never merged with another.
type HeroRecord struct {
	Name      string    `json:"name,omitempty"`
	Title     string    `json:"title,omitempty"`
	Skills    []Skill   `json:"skills,omitempty"`
	Sections  []Section `json:"sections,omitempty"`
	Narrative []string  `json:"narrative,omitempty"`
}

// IsEmpty reports whether extraction recovered nothing identifying:
// no name, no title and no skills.
func (r *HeroRecord) IsEmpty() bool {
	return r.Name == "" && r.Title == "" && len(r.Skills) == 0
}

// AddSkill appends a skill and assigns the next ordinal index.
func (r *HeroRecord) AddSkill(s Skill) {
	s.Index = len(r.Skills) + 1
	r.Skills = append(r.Skills, s)
}

// Section returns the section with the given title, or nil.
func (r *HeroRecord) Section(title string) *Section {
	for i := range r.Sections {
		if r.Sections[i].Title == title {
			return &r.Sections[i]
		}
	}
	return nil
}

// SeenSet tracks text values already emitted into one record so that the
// same paragraph never appears twice across sections and narrative.
// A SeenSet is owned by a single extraction and must not be shared.
type SeenSet map[string]struct{}

// NewSeenSet returns an empty SeenSet.
func NewSeenSet() SeenSet {
	return make(SeenSet)
}

// Add records s and returns true if it was not seen before.
func (s SeenSet) Add(text string) bool {
	if _, ok := s[text]; ok {
		return false
	}
	s[text] = struct{}{}
	return true
}

// HeroExtractor recovers a HeroRecord from a detail page.
type HeroExtractor interface {
	// ExtractHero parses decoded HTML and runs the structural heuristics.
	// Missing parts are not errors: the record simply has empty fields.
	ExtractHero(html string) (*HeroRecord, error)
}

// NarrativeSource supplies candidate story paragraphs from a page when the
// paragraph heuristics find none.
type NarrativeSource interface {
	Paragraphs(html string) ([]string, error)
}
