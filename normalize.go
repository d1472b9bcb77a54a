package heroscrape

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	controlCharsRe = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f-\x9f]`)
	blankRunRe     = regexp.MustCompile(`[ \t]+`)
	newlineRunRe   = regexp.MustCompile(`\n{3,}`)
)

// Normalize strips control characters other than newline and tab, collapses
// runs of spaces and tabs to a single space, collapses three or more
// newlines to two and trims surrounding whitespace.
//
// Normalize is idempotent and never makes a string longer.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = controlCharsRe.ReplaceAllString(text, "")
	text = blankRunRe.ReplaceAllString(text, " ")
	text = newlineRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// RuneLen returns the length of s in characters. All length thresholds in
// the extraction heuristics are expressed in characters, not bytes.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// ContainsAny reports whether s contains any of the keywords.
func ContainsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// Soft line reflow limits.
const (
	reflowThreshold = 80
	reflowWidth     = 60
)

// Reflow repacks a long description into soft lines for readability.
// Text of at most 80 characters is returned unchanged. Longer text is split
// after each 。，； with the punctuation kept on the preceding segment, and
// segments are packed greedily into lines of at most 60 characters. A single
// segment longer than the cap occupies a line on its own.
func Reflow(text string) string {
	if RuneLen(text) <= reflowThreshold {
		return text
	}

	var lines []string
	var cur strings.Builder
	for _, seg := range splitSentences(text) {
		if cur.Len() > 0 && RuneLen(cur.String())+RuneLen(seg) > reflowWidth {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		cur.WriteString(seg)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return strings.Join(lines, "\n")
}

// splitSentences splits after each sentence punctuation mark.
func splitSentences(text string) []string {
	var segs []string
	start := 0
	for i, r := range text {
		if r == '。' || r == '，' || r == '；' {
			end := i + utf8.RuneLen(r)
			segs = append(segs, text[start:end])
			start = end
		}
	}
	if start < len(text) {
		segs = append(segs, text[start:])
	}
	return segs
}
