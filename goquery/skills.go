package goquery

import (
	"regexp"
	"strings"

	"github.com/fwojciec/heroscrape"
)

// Section markers used while scanning flattened lines for skills.
const (
	skillSectionMarker = "技能介绍"
	cooldownMarker     = "冷却值"
	costMarker         = "消耗"
)

// skillBoundaries end the skill region.
var skillBoundaries = []string{"铭文", "出装", "英雄关系", "技能加点", "英雄攻略"}

// minDescriptionLen is the length a line must exceed to count as
// description text.
const minDescriptionLen = 20

// skillHeaderRe splits "<name>冷却值：<cooldown>消耗：<cost>".
var skillHeaderRe = regexp.MustCompile(`^([^冷]+)冷却值[：:]\s*([^消]+)消耗[：:]\s*(.+)$`)

// scanState is the state of the skill scanner.
type scanState int

const (
	// scanIdle waits for the skill section marker.
	scanIdle scanState = iota
	// scanScanning classifies lines as skill headers.
	scanScanning
	// scanDone is terminal; a boundary keyword was seen.
	scanDone
)

// next returns the state after observing line.
func (s scanState) next(line string) scanState {
	switch s {
	case scanIdle:
		if strings.Contains(line, skillSectionMarker) {
			return scanScanning
		}
	case scanScanning:
		if heroscrape.ContainsAny(line, skillBoundaries) {
			return scanDone
		}
	}
	return s
}

// scanSkills walks the flattened lines and returns skills in document order.
// Indices are left for the record to assign.
func scanSkills(lines []string) []heroscrape.Skill {
	var skills []heroscrape.Skill
	state := scanIdle
	for i, line := range lines {
		prev := state
		state = state.next(line)
		if state == scanDone {
			break
		}
		// The marker line itself is never a header.
		if prev != scanScanning || state != scanScanning {
			continue
		}
		skill, ok := parseSkillHeader(line)
		if !ok {
			continue
		}
		skill.Description = lookaheadDescription(lines, i+1)
		skills = append(skills, skill)
	}
	return skills
}

// isSkillHeader reports whether a line carries both skill markers.
func isSkillHeader(line string) bool {
	return strings.Contains(line, cooldownMarker) && strings.Contains(line, costMarker)
}

func parseSkillHeader(line string) (heroscrape.Skill, bool) {
	if !isSkillHeader(line) {
		return heroscrape.Skill{}, false
	}
	m := skillHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return heroscrape.Skill{}, false
	}
	return heroscrape.Skill{
		Name:     strings.TrimSpace(m[1]),
		Cooldown: strings.TrimSpace(m[2]),
		Cost:     strings.TrimSpace(m[3]),
	}, true
}

// isDescriptionLine reports whether a line can be part of a description.
func isDescriptionLine(line string) bool {
	return heroscrape.RuneLen(line) > minDescriptionLen &&
		!strings.Contains(line, cooldownMarker) &&
		!strings.Contains(line, costMarker)
}

// lookaheadDescription joins the description lines starting at start. The
// first line only has to pass the length and marker test; later lines also
// stop at a boundary keyword.
func lookaheadDescription(lines []string, start int) string {
	var parts []string
	for j := start; j < len(lines); j++ {
		line := lines[j]
		if !isDescriptionLine(line) {
			break
		}
		if j > start && heroscrape.ContainsAny(line, skillBoundaries) {
			break
		}
		parts = append(parts, line)
	}
	return heroscrape.Normalize(strings.Join(parts, " "))
}
