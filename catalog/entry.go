// Package catalog reads saved detail artifacts back into a JSON catalogue
// of hero names, titles and one selected skill.
package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/fwojciec/heroscrape"
)

// DefaultSkill is the skill index catalogued by default.
const DefaultSkill = 4

// Entry is the catalogue record of one hero.
type Entry struct {
	Name  string
	Title string

	// Skill is the index of the catalogued skill. It names the JSON keys,
	// e.g. "skill4_name".
	Skill            int
	SkillName        string
	SkillCooldown    string
	SkillCost        string
	SkillDescription string
}

// MarshalJSON writes the entry as an object with keys in layout order.
func (e Entry) MarshalJSON() ([]byte, error) {
	prefix := "skill" + strconv.Itoa(e.Skill) + "_"
	fields := []struct {
		key, value string
	}{
		{"name", e.Name},
		{"title", e.Title},
		{prefix + "name", e.SkillName},
		{prefix + "cooldown", e.SkillCooldown},
		{prefix + "cost", e.SkillCost},
		{prefix + "description", e.SkillDescription},
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, f.key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, f.value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates each value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Parse recovers the catalogue fields of one detail artifact. Fields whose
// labels are missing stay empty.
func Parse(text string, skill int) Entry {
	lines := strings.Split(text, "\n")
	e := Entry{Skill: skill}

	for _, line := range lines {
		if name, ok := strings.CutPrefix(line, heroscrape.LabelName); ok {
			e.Name = strings.TrimSpace(name)
			break
		}
	}

	for i, line := range lines {
		if !strings.Contains(line, heroscrape.LabelTitle) {
			continue
		}
		e.Title = strings.TrimSpace(strings.Replace(line, heroscrape.LabelTitle, "", 1))
		if e.Title == "" && i+1 < len(lines) {
			e.Title = strings.TrimSpace(lines[i+1])
		}
		break
	}

	parseSkill(lines, &e)
	return e
}

// parseSkill fills the skill fields from the header line "技能 N：<name>",
// the cooldown and cost lines directly below it, and the first description
// line after it with its continuation lines.
func parseSkill(lines []string, e *Entry) {
	label := heroscrape.SkillLabel(e.Skill)
	start := -1
	for i, line := range lines {
		if name, ok := strings.CutPrefix(line, label); ok {
			e.SkillName = strings.TrimSpace(name)
			start = i
			break
		}
	}
	if start == -1 {
		return
	}

	if start+1 < len(lines) && strings.Contains(lines[start+1], heroscrape.LabelCooldown) {
		cooldown := strings.TrimSpace(strings.Replace(lines[start+1], heroscrape.LabelCooldown, "", 1))
		first, _, _ := strings.Cut(cooldown, "/")
		e.SkillCooldown = strings.TrimSpace(first)
	}
	if start+2 < len(lines) && strings.Contains(lines[start+2], heroscrape.LabelCost) {
		e.SkillCost = strings.TrimSpace(strings.Replace(lines[start+2], heroscrape.LabelCost, "", 1))
	}

	desc := -1
	for i := start + 1; i < len(lines); i++ {
		if strings.Contains(lines[i], heroscrape.LabelDescription) {
			desc = i
			break
		}
	}
	if desc == -1 {
		return
	}

	var parts []string
	if first := strings.TrimSpace(strings.Replace(lines[desc], heroscrape.LabelDescription, "", 1)); first != "" {
		parts = append(parts, first)
	}
	for _, line := range lines[desc+1:] {
		line = strings.TrimSpace(line)
		if line == "" || endsDescription(line) {
			break
		}
		parts = append(parts, line)
	}
	e.SkillDescription = strings.Join(parts, "")
}

func endsDescription(line string) bool {
	return strings.HasPrefix(line, "---") ||
		strings.HasPrefix(line, "===") ||
		strings.HasPrefix(line, "【") ||
		strings.HasPrefix(line, heroscrape.LabelSkillPrefix)
}
