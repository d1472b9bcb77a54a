package heroscrape

import (
	"strconv"
	"strings"
)

// Artifact layout labels. Downstream field readers recover values from
// these exact prefixes, so they must stay stable.
const (
	LabelName        = "英雄名称："
	LabelTitle       = "【英雄称号】"
	LabelSkills      = "【技能介绍】"
	LabelSkillPrefix = "技能 "
	LabelCooldown    = "冷却值："
	LabelCost        = "消耗："
	LabelDescription = "描述："
	LabelStory       = "【英雄故事】"
	NoSkillsNotice   = "（未能提取到结构化技能信息）"
)

// Dividers used by the artifact layout.
var (
	HeavyDivider = strings.Repeat("=", 80)
	LightDivider = strings.Repeat("-", 80)
)

// SkillLabel returns the header prefix for the skill with the given index,
// e.g. "技能 4：".
func SkillLabel(index int) string {
	return LabelSkillPrefix + strconv.Itoa(index) + "："
}

// FormatHero renders a record using the same headings and labels the
// extractor recognizes, so the output can be read back by a field reader.
func FormatHero(r *HeroRecord) string {
	lines := []string{HeavyDivider}
	if r.Name != "" {
		lines = append(lines, LabelName+r.Name)
	}
	lines = append(lines, HeavyDivider, "")

	if r.Title != "" {
		lines = append(lines, LabelTitle+r.Title, "")
	}

	lines = append(lines, LabelSkills, LightDivider)
	if len(r.Skills) == 0 {
		lines = append(lines, "", NoSkillsNotice, "")
	}
	for _, s := range r.Skills {
		lines = append(lines,
			"",
			SkillLabel(s.Index)+s.Name,
			"  "+LabelCooldown+s.Cooldown,
			"  "+LabelCost+s.Cost,
		)
		if desc := Normalize(s.Description); desc != "" {
			lines = append(lines, "  "+LabelDescription+Reflow(desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines, LightDivider, "")

	for _, sec := range r.Sections {
		lines = append(lines, "", "【"+sec.Title+"】", LightDivider)
		for _, e := range sec.Entries {
			lines = append(lines, "  "+e)
		}
		lines = append(lines, "")
	}

	if len(r.Narrative) > 0 {
		lines = append(lines, "", LabelStory, LightDivider)
		for _, p := range r.Narrative {
			lines = append(lines, p, "")
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// FormatListing renders the flat report of a listing page.
func FormatListing(p *ListingPage) string {
	var lines []string
	if p.Title != "" {
		lines = append(lines, "【页面标题】", p.Title, "")
	}

	for _, g := range p.Headings {
		if len(g.Entries) == 0 {
			continue
		}
		lines = append(lines, "", "【"+g.Level+" 标题】")
		for _, e := range g.Entries {
			lines = append(lines, "  "+e)
		}
		lines = append(lines, "")
	}

	if len(p.Links) > 0 {
		lines = append(lines, "", "【英雄列表】")
		for _, l := range p.Links {
			lines = append(lines, "  "+l.Label+" -> "+l.URL)
		}
		lines = append(lines, "")
	}

	if len(p.Texts) > 0 {
		lines = append(lines, "", "【页面内容】")
		for _, t := range p.Texts {
			lines = append(lines, "  "+t)
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
