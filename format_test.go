package heroscrape_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/heroscrape"
	"github.com/stretchr/testify/assert"
)

func TestFormatHero(t *testing.T) {
	t.Parallel()

	t.Run("renders full record layout", func(t *testing.T) {
		t.Parallel()

		rec := &heroscrape.HeroRecord{
			Name:  "嫦娥",
			Title: "寒月公主",
			Skills: []heroscrape.Skill{
				{Index: 1, Name: "月辰", Cooldown: "40/36/32", Cost: "80", Description: "对前方敌人造成法术伤害"},
			},
			Sections: []heroscrape.Section{
				{Title: "铭文搭配建议", Entries: []string{"梦魇 x10 法术攻击力"}},
			},
			Narrative: []string{"嫦娥的故事"},
		}

		got := heroscrape.FormatHero(rec)

		want := strings.Join([]string{
			heroscrape.HeavyDivider,
			"英雄名称：嫦娥",
			heroscrape.HeavyDivider,
			"",
			"【英雄称号】寒月公主",
			"",
			"【技能介绍】",
			heroscrape.LightDivider,
			"",
			"技能 1：月辰",
			"  冷却值：40/36/32",
			"  消耗：80",
			"  描述：对前方敌人造成法术伤害",
			"",
			heroscrape.LightDivider,
			"",
			"",
			"【铭文搭配建议】",
			heroscrape.LightDivider,
			"  梦魇 x10 法术攻击力",
			"",
			"",
			"【英雄故事】",
			heroscrape.LightDivider,
			"嫦娥的故事",
			"",
			"",
		}, "\n")
		assert.Equal(t, want, got)
	})

	t.Run("emits notice when no skills were found", func(t *testing.T) {
		t.Parallel()

		got := heroscrape.FormatHero(&heroscrape.HeroRecord{})

		assert.Contains(t, got, heroscrape.NoSkillsNotice)
		assert.NotContains(t, got, heroscrape.LabelName)
		assert.NotContains(t, got, heroscrape.LabelTitle)
		assert.NotContains(t, got, heroscrape.LabelStory)
	})

	t.Run("reflows long descriptions", func(t *testing.T) {
		t.Parallel()

		desc := strings.Repeat("甲", 39) + "，" + strings.Repeat("乙", 39) + "。" + strings.Repeat("丙", 10)
		rec := &heroscrape.HeroRecord{
			Skills: []heroscrape.Skill{{Index: 1, Name: "技", Description: desc}},
		}

		got := heroscrape.FormatHero(rec)

		assert.Contains(t, got, "  描述："+strings.Repeat("甲", 39)+"，\n"+strings.Repeat("乙", 39)+"。"+strings.Repeat("丙", 10)+"\n")
	})
}

func TestFormatListing(t *testing.T) {
	t.Parallel()

	page := &heroscrape.ListingPage{
		Title: "英雄资料列表页",
		Headings: []heroscrape.HeadingGroup{
			{Level: "H1", Entries: []string{"英雄列表"}},
			{Level: "H2"},
		},
		Links: []heroscrape.LinkEntry{
			{Label: "英雄A", URL: "https://pvp.qq.com/web201605/herodetail/a.shtml"},
		},
		Texts: []string{"本页展示全部英雄资料信息"},
	}

	got := heroscrape.FormatListing(page)

	want := strings.Join([]string{
		"【页面标题】",
		"英雄资料列表页",
		"",
		"",
		"【H1 标题】",
		"  英雄列表",
		"",
		"",
		"【英雄列表】",
		"  英雄A -> https://pvp.qq.com/web201605/herodetail/a.shtml",
		"",
		"",
		"【页面内容】",
		"  本页展示全部英雄资料信息",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}
