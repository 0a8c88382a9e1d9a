package parser

import (
	"testing"

	"github.com/takeda9/rulesheet-go/pkg/rulesheet/models"
)

func TestIsRTLRegion(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"MECA", true},
		{"meca-v2", true},
		{"ARAB", true},
		{"IL", true},
		{"US", false},
		{"TW", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsRTLRegion(tt.code); got != tt.expected {
			t.Errorf("IsRTLRegion(%q) = %v, expected %v", tt.code, got, tt.expected)
		}
	}
}

func TestMergeRewardSections(t *testing.T) {
	sections := []models.Section{
		{Type: models.SectionRewards, Title: "Top", Rewards: []models.RewardItem{{Name: "Gold"}}},
		{Type: models.SectionRules, Title: "说明", Paragraphs: []models.Paragraph{blankParagraph()}},
		{Type: models.SectionRewards, Title: "Top", Rewards: []models.RewardItem{{Name: "Silver"}}},
	}

	merged := MergeRewardSections(sections)
	if len(merged) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(merged))
	}
	if merged[0].Title != "Top" || len(merged[0].Rewards) != 2 {
		t.Errorf("merged[0] = %+v", merged[0])
	}
	if merged[0].Rewards[0].Name != "Gold" || merged[0].Rewards[1].Name != "Silver" {
		t.Errorf("item order not preserved: %v", merged[0].Rewards)
	}
	if merged[1].Type != models.SectionRules {
		t.Errorf("merged[1] = %+v", merged[1])
	}
}

func TestClassifyBlock(t *testing.T) {
	withItems := []models.Section{{Type: models.SectionRewards, Rewards: []models.RewardItem{{Name: "x"}}}}
	if got := ClassifyBlock(withItems, "anything"); got != models.BlockRewards {
		t.Errorf("block with items = %q", got)
	}
	if got := ClassifyBlock(nil, "排行榜"); got != models.BlockRewards {
		t.Errorf("keyword title = %q", got)
	}
	if got := ClassifyBlock(nil, "Ranking Top 10"); got != models.BlockRewards {
		t.Errorf("latin keyword title = %q", got)
	}
	if got := ClassifyBlock(nil, "规则"); got != models.BlockRules {
		t.Errorf("rules title = %q", got)
	}
}

func TestParseSheetNoRegions(t *testing.T) {
	f := newTestFile(t)
	setCells(t, f, map[string]interface{}{"A1": "just some text"})

	doc, err := ParseSheet(f, testSheet)
	if err != nil {
		t.Fatalf("ParseSheet failed: %v", err)
	}
	if len(doc.Pages) != 0 {
		t.Errorf("expected no pages, got %v", doc.Pages)
	}
}

func TestParseSheetBlockBoundaries(t *testing.T) {
	f := newTestFile(t)
	setCells(t, f, map[string]interface{}{
		"B1":  "REGION-US",
		"B10": "TITLE-规则",
		"C10": "First",
		"C12": "hello",
		"B25": "TITLE-奖励榜单",
		"C25": "Second",
		"C27": "world",
	})
	if err := f.MergeCell(testSheet, "B1", "E1"); err != nil {
		t.Fatalf("MergeCell failed: %v", err)
	}

	doc, err := ParseSheet(f, testSheet)
	if err != nil {
		t.Fatalf("ParseSheet failed: %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}

	page := doc.Pages[0]
	if page.Region != "US" || page.Direction != "ltr" {
		t.Errorf("page = %+v", page)
	}
	if len(page.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(page.Blocks))
	}

	first := page.Blocks[0]
	if first.Title != "First" || first.Type != models.BlockRules {
		t.Errorf("first block = %q/%q", first.Title, first.Type)
	}
	// no marker matched anywhere in the block: fallback content
	if len(first.Sections) != 1 || first.Sections[0].Type != models.SectionFallback {
		t.Fatalf("first sections = %+v", first.Sections)
	}
	paras := first.Sections[0].Paragraphs
	if len(paras) != 1 || paras[0].Runs[0].Text != "hello" {
		t.Errorf("first block fallback = %v", paras)
	}

	second := page.Blocks[1]
	if second.Title != "Second" || second.Type != models.BlockRewards {
		t.Errorf("second block = %q/%q", second.Title, second.Type)
	}
}

func TestParseSheetRTLDirection(t *testing.T) {
	f := newTestFile(t)
	setCells(t, f, map[string]interface{}{
		"A1": "REGION-MECA",
		"A2": "TITLE-规则",
		"B2": "القواعد",
	})
	if err := f.MergeCell(testSheet, "A1", "C1"); err != nil {
		t.Fatalf("MergeCell failed: %v", err)
	}

	doc, err := ParseSheet(f, testSheet)
	if err != nil {
		t.Fatalf("ParseSheet failed: %v", err)
	}
	if doc.Pages[0].Direction != "rtl" {
		t.Errorf("direction = %q, expected rtl", doc.Pages[0].Direction)
	}
}

func TestParseSheetRulesAndRewards(t *testing.T) {
	f := newTestFile(t)
	setCells(t, f, map[string]interface{}{
		"A1": "REGION-US",
		"A2": "TITLE-规则",
		"B2": "Event",
		"A3": "RULES-说明",
		"B3": "Same",
		"A4": "RULES-说明", // duplicated marker row from a merged cell
		"B4": "Same",
		"A7": "RANK-Top",
		"B7": "Gold",
		"C7": "g.png",
		"D7": "first",
		"A9": "RANK-Top", // same-titled split, merged back together
		"B9": "Silver",
	})
	if err := f.MergeCell(testSheet, "A1", "D1"); err != nil {
		t.Fatalf("MergeCell failed: %v", err)
	}

	doc, err := ParseSheet(f, testSheet)
	if err != nil {
		t.Fatalf("ParseSheet failed: %v", err)
	}

	blocks := doc.Pages[0].Blocks
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	block := blocks[0]
	if block.Type != models.BlockRewards {
		t.Errorf("block type = %q", block.Type)
	}

	if len(block.Sections) != 2 {
		t.Fatalf("expected 2 sections after merging, got %+v", block.Sections)
	}

	rules := block.Sections[0]
	if rules.Type != models.SectionRules || rules.Title != "说明" {
		t.Errorf("rules section = %+v", rules)
	}
	if len(rules.Paragraphs) != 1 {
		t.Errorf("duplicated marker rows should dedup to one paragraph: %v", rules.Paragraphs)
	}

	rewards := block.Sections[1]
	if rewards.Title != "Top" || len(rewards.Rewards) != 2 {
		t.Errorf("rewards section = %+v", rewards)
	}
}
