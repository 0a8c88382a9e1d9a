package parser

import (
	"strings"

	"github.com/takeda9/rulesheet-go/pkg/rulesheet/models"
	"github.com/xuri/excelize/v2"
)

// rtlRegionCodes are locale tokens marking right-to-left regions (Middle
// East, Arabic and Hebrew locales). Matching is by substring of the
// uppercased region code.
var rtlRegionCodes = []string{
	"MECA", "ARAB", "ARABIC", "SA", "UAE", "EG", "IL", "ISRAEL", "JO", "LB", "IQ", "SY",
}

// rewardKeywords mark a title-marker type as reward content regardless of
// the sections collected under it.
var rewardKeywords = []string{
	"奖励", "奖品", "榜", "排行", "排名", "reward", "prize", "ranking", "leaderboard",
}

// IsRTLRegion reports whether a region code names a right-to-left locale.
func IsRTLRegion(code string) bool {
	if code == "" {
		return false
	}
	upper := strings.ToUpper(code)
	for _, rtl := range rtlRegionCodes {
		if strings.Contains(upper, rtl) {
			return true
		}
	}
	return false
}

// MergeRewardSections coalesces reward sections sharing an identical title
// into one section with concatenated item lists, preserving first-seen
// order. Non-reward sections and empty reward sections pass through
// unchanged; marker duplication across merged cells is what produces the
// same-titled splits in the first place.
func MergeRewardSections(sections []models.Section) []models.Section {
	merged := make([]models.Section, 0, len(sections))
	titleIndex := make(map[string]int)

	for _, s := range sections {
		if s.Type != models.SectionRewards || len(s.Rewards) == 0 {
			merged = append(merged, s)
			continue
		}
		if idx, ok := titleIndex[s.Title]; ok {
			merged[idx].Rewards = append(merged[idx].Rewards, s.Rewards...)
			continue
		}
		titleIndex[s.Title] = len(merged)
		merged = append(merged, models.Section{
			Type:    models.SectionRewards,
			Title:   s.Title,
			Rewards: append([]models.RewardItem(nil), s.Rewards...),
		})
	}
	return merged
}

// ClassifyBlock infers whether a block is reward or rules content: rewards
// when its merged sections carry at least one reward item, or when the
// title-marker type contains a reward keyword (case-insensitive).
func ClassifyBlock(sections []models.Section, titleType string) string {
	for _, s := range sections {
		if len(s.Rewards) > 0 {
			return models.BlockRewards
		}
	}
	lower := strings.ToLower(titleType)
	for _, kw := range rewardKeywords {
		if strings.Contains(lower, kw) {
			return models.BlockRewards
		}
	}
	return models.BlockRules
}

// ParseSheet parses one sheet into its page tree: regions become pages,
// title markers bound blocks, and the section block parser fills each block.
func ParseSheet(f *excelize.File, sheet string) (*models.Document, error) {
	g, err := NewGrid(f, sheet)
	if err != nil {
		return nil, err
	}

	pages := make([]models.Page, 0)
	for _, region := range FindRegions(g) {
		titles := ScanTitles(g, region)
		blocks := make([]models.Block, 0, len(titles))

		for i, title := range titles {
			rStart := title.Row + 1
			rEnd := g.MaxRow
			if i+1 < len(titles) {
				rEnd = titles[i+1].Row - 1
			}

			sections, fallback := ParseSectionBlock(g, region.ColStart, region.ColEnd, rStart, rEnd)
			if len(sections) > 0 {
				sections = MergeRewardSections(sections)
			} else {
				sections = []models.Section{{
					Type:       models.SectionFallback,
					Title:      orDefault(title.Text, title.Type),
					Paragraphs: fallback,
				}}
			}

			blocks = append(blocks, models.Block{
				Title:    stripTitleResidue(orDefault(title.Text, title.Type)),
				Type:     ClassifyBlock(sections, title.Type),
				Sections: sections,
			})
		}

		direction := "ltr"
		if IsRTLRegion(region.Code) {
			direction = "rtl"
		}
		pages = append(pages, models.Page{
			Region:    region.Code,
			Direction: direction,
			Blocks:    blocks,
		})
	}

	return &models.Document{Pages: pages}, nil
}

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// stripTitleResidue drops a TITLE- prefix left over when the title cell
// itself was filled with a marker by mistake.
func stripTitleResidue(title string) string {
	if strings.HasPrefix(title, "TITLE-") {
		return strings.TrimSpace(strings.TrimPrefix(title, "TITLE-"))
	}
	return title
}
