package parser

import (
	"testing"

	"github.com/takeda9/rulesheet-go/pkg/rulesheet/models"
	"github.com/xuri/excelize/v2"
)

func excelizeStyleCenterBold() excelize.Style {
	return excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}
}

func TestCollectRulesDedupAcrossRows(t *testing.T) {
	f := newTestFile(t)
	setCells(t, f, map[string]interface{}{
		"A4": "RULES-说明",
		"B4": "Same line",
		"C4": "Same line", // merged-cell duplication within the row
		"A5": "RULES-说明",
		"B5": "Same line",
	})

	g := mustGrid(t, f)
	var sections []models.Section
	next := collectRules(g, 1, 3, 4, 5, "说明", &sections)

	if next != 6 {
		t.Errorf("next row = %d, expected 6", next)
	}
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	s := sections[0]
	if s.Type != models.SectionRules || s.Title != "说明" {
		t.Errorf("section = %+v", s)
	}
	if len(s.Paragraphs) != 1 {
		t.Fatalf("expected 1 paragraph after dedup, got %d: %v", len(s.Paragraphs), s.Paragraphs)
	}
	if len(s.Paragraphs[0].Runs) != 1 || s.Paragraphs[0].Runs[0].Text != "Same line" {
		t.Errorf("paragraph runs = %v", s.Paragraphs[0].Runs)
	}
}

func TestCollectRulesPreservesSingleBlankRow(t *testing.T) {
	f := newTestFile(t)
	setCells(t, f, map[string]interface{}{
		"A4": "RULES-说明",
		"B4": "first",
		"B6": "second", // row 5 stays blank
	})

	g := mustGrid(t, f)
	var sections []models.Section
	collectRules(g, 1, 3, 4, 6, "说明", &sections)

	paras := sections[0].Paragraphs
	if len(paras) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d: %v", len(paras), paras)
	}
	if paras[1].Runs[0].Text != "" {
		t.Errorf("middle paragraph should be a preserved blank line, got %v", paras[1])
	}
	if paras[2].Runs[0].Text != "second" {
		t.Errorf("paragraphs[2] = %v", paras[2])
	}
}

func TestCollectRulesStopsOnTwoBlankRows(t *testing.T) {
	f := newTestFile(t)
	setCells(t, f, map[string]interface{}{
		"A4": "RULES-说明",
		"B4": "first",
		"B8": "unreachable", // rows 5 and 6 are blank
	})

	g := mustGrid(t, f)
	var sections []models.Section
	next := collectRules(g, 1, 3, 4, 8, "说明", &sections)

	if next != 5 {
		t.Errorf("next row = %d, expected 5", next)
	}
	paras := sections[0].Paragraphs
	if len(paras) != 1 || paras[0].Runs[0].Text != "first" {
		t.Errorf("paragraphs = %v", paras)
	}
}

func TestCollectRulesStopsOnBlockMarker(t *testing.T) {
	f := newTestFile(t)
	setCells(t, f, map[string]interface{}{
		"A4": "RULES-说明",
		"B4": "content",
		"A5": "RANK-Top",
		"B5": "Gold",
	})

	g := mustGrid(t, f)
	var sections []models.Section
	next := collectRules(g, 1, 3, 4, 5, "说明", &sections)

	if next != 5 {
		t.Errorf("next row = %d, expected 5", next)
	}
	if len(sections[0].Paragraphs) != 1 {
		t.Errorf("paragraphs = %v", sections[0].Paragraphs)
	}
}

func TestCollectRulesAlignmentAndStyle(t *testing.T) {
	f := newTestFile(t)
	setCells(t, f, map[string]interface{}{
		"A4": "RULES-说明",
		"B4": "centered bold",
	})
	style := excelizeStyleCenterBold()
	styleID, err := f.NewStyle(&style)
	if err != nil {
		t.Fatalf("NewStyle failed: %v", err)
	}
	if err := f.SetCellStyle(testSheet, "B4", "B4", styleID); err != nil {
		t.Fatalf("SetCellStyle failed: %v", err)
	}

	g := mustGrid(t, f)
	var sections []models.Section
	collectRules(g, 1, 3, 4, 4, "说明", &sections)

	para := sections[0].Paragraphs[0]
	if para.Align != "center" {
		t.Errorf("align = %q, expected center", para.Align)
	}
	if !para.Runs[0].Bold {
		t.Error("expected bold run")
	}
}
