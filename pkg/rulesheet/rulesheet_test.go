package rulesheet

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func newWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })
	return f
}

func fillRegionSheet(t *testing.T, f *excelize.File, sheet string) {
	t.Helper()
	cells := map[string]string{
		"A1": "REGION-US",
		"A2": "TITLE-规则",
		"B2": "Event Rules",
		"B3": "line one",
	}
	for axis, v := range cells {
		if err := f.SetCellValue(sheet, axis, v); err != nil {
			t.Fatalf("SetCellValue(%s) failed: %v", axis, err)
		}
	}
	if err := f.MergeCell(sheet, "A1", "C1"); err != nil {
		t.Fatalf("MergeCell failed: %v", err)
	}
}

func TestHasRegionMarker(t *testing.T) {
	f := newWorkbook(t)
	fillRegionSheet(t, f, "Sheet1")
	if !HasRegionMarker(f, "Sheet1") {
		t.Error("expected marker on Sheet1")
	}

	if _, err := f.NewSheet("Notes"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	if err := f.SetCellValue("Notes", "A1", "no marker here"); err != nil {
		t.Fatalf("SetCellValue failed: %v", err)
	}
	if HasRegionMarker(f, "Notes") {
		t.Error("expected no marker on Notes")
	}
	if HasRegionMarker(f, "missing") {
		t.Error("expected false for a missing sheet")
	}
}

func TestHasRegionMarkerFormulaWrapped(t *testing.T) {
	f := newWorkbook(t)
	if err := f.SetCellValue("Sheet1", "B1", `="REGION-TW"`); err != nil {
		t.Fatalf("SetCellValue failed: %v", err)
	}
	if !HasRegionMarker(f, "Sheet1") {
		t.Error("expected the marker to survive text cleaning")
	}
}

func TestParseWorkbookSkipsUnmarkedSheets(t *testing.T) {
	f := newWorkbook(t)
	fillRegionSheet(t, f, "Sheet1")
	if _, err := f.NewSheet("Scratch"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	if err := f.SetCellValue("Scratch", "A1", "notes"); err != nil {
		t.Fatalf("SetCellValue failed: %v", err)
	}

	result, err := ParseWorkbook(f, DefaultOptions())
	if err != nil {
		t.Fatalf("ParseWorkbook failed: %v", err)
	}
	if len(result.Sheets) != 1 {
		t.Fatalf("expected 1 parsed sheet, got %d", len(result.Sheets))
	}
	doc, ok := result.Sheets["Sheet1"]
	if !ok {
		t.Fatal("Sheet1 missing from results")
	}
	if len(doc.Pages) != 1 || doc.Pages[0].Region != "US" {
		t.Errorf("pages = %+v", doc.Pages)
	}
	if len(result.SkippedSheets) != 1 || result.SkippedSheets[0] != "Scratch" {
		t.Errorf("skipped = %v", result.SkippedSheets)
	}
}

func TestParseWorkbookSheetFilter(t *testing.T) {
	f := newWorkbook(t)
	fillRegionSheet(t, f, "Sheet1")

	result, err := ParseWorkbook(f, Options{Sheet: "Sheet1"})
	if err != nil {
		t.Fatalf("ParseWorkbook failed: %v", err)
	}
	if len(result.Sheets) != 1 {
		t.Errorf("expected 1 sheet, got %d", len(result.Sheets))
	}

	_, err = ParseWorkbook(f, Options{Sheet: "nope"})
	if !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("expected ErrSheetNotFound, got %v", err)
	}
}

func TestParseFileRoundTrip(t *testing.T) {
	f := newWorkbook(t)
	fillRegionSheet(t, f, "Sheet1")

	path := filepath.Join(t.TempDir(), "rules.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}

	result, err := ParseFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	doc := result.Sheets["Sheet1"]
	if doc == nil || len(doc.Pages) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	page := doc.Pages[0]
	if page.Region != "US" || len(page.Blocks) != 1 {
		t.Errorf("page = %+v", page)
	}
	if page.Blocks[0].Title != "Event Rules" {
		t.Errorf("title = %q", page.Blocks[0].Title)
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "absent.xlsx"), DefaultOptions()); err == nil {
		t.Error("expected an error for a missing file")
	}
}
