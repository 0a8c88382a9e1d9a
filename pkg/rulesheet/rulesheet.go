// Package rulesheet converts marker-annotated spreadsheet workbooks into
// hierarchical rule-page documents.
package rulesheet

import (
	"fmt"
	"strings"

	"github.com/takeda9/rulesheet-go/pkg/rulesheet/models"
	"github.com/takeda9/rulesheet-go/pkg/rulesheet/parser"
	"github.com/xuri/excelize/v2"
)

// ParseFile opens an xlsx file and parses it. See ParseWorkbook.
func ParseFile(path string, opts Options) (*models.ParseResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseWorkbook(f, opts)
}

// ParseWorkbook parses every sheet carrying a region marker into a Document.
// Sheets without one are reported in SkippedSheets. With an explicit sheet
// filter, only that sheet is considered; requesting a sheet absent from the
// workbook fails with ErrSheetNotFound.
func ParseWorkbook(f *excelize.File, opts Options) (*models.ParseResult, error) {
	result := &models.ParseResult{
		Sheets:        make(map[string]*models.Document),
		SkippedSheets: []string{},
	}

	sheetList := f.GetSheetList()
	if opts.Sheet != "" {
		if !containsSheet(sheetList, opts.Sheet) {
			return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, opts.Sheet)
		}
		sheetList = []string{opts.Sheet}
	}

	for _, sheet := range sheetList {
		if !HasRegionMarker(f, sheet) {
			result.SkippedSheets = append(result.SkippedSheets, sheet)
			continue
		}
		doc, err := parser.ParseSheet(f, sheet)
		if err != nil {
			return nil, &ParseError{Sheet: sheet, Stage: "parse", Err: err}
		}
		result.Sheets[sheet] = doc
	}

	return result, nil
}

// HasRegionMarker reports whether any cell in the sheet's first row, after
// cleaning, starts with REGION-.
func HasRegionMarker(f *excelize.File, sheet string) bool {
	rows, err := f.Rows(sheet)
	if err != nil {
		return false
	}
	defer rows.Close()

	if !rows.Next() {
		return false
	}
	cols, err := rows.Columns()
	if err != nil {
		return false
	}
	for _, v := range cols {
		if strings.HasPrefix(parser.CleanText(v), "REGION-") {
			return true
		}
	}
	return false
}

func containsSheet(sheets []string, name string) bool {
	for _, s := range sheets {
		if s == name {
			return true
		}
	}
	return false
}
