// Package parser implements marker-driven structural extraction over one
// spreadsheet sheet.
package parser

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// builtin number format ids rendering as percentages
var percentNumFmts = map[int]bool{9: true, 10: true}

// coord addresses a cell by 1-based (row, column).
type coord struct {
	R, C int
}

// Rect is a merge rectangle in 1-based inclusive coordinates.
type Rect struct {
	MinRow, MinCol, MaxRow, MaxCol int
}

// CellInfo is the resolved value and format of a cell. For cells covered by
// a merge range it reflects the range's top-left origin cell.
type CellInfo struct {
	// Value is the display value, with percentage formats rendered as text.
	Value string
	// Alignment is the horizontal alignment ("left", "center", "right")
	// or empty when unset.
	Alignment string
	// Bold reports whether the cell font is bold.
	Bold bool
	// Italic reports whether the cell font is italic.
	Italic bool
	// Color is the font color as "#RRGGBB", or empty.
	Color string
}

// Grid is a read-only accessor over one sheet's cells and its merge-range
// table. It is built once per sheet and passed into every collector.
type Grid struct {
	f     *excelize.File
	sheet string

	// MaxRow and MaxCol are the sheet bounds, merge ranges included.
	MaxRow int
	MaxCol int

	merges map[coord]Rect
	cache  map[coord]CellInfo
}

// NewGrid builds the grid context for one sheet, including its merge index.
func NewGrid(f *excelize.File, sheet string) (*Grid, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	g := &Grid{
		f:      f,
		sheet:  sheet,
		MaxRow: len(rows),
		merges: make(map[coord]Rect),
		cache:  make(map[coord]CellInfo),
	}
	for _, row := range rows {
		if len(row) > g.MaxCol {
			g.MaxCol = len(row)
		}
	}

	mergeCells, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}
	for _, mc := range mergeCells {
		c1, r1, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			continue
		}
		c2, r2, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			continue
		}
		rect := Rect{MinRow: r1, MinCol: c1, MaxRow: r2, MaxCol: c2}
		for r := rect.MinRow; r <= rect.MaxRow; r++ {
			for c := rect.MinCol; c <= rect.MaxCol; c++ {
				g.merges[coord{r, c}] = rect
			}
		}
		if rect.MaxRow > g.MaxRow {
			g.MaxRow = rect.MaxRow
		}
		if rect.MaxCol > g.MaxCol {
			g.MaxCol = rect.MaxCol
		}
	}

	return g, nil
}

// MergeRect returns the merge rectangle covering (r, c), if any.
func (g *Grid) MergeRect(r, c int) (Rect, bool) {
	rect, ok := g.merges[coord{r, c}]
	return rect, ok
}

// Origin resolves (r, c) to the top-left cell of its merge range, or to
// itself when unmerged.
func (g *Grid) Origin(r, c int) (int, int) {
	if rect, ok := g.merges[coord{r, c}]; ok {
		return rect.MinRow, rect.MinCol
	}
	return r, c
}

// CellInfo resolves (r, c) through the merge index and returns the origin
// cell's value and format.
func (g *Grid) CellInfo(r, c int) CellInfo {
	r0, c0 := g.Origin(r, c)
	key := coord{r0, c0}
	if info, ok := g.cache[key]; ok {
		return info
	}
	info := g.readCell(r0, c0)
	g.cache[key] = info
	return info
}

func (g *Grid) readCell(r, c int) CellInfo {
	cell, err := excelize.CoordinatesToCellName(c, r)
	if err != nil {
		return CellInfo{}
	}

	var info CellInfo
	info.Value, _ = g.f.GetCellValue(g.sheet, cell)

	var style *excelize.Style
	if styleID, err := g.f.GetCellStyle(g.sheet, cell); err == nil {
		style, _ = g.f.GetStyle(styleID)
	}

	if style != nil {
		if isPercentFormat(style) {
			raw, _ := g.f.GetCellValue(g.sheet, cell, excelize.Options{RawCellValue: true})
			if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
				info.Value = strconv.FormatFloat(v*100, 'g', 10, 64) + "%"
			}
		}
		if style.Alignment != nil {
			switch style.Alignment.Horizontal {
			case "left", "center", "right":
				info.Alignment = style.Alignment.Horizontal
			}
		}
		if style.Font != nil {
			info.Bold = style.Font.Bold
			info.Italic = style.Font.Italic
			info.Color = normalizeFontColor(style.Font.Color)
		}
	}

	return info
}

// Text returns the cleaned text of the resolved cell at (r, c).
func (g *Grid) Text(r, c int) string {
	return CleanText(g.CellInfo(r, c).Value)
}

// RowText returns the cleaned text of columns [c1, c2] on row r.
func (g *Grid) RowText(r, c1, c2 int) []string {
	vals := make([]string, 0, c2-c1+1)
	for c := c1; c <= c2; c++ {
		vals = append(vals, g.Text(r, c))
	}
	return vals
}

// IsBlankRow reports whether every value in vals is empty.
func IsBlankRow(vals []string) bool {
	for _, v := range vals {
		if v != "" {
			return false
		}
	}
	return true
}

// isPercentFormat reports whether a style renders numbers as percentages.
func isPercentFormat(style *excelize.Style) bool {
	if style.CustomNumFmt != nil && strings.Contains(*style.CustomNumFmt, "%") {
		return true
	}
	return percentNumFmts[style.NumFmt]
}

// normalizeFontColor converts an RGB/ARGB hex font color to "#RRGGBB".
// An 8-character ARGB value drops its leading alpha; anything other than a
// 6- or 8-character hex string yields no color.
func normalizeFontColor(rgb string) string {
	rgb = strings.TrimSpace(rgb)
	rgb = strings.TrimPrefix(rgb, "#")
	switch len(rgb) {
	case 8:
		return "#" + rgb[2:]
	case 6:
		return "#" + rgb
	default:
		return ""
	}
}

// CleanText trims a cell value, strips the textual formula wrapper left by
// formula-originated cells (="…" or ='…' or a bare leading =) and normalizes
// line-break variants to "\n".
func CleanText(v string) string {
	s := strings.TrimSpace(v)
	switch {
	case strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3:
		s = s[2 : len(s)-1]
	case strings.HasPrefix(s, `='`) && strings.HasSuffix(s, `'`) && len(s) >= 3:
		s = s[2 : len(s)-1]
	case strings.HasPrefix(s, "="):
		s = s[1:]
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}
