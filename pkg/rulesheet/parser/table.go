package parser

import (
	"strings"

	"github.com/takeda9/rulesheet-go/pkg/rulesheet/models"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

const imagePrefix = "image:"

// collectTable collects a table section starting at the TABLE- marker row r0
// and returns the next unprocessed row.
//
// The marker cell's own merge span fixes the table's column extent; the
// marker's own column is excluded when it coincides with the block's leading
// column. With an unmerged marker the table spans the block's full width
// minus the marker column. Data rows start the row after the marker; there
// is no header row. Merged child cells are never emitted, and every row is
// appended, blank ones included, to keep rowspan alignment for the renderer.
func collectTable(g *Grid, c1, c2, r0 int, rEnd int, sections *[]models.Section) int {
	tc1, tc2 := c1+1, c2
	markerVals := g.RowText(r0, c1, c2)
	for i, v := range markerVals {
		if !parseMarker(v).is(markerTable) {
			continue
		}
		if rect, ok := g.MergeRect(r0, c1+i); ok {
			if rect.MinCol == c1 {
				tc1 = rect.MinCol + 1
			} else {
				tc1 = rect.MinCol
			}
			tc2 = rect.MaxCol
		}
		break
	}

	rows := make([][]models.TableCell, 0)
	rr := r0 + 1
	for rr <= rEnd {
		if parseMarker(g.Text(rr, c1)).isBlockBoundary() {
			break
		}

		vals := g.RowText(rr, tc1, tc2)
		if rowHasTableMarker(vals) {
			// End marker reached; consumed after the section is closed.
			break
		}

		// A single blank row inside a table is preserved as an empty
		// row; two consecutive blank rows, or a blank row followed by
		// a block marker, end the table.
		if IsBlankRow(vals) && rr+1 <= rEnd {
			next := g.RowText(rr+1, tc1, tc2)
			if IsBlankRow(next) || parseMarker(g.Text(rr+1, c1)).isBlockBoundary() {
				break
			}
		}

		row := make([]models.TableCell, 0, len(vals))
		for i, val := range vals {
			col := tc1 + i
			rowspan, colspan := 1, 1
			if rect, ok := g.MergeRect(rr, col); ok {
				rowspan = rect.MaxRow - rect.MinRow + 1
				colspan = rect.MaxCol - rect.MinCol + 1
				if rr != rect.MinRow || col != rect.MinCol {
					continue
				}
			}

			info := g.CellInfo(rr, col)
			cell := models.TableCell{
				Value:     val,
				Rowspan:   rowspan,
				Colspan:   colspan,
				Bold:      info.Bold,
				Center:    info.Alignment == "center",
				SourceRow: rr,
				SourceCol: col,
			}
			if key, ok := imageKey(val); ok {
				cell.IsImage = true
				cell.ExpectedImageKey = key
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
		rr++
	}

	*sections = append(*sections, models.Section{
		Type:  models.SectionTable,
		Table: &models.Table{Rows: rows},
	})

	if rr <= rEnd && rowHasTableMarker(g.RowText(rr, tc1, tc2)) {
		rr++
	}
	return rr
}

// imageKey reports whether a cell value references an image (a recognized
// extension anywhere in the text, or an "image:" prefix) and returns the
// expected image key with any "image:" prefix stripped.
func imageKey(val string) (string, bool) {
	if val == "" {
		return "", false
	}
	lower := strings.ToLower(val)
	if strings.HasPrefix(lower, imagePrefix) {
		return strings.TrimSpace(val[len(imagePrefix):]), true
	}
	for _, ext := range imageExtensions {
		if strings.Contains(lower, ext) {
			return val, true
		}
	}
	return "", false
}
