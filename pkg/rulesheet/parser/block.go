package parser

import (
	"strings"

	"github.com/takeda9/rulesheet-go/pkg/rulesheet/models"
)

// ParseSectionBlock walks one title block's row range [rStart, rEnd] within
// the column span [c1, c2] and dispatches to the content collectors based on
// the marker column (c1). Rows matched by no marker accumulate as fallback
// paragraphs, returned separately; they are used only when the block yields
// no sections at all.
func ParseSectionBlock(g *Grid, c1, c2, rStart, rEnd int) ([]models.Section, []models.Paragraph) {
	var sections []models.Section
	var fallback []models.Paragraph

	r := rStart
	for r <= rEnd {
		vals := g.RowText(r, c1, c2)
		if IsBlankRow(vals) {
			r++
			continue
		}

		// Table markers are recognized in any content column.
		if rowHasTableMarker(vals[1:]) {
			r = collectTable(g, c1, c2, r, rEnd, &sections)
			continue
		}

		first := parseMarker(vals[0])
		switch first.kind {
		case markerRules:
			// Repeated RULES- rows with the same title are an artifact
			// of merged marker cells; bound the extent first and hand
			// the sub-range to the collector.
			end := rulesExtent(g, c1, c2, r, rEnd, first.suffix)
			r = collectRules(g, c1, c2, r, end, first.suffix, &sections)
		case markerRank:
			r = collectRewards(g, c1, c2, r, rEnd, first.suffix, &sections)
		default:
			para, _ := styledParagraph(g, r, c1, c2)
			fallback = append(fallback, para)
			r++
		}
	}

	return sections, fallback
}

// rulesExtent scans forward from the RULES- marker row and returns the last
// row belonging to it: same-titled RULES- rows and unmarked content rows
// extend the extent; a blank row or any other marker ends it.
func rulesExtent(g *Grid, c1, c2, r, rEnd int, title string) int {
	end := r
	for end+1 <= rEnd {
		next := g.RowText(end+1, c1, c2)
		if IsBlankRow(next) {
			break
		}
		m := parseMarker(next[0])
		if m.isBlockBoundary() || m.is(markerTable) {
			break
		}
		if m.is(markerRules) && m.suffix != title {
			break
		}
		end++
	}
	return end
}

// rowHasTableMarker reports whether any non-empty value starts a TABLE-
// marker.
func rowHasTableMarker(vals []string) bool {
	for _, v := range vals {
		if v != "" && parseMarker(v).is(markerTable) {
			return true
		}
	}
	return false
}

// styledParagraph builds one paragraph from a row's content columns (the
// marker column c1 is excluded). One run is emitted per distinct non-empty
// cell value left to right; merged cells duplicate their text across columns
// and are collapsed by the in-row dedup. The paragraph takes the first
// non-default horizontal alignment found among its cells.
//
// The second return value is the row's dedup key (run texts joined); it is
// empty exactly when the row had no content, in which case the paragraph is
// a preserved blank line.
func styledParagraph(g *Grid, r, c1, c2 int) (models.Paragraph, string) {
	align := "left"
	var runs []models.Run
	var keyParts []string
	seen := make(map[string]bool)

	for c := c1 + 1; c <= c2; c++ {
		info := g.CellInfo(r, c)
		val := CleanText(info.Value)
		if val == "" || seen[val] {
			continue
		}
		seen[val] = true

		if align == "left" && (info.Alignment == "center" || info.Alignment == "right") {
			align = info.Alignment
		}
		runs = append(runs, models.Run{
			Text:   val,
			Bold:   info.Bold,
			Italic: info.Italic,
			Color:  info.Color,
		})
		keyParts = append(keyParts, val)
	}

	if len(runs) == 0 {
		return blankParagraph(), ""
	}
	return models.Paragraph{Align: align, Runs: runs}, strings.Join(keyParts, "|")
}

// blankParagraph is the preserved-blank-line paragraph: a single run with
// empty text.
func blankParagraph() models.Paragraph {
	return models.Paragraph{Align: "left", Runs: []models.Run{{Text: ""}}}
}
