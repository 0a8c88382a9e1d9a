package parser

import (
	"github.com/takeda9/rulesheet-go/pkg/rulesheet/models"
)

// collectRules collects structured paragraphs from the bounded row range
// [r0, rEnd] into a rules section and returns the next unprocessed row.
//
// Rows whose composite run text already appeared in this collection are
// skipped (merged marker cells duplicate whole rows) without counting as a
// stop condition. A row with no content at all is preserved as a blank
// paragraph. A single isolated blank row is swallowed; a blank row followed
// by another blank row or a block marker terminates the collection, as does
// a TITLE-/RANK-/RINK- marker column or a TABLE- token in a content column.
func collectRules(g *Grid, c1, c2, r0, rEnd int, title string, sections *[]models.Section) int {
	var paragraphs []models.Paragraph
	seenLines := make(map[string]bool)

	rr := r0
	for rr <= rEnd {
		vals := g.RowText(rr, c1, c2)

		if rr > r0 {
			if parseMarker(vals[0]).isBlockBoundary() {
				break
			}
			if rowHasTableMarker(vals[1:]) {
				break
			}
			if IsBlankRow(vals) {
				if rr+1 > rEnd {
					break
				}
				next := g.RowText(rr+1, c1, c2)
				if IsBlankRow(next) || parseMarker(next[0]).isBlockBoundary() {
					break
				}
			}
		}

		para, key := styledParagraph(g, rr, c1, c2)
		if key == "" {
			paragraphs = append(paragraphs, para)
		} else if !seenLines[key] {
			seenLines[key] = true
			paragraphs = append(paragraphs, para)
		}
		rr++
	}

	*sections = append(*sections, models.Section{
		Type:       models.SectionRules,
		Title:      title,
		Paragraphs: paragraphs,
	})
	return rr
}
