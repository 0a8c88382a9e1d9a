package parser

import (
	"github.com/takeda9/rulesheet-go/pkg/rulesheet/models"
)

// collectRewards collects reward entries starting at the RANK-/RINK- marker
// row r0 (the marker row itself carries the first entry) and returns the
// next unprocessed row.
//
// The expected layout relative to the marker column is name, image
// reference, description. When the name column is empty the remaining
// non-empty cells are assigned left to right: first to name, next to
// description if still empty. Any marker or a fully blank row after the
// first stops collection.
func collectRewards(g *Grid, c1, c2, r0 int, rEnd int, title string, sections *[]models.Section) int {
	var items []models.RewardItem

	rr := r0
	for rr <= rEnd {
		vals := g.RowText(rr, c1, c2)
		if rr != r0 {
			if m := parseMarker(vals[0]); m.isBlockBoundary() || m.is(markerRules) || m.is(markerTable) {
				break
			}
			if IsBlankRow(vals) {
				break
			}
		}

		var name, img, desc string
		if len(vals) > 1 {
			name = vals[1]
		}
		if len(vals) > 2 {
			img = vals[2]
		}
		if len(vals) > 3 {
			desc = vals[3]
		}
		if name == "" {
			for _, v := range vals[1:] {
				if v == "" {
					continue
				}
				if name == "" {
					name = v
				} else if desc == "" {
					desc = v
				}
			}
		}

		if name != "" || desc != "" || img != "" {
			expected := img
			if expected == "" {
				expected = name
			}
			// Metadata coordinates refer to the merge origin of the
			// image cell.
			imgRow, imgCol := g.Origin(rr, c1+2)
			items = append(items, models.RewardItem{
				Name:             name,
				Image:            img,
				Desc:             desc,
				SourceRow:        imgRow,
				ImageColumn:      imgCol,
				ExpectedImageKey: expected,
			})
		}
		rr++
	}

	*sections = append(*sections, models.Section{
		Type:    models.SectionRewards,
		Title:   title,
		Rewards: items,
	})
	return rr
}
