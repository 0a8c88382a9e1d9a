package parser

import (
	"sort"
	"strings"

	"github.com/takeda9/rulesheet-go/pkg/rulesheet/models"
)

// markerKind classifies the row-leading cell markers editors place in the
// sheet. RINK- is a legacy alias of RANK- with the same semantics.
type markerKind int

const (
	markerNone markerKind = iota
	markerRegion
	markerTitle
	markerRules
	markerRank
	markerTable
)

// marker is a parsed cell marker: its kind plus the suffix text after the
// prefix (the region code, rules title or rank subtitle).
type marker struct {
	kind   markerKind
	suffix string
}

var markerPrefixes = []struct {
	prefix string
	kind   markerKind
}{
	{"REGION-", markerRegion},
	{"TITLE-", markerTitle},
	{"RULES-", markerRules},
	{"RANK-", markerRank},
	{"RINK-", markerRank},
	{"TABLE-", markerTable},
}

// parseMarker parses a cleaned cell value into a tagged marker. Values
// without a recognized prefix yield markerNone.
func parseMarker(v string) marker {
	for _, p := range markerPrefixes {
		if strings.HasPrefix(v, p.prefix) {
			return marker{kind: p.kind, suffix: strings.TrimSpace(v[len(p.prefix):])}
		}
	}
	return marker{kind: markerNone}
}

// is reports whether the marker has the given kind.
func (m marker) is(kind markerKind) bool {
	return m.kind == kind
}

// isBlockBoundary reports whether the marker starts a new block-level unit
// (a title or a reward list).
func (m marker) isBlockBoundary() bool {
	return m.kind == markerTitle || m.kind == markerRank
}

// FindRegions scans every cell in row-major order for REGION- markers. A
// marker's own merge span defines the region's column extent (or a single
// column when unmerged). Identical (code, row, span) tuples are deduplicated
// and the result is ordered by column start, then row; this ordering fixes
// the output page order.
func FindRegions(g *Grid) []models.Region {
	var regions []models.Region
	seen := make(map[models.Region]bool)

	for r := 1; r <= g.MaxRow; r++ {
		for c := 1; c <= g.MaxCol; c++ {
			m := parseMarker(g.Text(r, c))
			if !m.is(markerRegion) {
				continue
			}
			region := models.Region{Code: m.suffix, Row: r, ColStart: c, ColEnd: c}
			if rect, ok := g.MergeRect(r, c); ok {
				region.Row = rect.MinRow
				region.ColStart = rect.MinCol
				region.ColEnd = rect.MaxCol
			}
			if !seen[region] {
				seen[region] = true
				regions = append(regions, region)
			}
		}
	}

	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].ColStart != regions[j].ColStart {
			return regions[i].ColStart < regions[j].ColStart
		}
		return regions[i].Row < regions[j].Row
	})
	return regions
}

// ScanTitles finds the TITLE- markers below a region marker, within the
// region's column span. At most one title is recorded per row (first match
// wins); the cell one column to the right supplies the title text.
func ScanTitles(g *Grid, region models.Region) []models.Title {
	var titles []models.Title
	for r := region.Row + 1; r <= g.MaxRow; r++ {
		vals := g.RowText(r, region.ColStart, region.ColEnd)
		for i, v := range vals {
			m := parseMarker(v)
			if !m.is(markerTitle) {
				continue
			}
			var text string
			if i+1 < len(vals) {
				text = vals[i+1]
			}
			titles = append(titles, models.Title{Type: m.suffix, Text: text, Row: r})
			break
		}
	}
	return titles
}
