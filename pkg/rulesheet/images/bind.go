package images

import (
	"path"
	"strings"

	"github.com/takeda9/rulesheet-go/pkg/rulesheet/blob"
	"github.com/takeda9/rulesheet-go/pkg/rulesheet/models"
)

// PutFunc stores image bytes and returns a retrievable blob key.
type PutFunc func(data []byte, ext string) string

// target is one expected-image key with its anchor hint.
type target struct {
	key string
	row int
	col int
}

// Bind matches a parsed document's expected-image keys against the sheet's
// anchored pictures, stores matched bytes through put, and returns the key
// to reference map. Unmatched keys are simply absent; binding never fails.
func Bind(doc *models.Document, anchored []Anchored, put PutFunc) map[string]models.ImageRef {
	refs := make(map[string]models.ImageRef)
	if doc == nil || len(anchored) == 0 {
		return refs
	}

	for _, tgt := range collectTargets(doc) {
		if _, done := refs[tgt.key]; done {
			continue
		}
		pic := matchAnchor(tgt, anchored)
		if pic == nil {
			continue
		}
		refs[tgt.key] = models.ImageRef{
			Blob: put(pic.Data, pic.Ext),
			Name: pic.Name,
			Mime: blob.MimeForExt(pic.Ext),
		}
	}
	return refs
}

// collectTargets walks reward items and image table cells for expected-image
// keys, in document order.
func collectTargets(doc *models.Document) []target {
	var targets []target
	for _, page := range doc.Pages {
		for _, block := range page.Blocks {
			for _, section := range block.Sections {
				for _, item := range section.Rewards {
					if item.ExpectedImageKey != "" {
						targets = append(targets, target{
							key: item.ExpectedImageKey,
							row: item.SourceRow,
							col: item.ImageColumn,
						})
					}
				}
				if section.Table == nil {
					continue
				}
				for _, row := range section.Table.Rows {
					for _, cell := range row {
						if cell.IsImage && cell.ExpectedImageKey != "" {
							targets = append(targets, target{
								key: cell.ExpectedImageKey,
								row: cell.SourceRow,
								col: cell.SourceCol,
							})
						}
					}
				}
			}
		}
	}
	return targets
}

// matchAnchor picks the picture for a key: exact label match, then
// extension-stripped stem match, then substring match, then the nearest
// anchor to the key's source coordinate.
func matchAnchor(tgt target, anchored []Anchored) *Anchored {
	keyStem := stem(tgt.key)

	for i := range anchored {
		if strings.EqualFold(anchored[i].Name, tgt.key) {
			return &anchored[i]
		}
	}
	for i := range anchored {
		if stem(anchored[i].Name) == keyStem {
			return &anchored[i]
		}
	}
	for i := range anchored {
		nameStem := stem(anchored[i].Name)
		if nameStem == "" || keyStem == "" {
			continue
		}
		if strings.Contains(nameStem, keyStem) || strings.Contains(keyStem, nameStem) {
			return &anchored[i]
		}
	}

	// Positional fallback: anchors land on or just after the referencing
	// cell, never far from it.
	var best *Anchored
	bestDist := -1
	for i := range anchored {
		a := &anchored[i]
		if a.Row == 0 {
			continue
		}
		dr := abs(a.Row - tgt.row)
		dc := abs(a.Col - tgt.col)
		if dr > 3 || dc > 2 {
			continue
		}
		dist := dr*10 + dc
		if bestDist < 0 || dist < bestDist {
			best = a
			bestDist = dist
		}
	}
	return best
}

// stem lowercases and strips a recognized image extension.
func stem(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch path.Ext(s) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp":
		s = strings.TrimSuffix(s, path.Ext(s))
	}
	return s
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
