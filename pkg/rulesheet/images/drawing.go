// Package images extracts embedded pictures from an xlsx workbook and binds
// them to the expected-image keys a parsed document carries.
package images

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"path"
	"strings"
)

// Anchored is one embedded picture with its cell anchor and drawing label.
type Anchored struct {
	// Name is the drawing label (cNvPr name), or the media file name when
	// the label is empty.
	Name string
	// Ext is the media file extension, dot included.
	Ext string
	// Row is the 1-based anchor row (0 when absolutely positioned).
	Row int
	// Col is the 1-based anchor column (0 when absolutely positioned).
	Col int
	// Data is the raw media content.
	Data []byte
}

// OOXML document models for the parts of a drawing we consume.

type xlWorkbook struct {
	Sheets []struct {
		Name string `xml:"name,attr"`
		RID  string `xml:"id,attr"`
	} `xml:"sheets>sheet"`
}

type relationships struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type xdrDrawing struct {
	XMLName  xml.Name    `xml:"wsDr"`
	TwoCell  []xdrAnchor `xml:"twoCellAnchor"`
	OneCell  []xdrAnchor `xml:"oneCellAnchor"`
	Absolute []xdrAnchor `xml:"absoluteAnchor"`
}

type xdrAnchor struct {
	From *xdrMarker `xml:"from"`
	Pics []xdrPic   `xml:"pic"`
}

type xdrMarker struct {
	Col int `xml:"col"`
	Row int `xml:"row"`
}

type xdrPic struct {
	NvPicPr struct {
		CNvPr struct {
			Name string `xml:"name,attr"`
		} `xml:"cNvPr"`
	} `xml:"nvPicPr"`
	BlipFill struct {
		Blip struct {
			Embed string `xml:"embed,attr"`
		} `xml:"blip"`
	} `xml:"blipFill"`
}

// ExtractSheetImages reads the drawing attached to one sheet and returns its
// embedded pictures with anchors. Sheets without a drawing yield nil; a
// malformed drawing degrades to whatever pictures were resolvable.
func ExtractSheetImages(xlsxPath, sheetName string) ([]Anchored, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	drawingPath := sheetDrawingPath(&r.Reader, sheetName)
	if drawingPath == "" {
		return nil, nil
	}

	drawingXML := readZipFile(&r.Reader, drawingPath)
	if drawingXML == nil {
		return nil, nil
	}
	var drawing xdrDrawing
	if err := xml.Unmarshal(drawingXML, &drawing); err != nil {
		return nil, nil
	}

	rels := readRelationships(&r.Reader, relsPathFor(drawingPath))

	var pictures []Anchored
	anchors := make([]xdrAnchor, 0, len(drawing.TwoCell)+len(drawing.OneCell)+len(drawing.Absolute))
	anchors = append(anchors, drawing.TwoCell...)
	anchors = append(anchors, drawing.OneCell...)
	anchors = append(anchors, drawing.Absolute...)

	for _, anchor := range anchors {
		for _, pic := range anchor.Pics {
			target, ok := rels[pic.BlipFill.Blip.Embed]
			if !ok {
				continue
			}
			mediaPath := resolveRelativePath(target, path.Dir(drawingPath))
			data := readZipFile(&r.Reader, mediaPath)
			if data == nil {
				continue
			}

			a := Anchored{
				Name: pic.NvPicPr.CNvPr.Name,
				Ext:  path.Ext(mediaPath),
				Data: data,
			}
			if a.Name == "" {
				a.Name = path.Base(mediaPath)
			}
			if anchor.From != nil {
				// drawing anchors are 0-based
				a.Row = anchor.From.Row + 1
				a.Col = anchor.From.Col + 1
			}
			pictures = append(pictures, a)
		}
	}

	return pictures, nil
}

// sheetDrawingPath resolves the drawing XML path attached to a sheet, going
// through workbook.xml, the workbook relationships, and the sheet's own
// relationships.
func sheetDrawingPath(r *zip.Reader, sheetName string) string {
	workbookXML := readZipFile(r, "xl/workbook.xml")
	if workbookXML == nil {
		return ""
	}
	var wb xlWorkbook
	if err := xml.Unmarshal(workbookXML, &wb); err != nil {
		return ""
	}

	var sheetRID string
	for _, s := range wb.Sheets {
		if s.Name == sheetName {
			sheetRID = s.RID
			break
		}
	}
	if sheetRID == "" {
		return ""
	}

	wbRels := readRelationships(r, "xl/_rels/workbook.xml.rels")
	target, ok := wbRels[sheetRID]
	if !ok || !strings.Contains(strings.ToLower(target), "worksheet") {
		return ""
	}
	sheetPath := resolveRelativePath(target, "xl")

	sheetRels := readRelationshipsTyped(r, relsPathFor(sheetPath), "drawing")
	if sheetRels == "" {
		return ""
	}
	return resolveRelativePath(sheetRels, "xl/drawings")
}

// relsPathFor returns the relationships part path for an OOXML part.
func relsPathFor(partPath string) string {
	return path.Dir(partPath) + "/_rels/" + path.Base(partPath) + ".rels"
}

// readRelationships reads a relationships part into an rId to target map.
func readRelationships(r *zip.Reader, relsPath string) map[string]string {
	result := make(map[string]string)
	data := readZipFile(r, relsPath)
	if data == nil {
		return result
	}
	var rels relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return result
	}
	for _, rel := range rels.Rels {
		result[rel.ID] = rel.Target
	}
	return result
}

// readRelationshipsTyped returns the target of the first relationship whose
// type contains the given token.
func readRelationshipsTyped(r *zip.Reader, relsPath, typeToken string) string {
	data := readZipFile(r, relsPath)
	if data == nil {
		return ""
	}
	var rels relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return ""
	}
	for _, rel := range rels.Rels {
		if strings.Contains(strings.ToLower(rel.Type), typeToken) {
			return rel.Target
		}
	}
	return ""
}

func readZipFile(r *zip.Reader, name string) []byte {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				return nil
			}
			return data
		}
	}
	return nil
}

// resolveRelativePath resolves an OOXML relationship target against the
// directory of the part holding it.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "../") {
		clean := target
		for strings.HasPrefix(clean, "../") {
			clean = strings.TrimPrefix(clean, "../")
		}
		return "xl/" + clean
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return baseDir + "/" + target
}
