package models

// Region is a horizontal content band declared by a REGION-<code> marker.
// Its column span scopes every title and block beneath it.
type Region struct {
	// Code is the text after the REGION- prefix.
	Code string `json:"code"`
	// Row is the 1-based row of the marker's merge origin.
	Row int `json:"row"`
	// ColStart is the first column of the marker's merge span.
	ColStart int `json:"col_start"`
	// ColEnd is the last column of the marker's merge span.
	ColEnd int `json:"col_end"`
}

// Title is a TITLE-<type> marker found within a region. The adjacent cell
// holds the human-readable block title.
type Title struct {
	// Type is the text after the TITLE- prefix.
	Type string `json:"type"`
	// Text is the cleaned text of the cell one column to the right.
	Text string `json:"text"`
	// Row is the 1-based row the marker was found on.
	Row int `json:"row"`
}
