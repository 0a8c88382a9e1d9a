// Package models defines data structures for rule-page extraction.
package models

// Section type tags.
const (
	SectionRules    = "rules"
	SectionRewards  = "rewards"
	SectionTable    = "table"
	SectionFallback = "fallback"
)

// Block type tags.
const (
	BlockRules   = "rules"
	BlockRewards = "rewards"
)

// Run is a styled span of text within a paragraph.
type Run struct {
	// Text is the cleaned cell text.
	Text string `json:"text"`
	// Bold is set only when the source font is bold.
	Bold bool `json:"bold,omitempty"`
	// Italic is set only when the source font is italic.
	Italic bool `json:"italic,omitempty"`
	// Color is the font color as "#RRGGBB" when one is set.
	Color string `json:"color,omitempty"`
}

// Paragraph is one row of rules or fallback content. A paragraph whose only
// run carries empty text represents a preserved blank line.
type Paragraph struct {
	// Align is "left", "center" or "right".
	Align string `json:"align"`
	// Runs are the styled text spans of the paragraph.
	Runs []Run `json:"runs"`
}

// RewardItem is one entry of a reward list. SourceRow, ImageColumn and
// ExpectedImageKey are metadata for image binding, not for display.
type RewardItem struct {
	// Name is the reward name.
	Name string `json:"name"`
	// Image is the raw image-reference cell text.
	Image string `json:"image"`
	// Desc is the reward description.
	Desc string `json:"desc"`
	// SourceRow is the 1-based sheet row the item was read from.
	SourceRow int `json:"sourceRow"`
	// ImageColumn is the 1-based sheet column expected to anchor the image.
	ImageColumn int `json:"imageColumn"`
	// ExpectedImageKey is the key the image binder matches drawings against.
	ExpectedImageKey string `json:"expectedImageKey"`
}

// TableCell is one emitted cell of a table section. Merged child cells are
// never emitted; renderers reconstruct spans from the origin cell alone.
type TableCell struct {
	// Value is the cleaned cell text.
	Value string `json:"value"`
	// IsImage is true when the cell text references an image.
	IsImage bool `json:"is_image"`
	// Rowspan is the merge height of the cell (1 if unmerged).
	Rowspan int `json:"rowspan"`
	// Colspan is the merge width of the cell (1 if unmerged).
	Colspan int `json:"colspan"`
	// Bold is true when the cell font is bold.
	Bold bool `json:"bold"`
	// Center is true when the cell is horizontally centered.
	Center bool `json:"center"`
	// SourceRow is the 1-based origin row of the cell.
	SourceRow int `json:"sourceRow"`
	// SourceCol is the 1-based origin column of the cell.
	SourceCol int `json:"sourceCol"`
	// ExpectedImageKey is set for image cells: the text with any
	// "image:" prefix stripped.
	ExpectedImageKey string `json:"expectedImageKey,omitempty"`
}

// Table holds the emitted rows of a table section. Blank rows are kept to
// preserve rowspan alignment for the renderer.
type Table struct {
	// Rows are the emitted table rows, top to bottom.
	Rows [][]TableCell `json:"rows"`
}

// Section is one content unit within a block. Type selects which of the
// payload fields is meaningful.
type Section struct {
	// Type is one of the Section* tags.
	Type string `json:"type"`
	// Title is the section title (empty for table sections).
	Title string `json:"title,omitempty"`
	// Paragraphs holds rules or fallback content.
	Paragraphs []Paragraph `json:"paragraphs,omitempty"`
	// Rewards holds reward list entries.
	Rewards []RewardItem `json:"rewards,omitempty"`
	// Table holds table content.
	Table *Table `json:"table,omitempty"`
}

// Block is the unit bounded by consecutive title rows.
type Block struct {
	// Title is the human-readable block title.
	Title string `json:"block_title"`
	// Type is BlockRules or BlockRewards.
	Type string `json:"block_type"`
	// Sections are the block's content sections in source order.
	Sections []Section `json:"sections"`
}

// Page is the parsed content of one region.
type Page struct {
	// Region is the region code (text after the REGION- marker).
	Region string `json:"region"`
	// Direction is "ltr" or "rtl" depending on the region code.
	Direction string `json:"direction"`
	// Blocks are the page's blocks in title-row order.
	Blocks []Block `json:"blocks"`
}

// Document is the terminal parse output for one sheet.
type Document struct {
	// Pages are the parsed regions in column-start order.
	Pages []Page `json:"pages"`
}

// ParseResult is the workbook-level output of a parse call.
type ParseResult struct {
	// Sheets maps sheet name to its parsed document.
	Sheets map[string]*Document `json:"sheets"`
	// SkippedSheets lists sheets without a region marker.
	SkippedSheets []string `json:"skipped_sheets"`
}

// ImageRef points a bound expected-image key at a stored blob.
type ImageRef struct {
	// Blob is the content hash of the stored image bytes.
	Blob string `json:"blob"`
	// Name is the drawing label or file name the key matched.
	Name string `json:"name,omitempty"`
	// Mime is the media type of the blob.
	Mime string `json:"mime"`
}
