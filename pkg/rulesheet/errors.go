package rulesheet

import (
	"errors"
	"fmt"
)

// ErrSheetNotFound indicates an explicitly requested sheet is absent from
// the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ParseError represents a failure while parsing one sheet.
type ParseError struct {
	Sheet string
	Stage string // "grid", "parse"
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in sheet %q (%s): %v", e.Sheet, e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
