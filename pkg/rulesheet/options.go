package rulesheet

// Options configures a parse call.
type Options struct {
	// Sheet restricts parsing to one sheet by name. Empty means every
	// sheet; a name absent from the workbook is an error.
	Sheet string
}

// DefaultOptions returns the default parse options.
func DefaultOptions() Options {
	return Options{}
}
