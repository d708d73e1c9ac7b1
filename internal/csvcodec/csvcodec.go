// Package csvcodec converts timelines to and from the delimited text table
// format: RFC4180 quoting, a header-driven column layout, and the three
// accepted time encodings on import.
package csvcodec

import "errors"

// Import validation errors. An import that fails leaves the caller's
// timeline untouched; nothing is partially committed.
var (
	ErrNoRows          = errors.New("csv has no data rows")
	ErrNoTimeColumn    = errors.New("csv has no detectable time column")
	ErrNoSignalColumns = errors.New("csv has no columns matching known signals")
)
