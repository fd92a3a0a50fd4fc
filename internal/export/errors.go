package export

import "errors"

// ErrEmptyExportSet is returned when an export is requested over zero rows.
// Nothing is written in that case.
var ErrEmptyExportSet = errors.New("nothing to export")
