// Package export renders project data into downloadable artifacts: a task
// CSV, a printable HTML report, a PDF of that report, and a small redirect
// page for pinning the app to a desktop.
package export

import "errors"

// Result contains the export output
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

// ErrPDFDependencyMissing indicates PDF export runtime dependencies are unavailable.
var ErrPDFDependencyMissing = errors.New("export pdf dependency missing")
