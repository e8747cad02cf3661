// Package pagekit rotates, selects, merges and splits the pages of PDF files
// through short-lived document handles.
//
// A handle never touches the file it was opened from: Open copies the source
// into a private working copy, every change happens in memory, and only
// Write produces output. Close removes the working copy.
//
// # Quick Start
//
//	import "github.com/benedoc-inc/pagekit"
//
//	doc, err := pagekit.Open("scan.pdf", pagekit.Options{})
//	if err != nil {
//		return err
//	}
//	defer doc.Close()
//
//	doc.Rotate(1, 90)      // page 1 is now rotated 90 degrees
//	doc.Select(1, 3, 5)    // keep pages 1, 3 and 5 in that order
//	doc.Write("out.pdf")
//
// # Packages
//
//   - core/manipulate: document handles and page structure operations
//   - core/angle: rotation delta validation and combination
//   - core/workcopy: private working copies with guaranteed removal
//   - core/model: the pdfcpu-backed document model
//   - types: errors, warnings and page descriptions
package pagekit

import (
	"github.com/benedoc-inc/pagekit/core/angle"
	"github.com/benedoc-inc/pagekit/core/manipulate"
	"github.com/benedoc-inc/pagekit/types"
)

// Re-export common types for convenience.
// Users can import just "github.com/benedoc-inc/pagekit" for basic usage.

// Document is an open PDF backed by a private working copy.
type Document = manipulate.Document

// Options configures how documents are opened.
type Options = manipulate.Options

// PageRange is an inclusive, 1-based range of pages.
type PageRange = manipulate.PageRange

// PageSize holds page dimensions in points.
type PageSize = types.PageSize

// Inventory describes a document's pages.
type Inventory = types.Inventory

// Warning is a non-fatal finding such as a merge geometry mismatch.
type Warning = types.Warning

// Error is the structured error returned by every operation.
type Error = types.PDFError

// Open copies the PDF at path into a private working copy and opens it.
func Open(path string, opts Options) (*Document, error) {
	return manipulate.Open(path, opts)
}

// With opens the PDF at path, runs fn and closes the document on every exit path.
func With(path string, opts Options, fn func(d *Document) error) error {
	return manipulate.With(path, opts, fn)
}

// IsAcceptable reports whether a page may be rotated by angle degrees.
func IsAcceptable(angleDegrees int) bool {
	return angle.IsAcceptable(angleDegrees)
}

// IsAcceptableText parses text as an integer and reports whether it is an acceptable rotation.
func IsAcceptableText(text string) bool {
	return angle.IsAcceptableText(text)
}

// Version returns the library version.
func Version() string {
	return "0.1.0"
}
