// Package pdf provides the document capabilities the extraction run consumes:
// a page count, plain text per page, and up-front file validation.
package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PageSource is what the run orchestrator needs from an input document.
// Implementations other than Document exist only in tests.
type PageSource interface {
	// PageCount returns the number of pages.
	PageCount() int
	// PageText returns the plain text of the 1-based page, or "" when the
	// page has no extractable text.
	PageText(pageNum int) string
}

// Document is a PDF opened for per-page text extraction.
type Document struct {
	path   string
	file   *os.File
	reader *pdf.Reader
}

// Open opens the PDF at path for text extraction.
func Open(path string) (*Document, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("no se pudo abrir el PDF: %w", err)
	}
	return &Document{path: path, file: f, reader: reader}, nil
}

// Path returns the file path the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// PageText extracts the plain text of the 1-based page. Extraction failures
// on a single page (malformed content streams, fonts the library cannot
// decode) degrade to an empty string so one broken page never aborts a run.
func (d *Document) PageText(pageNum int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	if pageNum < 1 || pageNum > d.reader.NumPage() {
		return ""
	}
	page := d.reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return content
}

// HasText reports whether the page has any non-whitespace text.
func (d *Document) HasText(pageNum int) bool {
	return strings.TrimSpace(d.PageText(pageNum)) != ""
}

// Close releases the underlying file handle.
func (d *Document) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
