// Package extract turns chapter source files into plain text.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Extractor produces the full plain-text content of one file.
type Extractor interface {
	Extract(path string) (string, error)
}

// ExtractionError reports an unreadable or corrupt source file. Callers
// treat the text as empty and keep going.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Options tunes extraction behavior.
type Options struct {
	// PDFFallbackPdftotext shells out to pdftotext when the Go PDF
	// library cannot read a file.
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions this package can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate extractor for a path.
func ForFile(path string, opts Options) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// FromFile extracts the plain text of one file. Errors are always
// *ExtractionError.
func FromFile(path string, opts Options) (string, error) {
	x, err := ForFile(path, opts)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	text, err := x.Extract(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	return text, nil
}
