// Package render turns ordered book groups into output documents.
package render

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/isg32/bookpiler/internal/booktree"
	"github.com/isg32/bookpiler/internal/title"
)

// Renderer writes one BookGroup to one document file and returns its path.
type Renderer interface {
	Render(group booktree.BookGroup, outDir string) (string, error)
}

// Options carries the visual assets shared by all backends.
type Options struct {
	AssetDir string
	LogoPath string
}

// New returns the backend for the given format ("docx" or "pdf").
func New(format string, opts Options, log *slog.Logger) (Renderer, error) {
	switch format {
	case "docx":
		return &DocxRenderer{opts: opts, log: log}, nil
	case "pdf":
		return &PDFRenderer{opts: opts, log: log}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// OutputPath is the output naming convention for one book.
func OutputPath(dir string, key booktree.GroupKey, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("Class %s - %s - Compiled Book%s", key.ClassID, key.Subject, ext))
}

var imageMarker = regexp.MustCompile(`^\[image:\s*([^\]]*?)\s*\]$`)

// ImageMarkerPath recognizes an embedded "[image: <path>]" line and returns
// the referenced path.
func ImageMarkerPath(line string) (string, bool) {
	m := imageMarker.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// SplitLines normalizes line endings and splits text into lines.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\f", "\n")
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}

// StripLeadingTitle drops a first line that duplicates the chapter title,
// the convention in question-set files.
func StripLeadingTitle(lines []string, chapterTitle string) []string {
	for i, line := range lines {
		cleaned := title.Clean(line)
		if cleaned == "" {
			continue
		}
		if strings.EqualFold(cleaned, title.Clean(chapterTitle)) {
			return append(append([]string{}, lines[:i]...), lines[i+1:]...)
		}
		break
	}
	return lines
}

const separatorWidth = 50

func separatorRule() string {
	return strings.Repeat("—", separatorWidth)
}
