package extract

import (
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files using goldmark. Each top-level
// block becomes one line of output, so headings stay scannable as title
// lines.
type MarkdownExtractor struct{}

func (x *MarkdownExtractor) Extract(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var buf strings.Builder
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		t := blockText(n, src)
		if t == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(t)
	}
	return buf.String(), nil
}

// blockText flattens one block node to plain text, one line per nested
// block-level child.
func blockText(n ast.Node, src []byte) string {
	switch n.Kind() {
	case ast.KindHeading, ast.KindParagraph, ast.KindTextBlock:
		return strings.TrimSpace(string(n.Text(src)))
	}

	var lines []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := blockText(c, src); t != "" {
			lines = append(lines, t)
		}
	}
	if len(lines) == 0 {
		return strings.TrimSpace(string(n.Text(src)))
	}
	return strings.Join(lines, "\n")
}
