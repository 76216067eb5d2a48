package extract

import (
	"os"
	"strings"
)

// TextExtractor handles plain text files.
type TextExtractor struct{}

func (x *TextExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := string(data)
	text = strings.TrimPrefix(text, "\xef\xbb\xbf") // BOM
	return strings.ReplaceAll(text, "\r\n", "\n"), nil
}
