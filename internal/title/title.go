// Package title resolves the printed chapter title from extracted text.
package title

import (
	"strings"
	"unicode"
)

// Resolve returns the human-readable chapter title. Questions text is
// scanned first because the question-set files carry the printed title by
// convention; explanation text is the fallback, then the raw chapter key.
func Resolve(chapterKey, explanationText, questionsText string) string {
	if t := scan(questionsText); t != "" {
		return t
	}
	if t := scan(explanationText); t != "" {
		return t
	}
	return chapterKey
}

// scan returns the first cleaned line starting with "chapter",
// case-insensitively.
func scan(text string) string {
	for _, line := range strings.Split(text, "\n") {
		cleaned := Clean(line)
		if len(cleaned) >= 7 && strings.EqualFold(cleaned[:7], "chapter") {
			return cleaned
		}
	}
	return ""
}

// Clean strips non-printable runes and trims surrounding whitespace.
func Clean(line string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsGraphic(r) {
			return r
		}
		return -1
	}, line)
	return strings.TrimSpace(cleaned)
}
