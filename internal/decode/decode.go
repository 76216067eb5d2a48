package decode

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/isg32/bookpiler/internal/booktree"
)

// DecodeError reports a filename that does not match the expected grammar.
// Callers skip the file and keep going.
type DecodeError struct {
	Path   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.Path, e.Reason)
}

// strictPattern is the flat-layout grammar:
// "Class <N>[st|nd|rd|th] - <Subject> - <Chapter> - (Questions|Explanations).<ext>"
// with optional whitespace before the extension.
var strictPattern = regexp.MustCompile(`(?i)^class\s+(\d+)(?:st|nd|rd|th)?\s+-\s+(.+?)\s+-\s+(.+?)\s+-\s+(questions?|explanations?)\s*\.[a-z0-9]+$`)

// Decode parses one filename into a FileRecord. The strict flat pattern is
// tried first; failing that, the loose folder mode splits the base name on
// " - " and takes class/subject from the parent folder name. Any error
// returned is a *DecodeError.
func Decode(path string) (booktree.FileRecord, error) {
	base := filepath.Base(path)

	if m := strictPattern.FindStringSubmatch(base); m != nil {
		kind, ok := parseKind(m[4])
		if !ok {
			return booktree.FileRecord{}, &DecodeError{Path: path, Reason: fmt.Sprintf("unrecognized content kind %q", m[4])}
		}
		return booktree.FileRecord{
			Path:       path,
			ClassID:    m[1],
			Subject:    strings.TrimSpace(m[2]),
			ChapterKey: strings.TrimSpace(m[3]),
			Kind:       kind,
		}, nil
	}

	stem := strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(stem, " - ")
	if len(parts) < 4 {
		return booktree.FileRecord{}, &DecodeError{
			Path:   path,
			Reason: fmt.Sprintf("expected at least 4 %q-separated segments, got %d", " - ", len(parts)),
		}
	}

	kind, ok := parseKind(parts[len(parts)-1])
	if !ok {
		return booktree.FileRecord{}, &DecodeError{
			Path:   path,
			Reason: fmt.Sprintf("content kind segment %q matches neither explanation nor question", parts[len(parts)-1]),
		}
	}

	folder := filepath.Base(filepath.Dir(path))
	toks := strings.Fields(folder)
	if len(toks) < 3 {
		return booktree.FileRecord{}, &DecodeError{
			Path:   path,
			Reason: fmt.Sprintf("folder %q does not split into class/subject tokens", folder),
		}
	}

	return booktree.FileRecord{
		Path:       path,
		ClassID:    toks[1],
		Subject:    toks[2],
		ChapterKey: strings.TrimSpace(parts[len(parts)-2]),
		Kind:       kind,
	}, nil
}

// parseKind matches the content-kind token by case-insensitive substring,
// the loose convention used by the text inputs.
func parseKind(token string) (booktree.Kind, bool) {
	t := strings.ToLower(token)
	switch {
	case strings.Contains(t, "explanation"):
		return booktree.KindExplanation, true
	case strings.Contains(t, "question"):
		return booktree.KindQuestions, true
	}
	return 0, false
}
