package booktree

import "fmt"

// Kind distinguishes the two halves of a chapter.
type Kind int

const (
	KindExplanation Kind = iota
	KindQuestions
)

func (k Kind) String() string {
	switch k {
	case KindExplanation:
		return "explanation"
	case KindQuestions:
		return "questions"
	}
	return "unknown"
}

// FileRecord is one decoded input file.
type FileRecord struct {
	Path       string
	ClassID    string // e.g. "6"
	Subject    string // e.g. "Maths"
	ChapterKey string // raw chapter label from the filename
	Kind       Kind
}

// PairKey returns the pairing key for this record.
func (r FileRecord) PairKey() PairKey {
	return PairKey{ClassID: r.ClassID, Subject: r.Subject, ChapterKey: r.ChapterKey}
}

// PairKey identifies one chapter within one book.
type PairKey struct {
	ClassID    string
	Subject    string
	ChapterKey string
}

func (k PairKey) GroupKey() GroupKey {
	return GroupKey{ClassID: k.ClassID, Subject: k.Subject}
}

func (k PairKey) String() string {
	return k.ClassID + "/" + k.Subject + "/" + k.ChapterKey
}

// ChapterPair accumulates the explanation and questions paths for one key.
type ChapterPair struct {
	Key             PairKey
	ExplanationPath string
	QuestionsPath   string
}

func (p ChapterPair) HasBoth() bool {
	return p.ExplanationPath != "" && p.QuestionsPath != ""
}

func (p ChapterPair) HasEither() bool {
	return p.ExplanationPath != "" || p.QuestionsPath != ""
}

// GroupKey identifies one output book.
type GroupKey struct {
	ClassID string
	Subject string
}

// Label is the human-readable book prefix, e.g. "Class 6, Maths".
func (k GroupKey) Label() string {
	return fmt.Sprintf("Class %s, %s", k.ClassID, k.Subject)
}

// ChapterRecord is a fully resolved chapter, ready for rendering.
// Immutable once built.
type ChapterRecord struct {
	ClassID         string
	Subject         string
	ChapterKey      string
	Title           string
	ExplanationText string
	QuestionsText   string
}

// BookGroup is the ordered chapter list for one (class, subject) book.
type BookGroup struct {
	Key      GroupKey
	Chapters []ChapterRecord
}

// DiagnosticKind classifies a recovered per-file or per-chapter failure.
type DiagnosticKind string

const (
	DiagDecodeFailure  DiagnosticKind = "decode_failure"
	DiagIncompletePair DiagnosticKind = "incomplete_pair"
	DiagExtractError   DiagnosticKind = "extract_error"
	DiagAssetMissing   DiagnosticKind = "asset_missing"
)

// Diagnostic describes one skipped or degraded input. The run itself
// continues; diagnostics are reported to the caller at the end.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Path    string         `json:"path,omitempty"`
	Key     string         `json:"key,omitempty"`
	Message string         `json:"message"`
}
