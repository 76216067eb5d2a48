package render

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/isg32/bookpiler/internal/booktree"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func sampleGroup() booktree.BookGroup {
	return booktree.BookGroup{
		Key: booktree.GroupKey{ClassID: "6", Subject: "Maths"},
		Chapters: []booktree.ChapterRecord{
			{
				ClassID:         "6",
				Subject:         "Maths",
				ChapterKey:      "Fractions",
				Title:           "Chapter 3: Fractions",
				ExplanationText: "Fractions are parts of a whole.\n\nMore detail.",
				QuestionsText:   "Chapter 3: Fractions\nQ1. What is a half?",
			},
			{
				ClassID:       "6",
				Subject:       "Maths",
				ChapterKey:    "Decimals",
				Title:         "Chapter 4: Decimals",
				QuestionsText: "Q1. Write 1/2 as a decimal.",
			},
		},
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("/out", booktree.GroupKey{ClassID: "6", Subject: "Maths"}, ".docx")
	want := filepath.Join("/out", "Class 6 - Maths - Compiled Book.docx")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestImageMarkerPath(t *testing.T) {
	cases := []struct {
		line string
		path string
		ok   bool
	}{
		{"[image: asset/fig1.png]", "asset/fig1.png", true},
		{"  [image:asset/fig1.png]  ", "asset/fig1.png", true},
		{"plain text line", "", false},
		{"[image: ]", "", false},
	}
	for _, tc := range cases {
		path, ok := ImageMarkerPath(tc.line)
		if ok != tc.ok || path != tc.path {
			t.Errorf("ImageMarkerPath(%q) = (%q, %v), want (%q, %v)", tc.line, path, ok, tc.path, tc.ok)
		}
	}
}

func TestStripLeadingTitle(t *testing.T) {
	lines := []string{"", "Chapter 3: Fractions", "Q1. What is a half?"}
	got := StripLeadingTitle(lines, "Chapter 3: Fractions")
	if len(got) != 2 || got[1] != "Q1. What is a half?" {
		t.Errorf("expected duplicate title stripped, got %v", got)
	}
}

func TestStripLeadingTitle_KeepsNonDuplicate(t *testing.T) {
	lines := []string{"Q1. What is a half?", "Q2."}
	got := StripLeadingTitle(lines, "Chapter 3: Fractions")
	if len(got) != 2 {
		t.Errorf("expected lines untouched, got %v", got)
	}
}

func TestStripLeadingTitle_CaseInsensitive(t *testing.T) {
	lines := []string{"CHAPTER 3: FRACTIONS", "Q1."}
	got := StripLeadingTitle(lines, "Chapter 3: Fractions")
	if len(got) != 1 || got[0] != "Q1." {
		t.Errorf("expected case-insensitive strip, got %v", got)
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("a\r\nb\fc\n")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	if _, err := New("epub", Options{}, testLogger()); err == nil {
		t.Errorf("expected error for unknown format")
	}
}

func TestDocxRenderer_WritesFile(t *testing.T) {
	out := t.TempDir()
	r, err := New("docx", Options{}, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	path, err := r.Render(sampleGroup(), out)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasSuffix(path, "Class 6 - Maths - Compiled Book.docx") {
		t.Errorf("unexpected output path %q", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Errorf("expected non-empty docx output")
	}
}

func TestPDFRenderer_WritesFile(t *testing.T) {
	out := t.TempDir()
	// Point the logo at a missing file: rendering must degrade, not fail.
	r, err := New("pdf", Options{LogoPath: filepath.Join(out, "missing-logo.png")}, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	path, err := r.Render(sampleGroup(), out)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Errorf("expected non-empty pdf output")
	}
}
