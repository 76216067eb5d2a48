package decode

import (
	"errors"
	"testing"

	"github.com/isg32/bookpiler/internal/booktree"
)

func TestDecode_StrictFlatPattern(t *testing.T) {
	rec, err := Decode("data/Class 6th - Maths - Fractions - Questions.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ClassID != "6" {
		t.Errorf("expected class %q, got %q", "6", rec.ClassID)
	}
	if rec.Subject != "Maths" {
		t.Errorf("expected subject %q, got %q", "Maths", rec.Subject)
	}
	if rec.ChapterKey != "Fractions" {
		t.Errorf("expected chapter %q, got %q", "Fractions", rec.ChapterKey)
	}
	if rec.Kind != booktree.KindQuestions {
		t.Errorf("expected kind questions, got %v", rec.Kind)
	}
}

func TestDecode_StrictPatternTrailingWhitespace(t *testing.T) {
	rec, err := Decode("Class 10 - Science - Light - Explanations .pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ClassID != "10" || rec.ChapterKey != "Light" || rec.Kind != booktree.KindExplanation {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestDecode_LooseFolderMode(t *testing.T) {
	rec, err := Decode("data/Class 6 Maths/A - B - Fractions - Explanation.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ClassID != "6" {
		t.Errorf("expected class %q, got %q", "6", rec.ClassID)
	}
	if rec.Subject != "Maths" {
		t.Errorf("expected subject %q, got %q", "Maths", rec.Subject)
	}
	if rec.ChapterKey != "Fractions" {
		t.Errorf("expected chapter %q, got %q", "Fractions", rec.ChapterKey)
	}
	if rec.Kind != booktree.KindExplanation {
		t.Errorf("expected kind explanation, got %v", rec.Kind)
	}
}

func TestDecode_KindSubstringCaseInsensitive(t *testing.T) {
	cases := []struct {
		name string
		want booktree.Kind
	}{
		{"data/Class 6 Maths/A - B - Algebra - EXPLANATION notes.txt", booktree.KindExplanation},
		{"data/Class 6 Maths/A - B - Algebra - question set v2.txt", booktree.KindQuestions},
	}
	for _, tc := range cases {
		rec, err := Decode(tc.name)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if rec.Kind != tc.want {
			t.Errorf("%s: expected kind %v, got %v", tc.name, tc.want, rec.Kind)
		}
	}
}

func TestDecode_TooFewSegments(t *testing.T) {
	_, err := Decode("data/Class 6 Maths/randomfile.pdf")
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
}

func TestDecode_UnknownKindToken(t *testing.T) {
	_, err := Decode("data/Class 6 Maths/A - B - Algebra - Answers.txt")
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
}

func TestDecode_MalformedFolder(t *testing.T) {
	_, err := Decode("data/misc/A - B - Algebra - Questions.txt")
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
}

func TestDecode_Deterministic(t *testing.T) {
	const name = "data/Class 6 Maths/A - B - Fractions - Question.txt"
	first, err := Decode(name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Decode(name)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("decode not deterministic: %+v vs %+v", again, first)
		}
	}
}
