package pairing

import (
	"testing"

	"github.com/isg32/bookpiler/internal/booktree"
)

func record(chapter string, kind booktree.Kind, path string) booktree.FileRecord {
	return booktree.FileRecord{
		Path:       path,
		ClassID:    "6",
		Subject:    "Maths",
		ChapterKey: chapter,
		Kind:       kind,
	}
}

func TestIngest_MergesBothKinds(t *testing.T) {
	ix := New()
	ix.Ingest(record("Fractions", booktree.KindExplanation, "a.txt"))
	ix.Ingest(record("Fractions", booktree.KindQuestions, "b.txt"))

	pairs := ix.DrainComplete(RequireBoth)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	if pairs[0].ExplanationPath != "a.txt" || pairs[0].QuestionsPath != "b.txt" {
		t.Errorf("unexpected pair: %+v", pairs[0])
	}
}

func TestIngest_LastWriteWins(t *testing.T) {
	ix := New()
	ix.Ingest(record("Fractions", booktree.KindQuestions, "old.txt"))
	ix.Ingest(record("Fractions", booktree.KindQuestions, "new.txt"))

	pairs := ix.DrainComplete(RequireEither)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	if pairs[0].QuestionsPath != "new.txt" {
		t.Errorf("expected latest path to win, got %q", pairs[0].QuestionsPath)
	}
	if ix.Overwrites() != 1 {
		t.Errorf("expected 1 recorded overwrite, got %d", ix.Overwrites())
	}
}

func TestDrainComplete_RequireBoth(t *testing.T) {
	ix := New()
	ix.Ingest(record("Fractions", booktree.KindExplanation, "a.txt"))
	ix.Ingest(record("Fractions", booktree.KindQuestions, "b.txt"))
	ix.Ingest(record("Algebra", booktree.KindQuestions, "c.txt"))

	pairs := ix.DrainComplete(RequireBoth)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 complete pair, got %d", len(pairs))
	}
	for _, p := range pairs {
		if !p.HasBoth() {
			t.Errorf("RequireBoth returned incomplete pair %+v", p)
		}
	}

	left := ix.Remaining()
	if len(left) != 1 || left[0].Key.ChapterKey != "Algebra" {
		t.Errorf("expected Algebra left behind, got %+v", left)
	}
}

func TestDrainComplete_RequireEither(t *testing.T) {
	ix := New()
	ix.Ingest(record("Algebra", booktree.KindQuestions, "c.txt"))

	pairs := ix.DrainComplete(RequireEither)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	if !pairs[0].HasEither() {
		t.Errorf("RequireEither returned empty pair %+v", pairs[0])
	}
	if ix.Len() != 0 {
		t.Errorf("expected drained index to be empty, got %d", ix.Len())
	}
}

func TestDrainComplete_OrderIndependentOfIngestion(t *testing.T) {
	forward := New()
	forward.Ingest(record("Algebra", booktree.KindQuestions, "a.txt"))
	forward.Ingest(record("Fractions", booktree.KindQuestions, "b.txt"))

	backward := New()
	backward.Ingest(record("Fractions", booktree.KindQuestions, "b.txt"))
	backward.Ingest(record("Algebra", booktree.KindQuestions, "a.txt"))

	fp := forward.DrainComplete(RequireEither)
	bp := backward.DrainComplete(RequireEither)
	if len(fp) != len(bp) {
		t.Fatalf("length mismatch: %d vs %d", len(fp), len(bp))
	}
	for i := range fp {
		if fp[i].Key != bp[i].Key {
			t.Errorf("drain order differs at %d: %v vs %v", i, fp[i].Key, bp[i].Key)
		}
	}
}
