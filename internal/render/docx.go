package render

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fumiama/go-docx"

	"github.com/isg32/bookpiler/internal/booktree"
)

// DocxRenderer writes one word-processor document per book group.
type DocxRenderer struct {
	opts Options
	log  *slog.Logger
}

func (r *DocxRenderer) Render(group booktree.BookGroup, outDir string) (string, error) {
	w := docx.New().WithDefaultTheme()

	for i, ch := range group.Chapters {
		if i > 0 {
			w.AddParagraph().AddPageBreaks()
		}
		r.renderChapter(w, group.Key, ch)
	}

	out := OutputPath(outDir, group.Key, ".docx")
	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	if _, err := w.WriteTo(f); err != nil {
		return "", fmt.Errorf("write %s: %w", out, err)
	}
	return out, nil
}

func (r *DocxRenderer) renderChapter(w *docx.Docx, key booktree.GroupKey, ch booktree.ChapterRecord) {
	// go-docx has no section header/footer support, so the running header
	// text goes at the top of each chapter instead.
	header := w.AddParagraph()
	header.AddText(key.Label() + " - " + ch.Title).Size("18").Color("808080")

	titlePara := w.AddParagraph()
	titlePara.AddText(ch.Title).Size("32").Bold()

	sep := w.AddParagraph().Justification("center")
	sep.AddText(separatorRule())

	if ch.ExplanationText != "" {
		heading := w.AddParagraph()
		heading.AddText("Explanations").Size("26").Bold()
		r.renderBody(w, SplitLines(ch.ExplanationText))
	}

	if ch.QuestionsText != "" {
		heading := w.AddParagraph()
		heading.AddText("Questions").Size("26").Bold()
		r.renderBody(w, StripLeadingTitle(SplitLines(ch.QuestionsText), ch.Title))
	}
}

func (r *DocxRenderer) renderBody(w *docx.Docx, lines []string) {
	for _, line := range lines {
		if img, ok := ImageMarkerPath(line); ok {
			if _, err := os.Stat(img); err != nil {
				r.log.Warn("image asset missing", "path", img)
				continue
			}
			para := w.AddParagraph()
			if _, err := para.AddInlineDrawingFrom(img); err != nil {
				r.log.Warn("inline image failed", "path", img, "error", err)
			}
			continue
		}
		w.AddParagraph().AddText(line)
	}
}
