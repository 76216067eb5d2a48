package render

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/isg32/bookpiler/internal/booktree"
)

// PDFRenderer writes one PDF per book group: an index page, then one page
// run per chapter, with a logo header and page-number footer throughout.
type PDFRenderer struct {
	opts Options
	log  *slog.Logger
}

func (r *PDFRenderer) Render(group booktree.BookGroup, outDir string) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 24, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	logo := r.opts.LogoPath
	if logo != "" {
		if _, err := os.Stat(logo); err != nil {
			r.log.Warn("logo asset missing, continuing without it", "path", logo)
			logo = ""
		}
	}

	headerText := group.Key.Label()
	pdf.SetHeaderFunc(func() {
		if logo != "" {
			pdf.Image(logo, 20, 6, 24, 0, false, "", 0, "")
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.SetXY(50, 8)
		pdf.CellFormat(0, 8, tr(headerText), "", 0, "L", false, 0, "")
		pdf.SetY(24)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	r.renderIndex(pdf, tr, group)

	for _, ch := range group.Chapters {
		headerText = group.Key.Label() + " - " + ch.Title
		r.renderChapter(pdf, tr, ch)
	}

	out := OutputPath(outDir, group.Key, ".pdf")
	if err := pdf.OutputFileAndClose(out); err != nil {
		return "", fmt.Errorf("write %s: %w", out, err)
	}
	return out, nil
}

func (r *PDFRenderer) renderIndex(pdf *gofpdf.Fpdf, tr func(string) string, group booktree.BookGroup) {
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(0, 14, tr(group.Key.Label()), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	size := indexFontSize(len(group.Chapters))
	pdf.SetFont("Arial", "", size)
	for i, ch := range group.Chapters {
		pdf.CellFormat(0, size*0.55, tr(fmt.Sprintf("%d. %s", i+1, ch.Title)), "", 1, "L", false, 0, "")
	}
}

// indexFontSize steps the type size down as the entry count grows so the
// index stays on one page.
func indexFontSize(entries int) float64 {
	switch {
	case entries <= 15:
		return 14
	case entries <= 25:
		return 12
	case entries <= 40:
		return 10
	}
	return 8
}

func (r *PDFRenderer) renderChapter(pdf *gofpdf.Fpdf, tr func(string) string, ch booktree.ChapterRecord) {
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.MultiCell(0, 9, tr(ch.Title), "", "L", false)
	r.separator(pdf)

	if ch.ExplanationText != "" {
		r.renderSection(pdf, tr, "Explanations", SplitLines(ch.ExplanationText))
	}
	if ch.QuestionsText != "" {
		r.renderSection(pdf, tr, "Questions", StripLeadingTitle(SplitLines(ch.QuestionsText), ch.Title))
	}
}

func (r *PDFRenderer) separator(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 2
	pdf.SetDrawColor(120, 120, 120)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 5)
}

func (r *PDFRenderer) renderSection(pdf *gofpdf.Fpdf, tr func(string) string, label string, lines []string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 9, label, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)

	for _, line := range lines {
		if img, ok := ImageMarkerPath(line); ok {
			if _, err := os.Stat(img); err != nil {
				r.log.Warn("image asset missing", "path", img)
				continue
			}
			pdf.ImageOptions(img, pdf.GetX(), pdf.GetY(), 120, 0, true,
				gofpdf.ImageOptions{ReadDpi: true}, 0, "")
			pdf.Ln(2)
			continue
		}
		if line == "" {
			pdf.Ln(3)
			continue
		}
		pdf.MultiCell(0, 6, tr(line), "", "L", false)
	}
	pdf.Ln(4)
}
