package render

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gensec-labs/labgen/internal/model"
)

// PDF lays out the Markdown rendering line by line. This is intentionally
// simple and does not perform full Markdown layout; the template only
// emits headings, bold bullets and short emphasized reminders.
type PDF struct{}

func (PDF) Extension() string { return ".pdf" }

func (PDF) Render(lab *model.Lab) ([]byte, error) {
	md, err := (Markdown{}).Render(lab)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()
	// Core fonts are cp1252; scraped text arrives as UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	scanner := bufio.NewScanner(bytes.NewReader(md))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		switch {
		case s == "":
			pdf.Ln(4)
		case strings.HasPrefix(s, "#"):
			level := 0
			for level < len(s) && s[level] == '#' {
				level++
			}
			text := strings.TrimSpace(s[level:])
			if text == "" {
				continue
			}
			size := 16.0
			if level >= 2 {
				size = 13.0
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.CellFormat(0, 8, tr(text), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
		case strings.HasPrefix(s, "- "):
			text := stripInlineMarkers(strings.TrimPrefix(s, "- "))
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 5, tr("• "+text), "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
		case strings.HasPrefix(s, "_") && strings.HasSuffix(s, "_"):
			pdf.SetFont("Helvetica", "I", 10)
			pdf.MultiCell(0, 5, tr(strings.Trim(s, "_")), "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
		case s == answerPlaceholder:
			pdf.MultiCell(0, 5, answerPlaceholder, "", "L", false)
			// Leave room to write the answer by hand.
			pdf.Ln(14)
		default:
			pdf.MultiCell(0, 5, tr(stripInlineMarkers(s)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func stripInlineMarkers(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.TrimPrefix(s, "<")
	s = strings.TrimSuffix(s, ">")
	return s
}
