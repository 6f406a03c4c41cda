package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/pierrepierremaker/recapv1/internal/transcript"
)

// PDF renders the report as a PDF: title, metadata header block, then the
// summary body.
func PDF(summary string, meta transcript.MeetingInfo) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("") // core fonts are cp1252
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 9, tr(reportTitle), "", "L", false)
	pdf.Ln(3)

	if lines := meta.HeaderLines(); len(lines) > 0 {
		pdf.SetFont("Helvetica", "", 11)
		for _, line := range lines {
			pdf.MultiCell(0, 6, tr(line), "", "L", false)
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range strings.Split(summary, "\n") {
		if strings.TrimSpace(line) == "" {
			pdf.Ln(3)
			continue
		}
		pdf.MultiCell(0, 6, tr(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Render dispatches on a format name and returns the document bytes plus
// the matching MIME type.
func Render(format, summary string, meta transcript.MeetingInfo) ([]byte, string, error) {
	switch strings.ToLower(format) {
	case "", "md", "markdown":
		return Markdown(summary, meta), "text/markdown; charset=utf-8", nil
	case "docx":
		b, err := DOCX(summary, meta)
		return b, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", err
	case "pdf":
		b, err := PDF(summary, meta)
		return b, "application/pdf", err
	default:
		return nil, "", fmt.Errorf("unknown export format %q", format)
	}
}
