package export

import (
	"bytes"
	"fmt"
	"strings"

	docx "github.com/fumiama/go-docx"

	"github.com/pierrepierremaker/recapv1/internal/transcript"
)

// DOCX renders the report as a Word document: title, metadata header block,
// blank separator, then the summary body line by line.
func DOCX(summary string, meta transcript.MeetingInfo) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText(reportTitle).Size("32")

	if lines := meta.HeaderLines(); len(lines) > 0 {
		for _, line := range lines {
			doc.AddParagraph().AddText(line)
		}
		doc.AddParagraph()
	}

	for _, line := range strings.Split(summary, "\n") {
		p := doc.AddParagraph()
		if strings.TrimSpace(line) != "" {
			p.AddText(line)
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}
