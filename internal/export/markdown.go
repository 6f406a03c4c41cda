// Package export renders a finished meeting report, with its optional
// metadata header block, into downloadable document formats.
package export

import (
	"fmt"
	"strings"

	"github.com/pierrepierremaker/recapv1/internal/transcript"
)

const reportTitle = "Compte rendu de réunion"

// Markdown renders the report as a markdown document. Metadata lines, when
// present, form a header block before the summary body.
func Markdown(summary string, meta transcript.MeetingInfo) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", reportTitle)

	if lines := meta.HeaderLines(); len(lines) > 0 {
		for _, line := range lines {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n---\n\n")
	}

	b.WriteString(strings.TrimSpace(summary))
	b.WriteString("\n")
	return []byte(b.String())
}
