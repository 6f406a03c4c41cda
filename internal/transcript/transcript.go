// Package transcript holds the transcript data model and the rendering of
// diarized, speaker-labelled segments into a single readable string.
package transcript

import (
	"fmt"
	"strings"
)

// Segment is one speaker-attributed piece of a diarized transcript.
// Start and End are optional but paired: a segment either carries both
// offsets (in seconds) or neither. The pairing is enforced at the service
// boundary, not here.
type Segment struct {
	Speaker string   `json:"speaker"`
	Start   *float64 `json:"start,omitempty"`
	End     *float64 `json:"end,omitempty"`
	Text    string   `json:"text"`
}

// Timed reports whether the segment carries start/end offsets.
func (s Segment) Timed() bool { return s.Start != nil && s.End != nil }

// FormatDiarized renders segments into one line each, in input order:
//
//	Speaker A [0.0s–5.2s] : hello
//	Speaker B : untimed reply
//
// The service's own ordering is assumed chronological; no sorting or
// speaker deduplication happens here.
func FormatDiarized(segments []Segment) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.Timed() {
			lines = append(lines, fmt.Sprintf("%s [%.1fs–%.1fs] : %s",
				seg.Speaker, *seg.Start, *seg.End, seg.Text))
		} else {
			lines = append(lines, fmt.Sprintf("%s : %s", seg.Speaker, seg.Text))
		}
	}
	return strings.Join(lines, "\n")
}

// JoinParts assembles per-segment plain transcripts, in submission order,
// with a blank-line separator.
func JoinParts(parts []string) string {
	return strings.Join(parts, "\n\n")
}
