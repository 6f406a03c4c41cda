package transcript

// MeetingInfo carries the optional metadata rendered as a header block by
// the exporters and offered to the summarizer as context.
type MeetingInfo struct {
	Title        string `json:"title,omitempty"`
	Date         string `json:"date,omitempty"`
	Location     string `json:"location,omitempty"`
	Participants string `json:"participants,omitempty"`
}

// Empty reports whether no metadata field is set.
func (m MeetingInfo) Empty() bool {
	return m.Title == "" && m.Date == "" && m.Location == "" && m.Participants == ""
}

// HeaderLines returns the populated metadata fields as display lines, in a
// fixed order.
func (m MeetingInfo) HeaderLines() []string {
	var lines []string
	if m.Title != "" {
		lines = append(lines, "Titre : "+m.Title)
	}
	if m.Date != "" {
		lines = append(lines, "Date : "+m.Date)
	}
	if m.Location != "" {
		lines = append(lines, "Lieu : "+m.Location)
	}
	if m.Participants != "" {
		lines = append(lines, "Participants : "+m.Participants)
	}
	return lines
}
