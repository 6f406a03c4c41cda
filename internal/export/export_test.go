package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pierrepierremaker/recapv1/internal/transcript"
)

var testMeta = transcript.MeetingInfo{
	Title:        "Point produit",
	Date:         "2026-08-28",
	Location:     "Salle B",
	Participants: "Alice, Bob",
}

func TestMarkdown_MetadataHeaderBeforeBody(t *testing.T) {
	out := string(Markdown("Décisions prises.", testMeta))

	for _, want := range []string{
		"# Compte rendu de réunion",
		"- Titre : Point produit",
		"- Date : 2026-08-28",
		"- Lieu : Salle B",
		"- Participants : Alice, Bob",
		"Décisions prises.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Titre") > strings.Index(out, "Décisions") {
		t.Error("metadata header must precede the summary body")
	}
}

func TestMarkdown_NoMetadataNoHeaderBlock(t *testing.T) {
	out := string(Markdown("Corps.", transcript.MeetingInfo{}))
	if strings.Contains(out, "---") {
		t.Errorf("no separator expected without metadata:\n%s", out)
	}
	if !strings.Contains(out, "Corps.") {
		t.Error("body missing")
	}
}

func TestPDF_ProducesDocument(t *testing.T) {
	b, err := PDF("Résumé de la réunion.\n\nSuite du texte.", testMeta)
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestDOCX_ProducesDocument(t *testing.T) {
	b, err := DOCX("Résumé.", testMeta)
	if err != nil {
		t.Fatalf("DOCX: %v", err)
	}
	// DOCX is a ZIP container.
	if !bytes.HasPrefix(b, []byte("PK")) {
		t.Error("output is not a ZIP container")
	}
}

func TestRender_KnownAndUnknownFormats(t *testing.T) {
	for format, wantType := range map[string]string{
		"md":   "text/markdown; charset=utf-8",
		"pdf":  "application/pdf",
		"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	} {
		b, contentType, err := Render(format, "Texte.", transcript.MeetingInfo{})
		if err != nil {
			t.Errorf("Render(%q): %v", format, err)
			continue
		}
		if contentType != wantType {
			t.Errorf("Render(%q) content type = %q, want %q", format, contentType, wantType)
		}
		if len(b) == 0 {
			t.Errorf("Render(%q) produced no bytes", format)
		}
	}

	if _, _, err := Render("odt", "x", transcript.MeetingInfo{}); err == nil {
		t.Error("expected error for unknown format")
	}
}
