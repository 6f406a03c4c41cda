package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pierrepierremaker/recapv1/internal/api"
	"github.com/pierrepierremaker/recapv1/internal/audio"
	"github.com/pierrepierremaker/recapv1/internal/config"
	"github.com/pierrepierremaker/recapv1/internal/transcript"
)

type fakeService struct {
	transcribeCalls int
	summarizeCalls  int
	lastStyle       api.SummaryStyle
}

func (f *fakeService) Transcribe(_ context.Context, _ []byte, filename, _ string) (string, error) {
	f.transcribeCalls++
	return "transcription de " + filename, nil
}

func (f *fakeService) TranscribeDiarized(_ context.Context, _ []byte, _ string) ([]transcript.Segment, error) {
	f.transcribeCalls++
	return []transcript.Segment{{Speaker: "Speaker A", Text: "bonjour"}}, nil
}

func (f *fakeService) Summarize(_ context.Context, text string, style api.SummaryStyle, _ transcript.MeetingInfo) (string, error) {
	f.summarizeCalls++
	f.lastStyle = style
	return "Résumé : " + text[:min(len(text), 20)], nil
}

func newTestServer() (*Server, *fakeService) {
	svc := &fakeService{}
	return New(svc, &audio.Normalizer{}, config.Default()), svc
}

func createSession(t *testing.T, s *Server) string {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest(http.MethodPost, "/api/sessions", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session: status %d", resp.StatusCode)
	}
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	return body.ID
}

func uploadRequest(t *testing.T, url, filename string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestServer_FullFlow(t *testing.T) {
	s, svc := newTestServer()
	id := createSession(t, s)

	// Transcribe a small mp3: the auto path forwards it in one request.
	req := uploadRequest(t, "/api/sessions/"+id+"/transcribe", "reunion.mp3",
		[]byte("raw mp3 bytes"), nil)
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("transcribe: status %d: %s", resp.StatusCode, b)
	}
	var tResp struct {
		Transcript string `json:"transcript"`
		Segments   int    `json:"segments"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tResp); err != nil {
		t.Fatal(err)
	}
	if tResp.Transcript != "transcription de reunion.mp3" {
		t.Errorf("transcript = %q", tResp.Transcript)
	}
	if tResp.Segments != 1 {
		t.Errorf("segments = %d, want 1", tResp.Segments)
	}

	// Read it back.
	resp, err = s.App().Test(httptest.NewRequest(http.MethodGet, "/api/sessions/"+id+"/transcript", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get transcript: status %d", resp.StatusCode)
	}

	// Summarize with the bullet style and metadata.
	sumBody := `{"style":"bullets","title":"Point produit","participants":"Alice, Bob"}`
	sReq := httptest.NewRequest(http.MethodPost, "/api/sessions/"+id+"/summary", strings.NewReader(sumBody))
	sReq.Header.Set("Content-Type", "application/json")
	resp, err = s.App().Test(sReq, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("summary: status %d: %s", resp.StatusCode, b)
	}
	if svc.lastStyle != api.StyleBullets {
		t.Errorf("style = %q, want bullets", svc.lastStyle)
	}

	// Export as markdown.
	resp, err = s.App().Test(httptest.NewRequest(http.MethodGet, "/api/sessions/"+id+"/export?format=md", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export: status %d", resp.StatusCode)
	}
	doc, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(doc), "Titre : Point produit") {
		t.Errorf("exported document missing metadata header:\n%s", doc)
	}
	if !strings.Contains(string(doc), "Résumé :") {
		t.Errorf("exported document missing summary body:\n%s", doc)
	}
}

func TestServer_UnknownSession(t *testing.T) {
	s, _ := newTestServer()
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/api/sessions/nope/transcript", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestServer_SummaryRequiresTranscript(t *testing.T) {
	s, svc := newTestServer()
	id := createSession(t, s)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+id+"/summary", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", resp.StatusCode)
	}
	if svc.summarizeCalls != 0 {
		t.Error("summarizer must not run without a transcript")
	}
}

func TestServer_RejectsUnsupportedUpload(t *testing.T) {
	s, svc := newTestServer()
	id := createSession(t, s)

	req := uploadRequest(t, "/api/sessions/"+id+"/transcribe", "clip.ogg", []byte("x"), nil)
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", resp.StatusCode)
	}
	if svc.transcribeCalls != 0 {
		t.Error("service must not be called for a rejected upload")
	}
}

func TestServer_DiarizeOversizeRejected(t *testing.T) {
	s, svc := newTestServer()
	id := createSession(t, s)

	req := uploadRequest(t, "/api/sessions/"+id+"/transcribe", "big.wav",
		make([]byte, 26*1024*1024), map[string]string{"diarize": "true"})
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
	if svc.transcribeCalls != 0 {
		t.Error("service must not be called for a rejected upload")
	}
}
