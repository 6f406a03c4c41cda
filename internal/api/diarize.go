package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/pierrepierremaker/recapv1/internal/transcript"
)

// diarizedResponse mirrors the diarized_json response shape. Start and end
// are optional in the service's loosely-typed payload; they are decoded as
// pointers and validated here, at the boundary, instead of being trusted
// deeper into the pipeline.
type diarizedResponse struct {
	Segments []struct {
		Speaker string   `json:"speaker"`
		Start   *float64 `json:"start"`
		End     *float64 `json:"end"`
		Text    string   `json:"text"`
	} `json:"segments"`
}

// mimeFromExt returns the MIME type for the accepted audio extensions.
func mimeFromExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".mp3":
		return "audio/mp3"
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/m4a"
	case ".aac":
		return "audio/aac"
	case ".amr":
		return "audio/amr"
	default:
		return "application/octet-stream"
	}
}

// TranscribeDiarized submits the whole audio buffer once, requesting
// speaker-diarized output, and returns the ordered segments. The service
// imposes a hard input-size ceiling and does not chunk across requests, so
// callers must gate on size before calling.
func (c *Client) TranscribeDiarized(ctx context.Context, audio []byte, filename string) ([]transcript.Segment, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fields := map[string]string{
		"model":             c.cfg.DiarizeModel,
		"response_format":   "diarized_json",
		"chunking_strategy": "auto",
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("multipart field %s: %w", k, err)
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(filename)))
	h.Set("Content-Type", mimeFromExt(filepath.Ext(filename)))
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("multipart file part: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("multipart file write: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("multipart close: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var dr diarizedResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	segments := make([]transcript.Segment, 0, len(dr.Segments))
	for i, seg := range dr.Segments {
		if (seg.Start == nil) != (seg.End == nil) {
			return nil, fmt.Errorf("segment %d: start and end offsets must be paired", i)
		}
		segments = append(segments, transcript.Segment{
			Speaker: "Speaker " + seg.Speaker,
			Start:   seg.Start,
			End:     seg.End,
			Text:    seg.Text,
		})
	}
	return segments, nil
}
